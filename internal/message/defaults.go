package message

import (
	"net/url"
	"strings"
)

// Subject is the fixed subject line of the payment request email.
const Subject = "IBAN payment request"

// DefaultTemplate is the built-in email body. Users may overwrite it; a
// reset restores this value.
const DefaultTemplate = `Hello,

I am the referee for the following match:

- Team 1: {participant_a}
- Team 2: {participant_b}
- Date: {event_date}
- Time: {event_time}

Security key: {token}

IBAN: _______________________

(or please attach a PDF containing your IBAN)

Thank you.`

// PreviewVars are the fixture values substituted when previewing a
// template, so the preview exercises all five placeholders without a real
// issuance.
var PreviewVars = Vars{
	TeamA: "Les Aigles Rouges",
	TeamB: "Les Lions Bleus",
	Date:  "2025-06-20",
	Time:  "18:30",
	Token: "ABC123DEF0",
}

// Mailto builds the mailto URL carrying the rendered message. This string
// is the opaque payload handed to the external QR encoder.
func Mailto(to, subject, body string) string {
	q := url.Values{}
	q.Set("subject", subject)
	q.Set("body", body)

	// RFC 6068 mailto bodies want %20 for spaces; url.Values.Encode emits
	// "+", which some mail clients keep literally.
	query := strings.ReplaceAll(q.Encode(), "+", "%20")

	return "mailto:" + to + "?" + query
}
