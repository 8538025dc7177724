// Package message renders the referee payment email from a user-editable
// template and packages it as a mailto payload for the external QR encoder.
// Substitution is an explicit scanner over a closed set of five placeholder
// names rather than a general formatting facility, so user-supplied
// templates can never trigger evaluation of arbitrary syntax.
package message

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTemplateSyntax indicates the template contains a malformed placeholder
// (an unclosed "{" or a "{" nested inside one). Rendering aborts and no
// partial output is produced.
var ErrTemplateSyntax = errors.New("template has a malformed placeholder")

// Vars holds the display values substituted into a template. These are the
// raw, trimmed strings the user entered, never the canonical forms.
type Vars struct {
	TeamA string
	TeamB string
	Date  string
	Time  string
	Token string
}

// lookup resolves one of the five recognized placeholder names. Any other
// name is not part of the contract and passes through literally.
func (v Vars) lookup(name string) (string, bool) {
	switch name {
	case "participant_a":
		return v.TeamA, true
	case "participant_b":
		return v.TeamB, true
	case "event_date":
		return v.Date, true
	case "event_time":
		return v.Time, true
	case "token":
		return v.Token, true
	}
	return "", false
}

// Render substitutes every occurrence of the recognized placeholders in
// template with the bound values. Unknown but well-formed braced tokens are
// kept as literal text; a stray "}" is literal too. An unclosed "{" fails
// with ErrTemplateSyntax.
func Render(template string, vars Vars) (string, error) {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		if template[i] != '{' {
			b.WriteByte(template[i])
			i++
			continue
		}

		end := strings.IndexByte(template[i+1:], '}')
		if end < 0 {
			return "", fmt.Errorf("%w: unclosed '{' at offset %d", ErrTemplateSyntax, i)
		}

		name := template[i+1 : i+1+end]
		if strings.ContainsRune(name, '{') {
			return "", fmt.Errorf("%w: nested '{' at offset %d", ErrTemplateSyntax, i)
		}

		if value, ok := vars.lookup(name); ok {
			b.WriteString(value)
		} else {
			b.WriteString(template[i : i+2+end])
		}
		i += 2 + end
	}

	return b.String(), nil
}
