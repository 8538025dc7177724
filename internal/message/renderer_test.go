package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testVars = Vars{
	TeamA: "Les Aigles Rouges",
	TeamB: "Les Lions Bleus",
	Date:  "2025-06-20",
	Time:  "18:30",
	Token: "ABC123DEF0",
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "single placeholder",
			template: "Key: {token}",
			want:     "Key: ABC123DEF0",
		},
		{
			name:     "all five placeholders",
			template: "{participant_a} vs {participant_b} on {event_date} at {event_time}: {token}",
			want:     "Les Aigles Rouges vs Les Lions Bleus on 2025-06-20 at 18:30: ABC123DEF0",
		},
		{
			name:     "repeated placeholder",
			template: "{token} {token}",
			want:     "ABC123DEF0 ABC123DEF0",
		},
		{
			name:     "unknown placeholder kept literal",
			template: "Hello {name}, key {token}",
			want:     "Hello {name}, key ABC123DEF0",
		},
		{
			name:     "stray closing brace is literal",
			template: "a } b {token}",
			want:     "a } b ABC123DEF0",
		},
		{
			name:     "empty braces kept literal",
			template: "a {} b",
			want:     "a {} b",
		},
		{
			name:     "no placeholders",
			template: "plain text",
			want:     "plain text",
		},
		{
			name:     "empty template",
			template: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.template, testVars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{name: "unclosed brace", template: "Key: {token"},
		{name: "unclosed brace at end", template: "text {"},
		{name: "nested opening brace", template: "{parti{cipant_a}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.template, testVars)
			require.ErrorIs(t, err, ErrTemplateSyntax)
			assert.Empty(t, got, "no partial output on syntax error")
		})
	}
}

func TestDefaultTemplate_RendersAllPlaceholders(t *testing.T) {
	got, err := Render(DefaultTemplate, testVars)

	require.NoError(t, err)
	assert.Contains(t, got, "Les Aigles Rouges")
	assert.Contains(t, got, "Les Lions Bleus")
	assert.Contains(t, got, "2025-06-20")
	assert.Contains(t, got, "18:30")
	assert.Contains(t, got, "ABC123DEF0")
	assert.NotContains(t, got, "{", "every placeholder must be substituted")
}

func TestMailto(t *testing.T) {
	link := Mailto("moi@handball.com", "IBAN payment request", "Key: ABC123DEF0\nLine two")

	assert.True(t, strings.HasPrefix(link, "mailto:moi@handball.com?"), link)
	assert.Contains(t, link, "subject=IBAN%20payment%20request")
	assert.Contains(t, link, "body=Key%3A%20ABC123DEF0%0ALine%20two")
	assert.NotContains(t, link, "+", "spaces must be percent-encoded, not form-encoded")
}

func TestPreviewHTML(t *testing.T) {
	assert.Empty(t, PreviewHTML(""))

	html := PreviewHTML("- Team 1: **Les Aigles Rouges**")
	assert.Contains(t, html, "<strong>Les Aigles Rouges</strong>")

	// Script injection in a template must not survive the sanitizer.
	dirty := PreviewHTML(`<script>alert(1)</script>hello`)
	assert.NotContains(t, dirty, "<script>")
	assert.Contains(t, dirty, "hello")
}
