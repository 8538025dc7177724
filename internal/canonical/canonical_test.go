package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase passthrough",
			input: "les aigles rouges",
			want:  "les aigles rouges",
		},
		{
			name:  "mixed case folded",
			input: "Les Aigles Rouges",
			want:  "les aigles rouges",
		},
		{
			name:  "leading and trailing whitespace trimmed",
			input: "  les aigles rouges  ",
			want:  "les aigles rouges",
		},
		{
			name:  "accents folded to base letters",
			input: "Équipe Génération Ñandú",
			want:  "equipe generation nandu",
		},
		{
			name:  "punctuation dropped",
			input: "H.B.C. Saint-Étienne!",
			want:  "hbc saintetienne",
		},
		{
			name:  "whitespace runs collapsed",
			input: "les   aigles \t rouges",
			want:  "les aigles rouges",
		},
		{
			name:  "digits kept",
			input: "Division 2",
			want:  "division 2",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "only punctuation",
			input: "***!!!",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: " \t\n ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonicalize(tt.input))
		})
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Les Aigles Rouges",
		"  Équipe   Génération!  ",
		"HBC 1924",
		"",
	}

	for _, input := range inputs {
		once := Canonicalize(input)
		assert.Equal(t, once, Canonicalize(once), "canonicalize must be idempotent for %q", input)
	}
}
