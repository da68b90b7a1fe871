package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		opts     NormalizeOptions
		expected string
	}{
		{
			name:     "default folds everything",
			raw:      "¡Está BIEN!",
			opts:     NormalizeOptions{},
			expected: "esta bien",
		},
		{
			name:     "case sensitive keeps casing",
			raw:      "Está",
			opts:     NormalizeOptions{CaseSensitive: true},
			expected: "Esta",
		},
		{
			name:     "accent sensitive keeps diacritics",
			raw:      "Está",
			opts:     NormalizeOptions{AccentSensitive: true},
			expected: "está",
		},
		{
			name:     "punctuation sensitive keeps marks",
			raw:      "¿Cómo?",
			opts:     NormalizeOptions{PunctuationSensitive: true},
			expected: "¿como?",
		},
		{
			name:     "enye folds to n",
			raw:      "mañana",
			opts:     NormalizeOptions{},
			expected: "manana",
		},
		{
			name:     "curly quotes and dashes stripped",
			raw:      "“hola” — (chau)…",
			opts:     NormalizeOptions{},
			expected: "hola  chau",
		},
		{
			name:     "empty input",
			raw:      "",
			opts:     NormalizeOptions{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.raw, tt.opts))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"¡Está BIEN!", "mañana", "¿Cómo estás?", "plain", ""}
	opts := NormalizeOptions{}
	for _, in := range inputs {
		once := Normalize(in, opts)
		assert.Equal(t, once, Normalize(once, opts), "input %q", in)
	}
}

func TestMatchesAny(t *testing.T) {
	answers := []string{"está bien", " Vale "}

	assert.True(t, matchesAny("ESTA BIEN", answers, NormalizeOptions{}))
	assert.True(t, matchesAny("vale", answers, NormalizeOptions{}), "answers are trimmed before folding")
	assert.False(t, matchesAny("esta mal", answers, NormalizeOptions{}))
	assert.False(t, matchesAny("anything", nil, NormalizeOptions{}), "empty answer list never matches")
	assert.False(t, matchesAny("esta bien", answers, NormalizeOptions{AccentSensitive: true}))
}
