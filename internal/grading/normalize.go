package grading

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeOptions selects which folds to apply before comparing learner
// input against acceptable answers. The zero value matches the authoring
// defaults: case-insensitive, punctuation-insensitive, accent-insensitive.
type NormalizeOptions struct {
	CaseSensitive        bool
	AccentSensitive      bool
	PunctuationSensitive bool
}

// combiningMarks is the Unicode combining diacritical marks block
// (U+0300..U+036F). Stripping only this block keeps non-Latin scripts
// untouched while folding Spanish accents and the tilde of ñ.
var combiningMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(combiningMarks)), norm.NFC)

// punctuation mirrors the set the authoring tool strips: sentence marks
// including the Spanish inverted forms, quotes, dashes, ellipses, parens.
const punctuation = ".,;:!¡?¿\"“”'’()-—…"

// Normalize folds raw into its canonical comparison form. Trimming the raw
// input is the caller's responsibility and always happens before this call.
// Folds are applied case → punctuation → accents, in that order.
func Normalize(raw string, opts NormalizeOptions) string {
	out := raw
	if !opts.CaseSensitive {
		out = strings.ToLower(out)
	}
	if !opts.PunctuationSensitive {
		out = stripPunctuation(out)
	}
	if !opts.AccentSensitive {
		out = stripAccents(out)
	}
	return out
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)
}

// stripAccents decomposes to NFD, drops combining marks, and recomposes.
// A transform failure falls back to the input unchanged rather than failing
// the comparison; both sides of a comparison go through the same path.
func stripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// normalizedSet folds every acceptable answer, trimming each one first.
func normalizedSet(answers []string, opts NormalizeOptions) map[string]struct{} {
	set := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		set[Normalize(strings.TrimSpace(a), opts)] = struct{}{}
	}
	return set
}

// matchesAny reports whether the (already trimmed) submission equals any
// acceptable answer under the given folds. An empty answer list never
// matches.
func matchesAny(trimmed string, answers []string, opts NormalizeOptions) bool {
	if len(answers) == 0 {
		return false
	}
	_, ok := normalizedSet(answers, opts)[Normalize(trimmed, opts)]
	return ok
}
