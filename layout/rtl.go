package layout

import (
	"strings"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
)

// Reverser converts a logical-order line into the order it is drawn in.
type Reverser interface {
	Reverse(line string) string
}

// ReverserFunc adapts a function to Reverser.
type ReverserFunc func(string) string

func (f ReverserFunc) Reverse(line string) string { return f(line) }

// RTLReverser reorders lines containing right-to-left script for drawing
// with a left-to-right text operator: word order is reversed and the
// characters of right-to-left words are mirrored. Lines without
// right-to-left script are returned unchanged.
type RTLReverser struct{}

func (RTLReverser) Reverse(line string) string {
	if !IsRTL(line) {
		return line
	}
	words := strings.Split(line, " ")
	for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
		words[i], words[j] = words[j], words[i]
	}
	for i, w := range words {
		if IsRTL(w) {
			words[i] = reverseRunes(w)
		}
	}
	return strings.Join(words, " ")
}

// ReverseLines applies r to every line, keeping the line order. A nil
// Reverser leaves lines untouched.
func ReverseLines(lines []string, r Reverser) []string {
	if r == nil {
		return lines
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = r.Reverse(l)
	}
	return out
}

// IsRTL reports whether s contains characters of a right-to-left script.
func IsRTL(s string) bool {
	for _, r := range s {
		if scriptDirection(scriptFromRune(r)) == di.DirectionRTL {
			return true
		}
	}
	return false
}

func scriptDirection(script language.Script) di.Direction {
	switch script {
	case language.Arabic, language.Hebrew, language.Syriac, language.Thaana, language.Nko:
		return di.DirectionRTL
	default:
		return di.DirectionLTR
	}
}

func scriptFromRune(r rune) language.Script {
	switch {
	case r < 0x0590:
		return language.Unknown
	case unicode.Is(unicode.Hebrew, r):
		return language.Hebrew
	case unicode.Is(unicode.Arabic, r):
		return language.Arabic
	case unicode.Is(unicode.Syriac, r):
		return language.Syriac
	case unicode.Is(unicode.Thaana, r):
		return language.Thaana
	case unicode.Is(unicode.Nko, r):
		return language.Nko
	}
	return language.Unknown
}

func reverseRunes(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
