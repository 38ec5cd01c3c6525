package layout

import (
	"strings"
	"unicode/utf8"
)

// DefaultWrapWidth is the column width, in characters, of wrapped blocks.
const DefaultWrapWidth = 45

type wrapConfig struct {
	width          int
	breakLongWords bool
	multiline      bool
}

// WrapOption configures Wrap.
type WrapOption func(*wrapConfig)

// WithWidth sets the maximum line length in characters.
func WithWidth(n int) WrapOption {
	return func(c *wrapConfig) { c.width = n }
}

// WithBreakLongWords controls whether words longer than the width are split.
// When disabled such a word is emitted whole on a line of its own.
func WithBreakLongWords(on bool) WrapOption {
	return func(c *wrapConfig) { c.breakLongWords = on }
}

// WithMultiline controls whether line breaks in the input start new lines.
// When disabled they are treated as spaces.
func WithMultiline(on bool) WrapOption {
	return func(c *wrapConfig) { c.multiline = on }
}

// Wrap splits text into lines of at most width characters (45 by default),
// keeping words together. Whitespace runs collapse to one space and empty
// paragraphs produce no lines.
func Wrap(text string, opts ...WrapOption) []string {
	cfg := wrapConfig{width: DefaultWrapWidth, breakLongWords: true, multiline: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.width <= 0 || text == "" {
		return nil
	}
	text = NormalizeBreaks(text)
	if !cfg.multiline {
		return wrapParagraph(text, cfg)
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, cfg)...)
	}
	return lines
}

func wrapParagraph(para string, cfg wrapConfig) []string {
	var (
		lines  []string
		cur    strings.Builder
		curLen int
	)
	flush := func() {
		if curLen > 0 {
			lines = append(lines, cur.String())
		}
		cur.Reset()
		curLen = 0
	}
	for _, word := range strings.Fields(para) {
		n := utf8.RuneCountInString(word)
		switch {
		case curLen > 0 && curLen+1+n <= cfg.width:
			cur.WriteByte(' ')
			cur.WriteString(word)
			curLen += 1 + n
		case curLen == 0 && n <= cfg.width:
			cur.WriteString(word)
			curLen = n
		case n <= cfg.width || !cfg.breakLongWords:
			flush()
			cur.WriteString(word)
			curLen = n
		default:
			flush()
			chunks := splitRunes(word, cfg.width)
			lines = append(lines, chunks[:len(chunks)-1]...)
			// The tail chunk stays open for the following words.
			last := chunks[len(chunks)-1]
			cur.WriteString(last)
			curLen = utf8.RuneCountInString(last)
		}
	}
	flush()
	return lines
}

func splitRunes(s string, n int) []string {
	runes := []rune(s)
	out := make([]string, 0, (len(runes)+n-1)/n)
	for start := 0; start < len(runes); start += n {
		end := min(start+n, len(runes))
		out = append(out, string(runes[start:end]))
	}
	return out
}

// Truncate shortens s to n characters and appends an ellipsis when it is
// longer than n. Shorter strings are returned unchanged.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// Chunk splits s into pieces of n characters without regard to words.
func Chunk(s string, n int) []string {
	if n <= 0 || s == "" {
		return nil
	}
	return splitRunes(s, n)
}
