package invoice

import (
	"strings"

	"github.com/wudi/invoicekit/builder"
	"github.com/wudi/invoicekit/layout"
)

// PaymentRowSeparator separates the rows of payment markup.
const PaymentRowSeparator = "{{pdf_row_separator}}"

// SplitPaymentBlock decodes HTML entities in markup and splits it into rows,
// dropping rows that are blank once tags are removed.
func SplitPaymentBlock(markup string) []string {
	var segments []string
	for _, seg := range strings.Split(layout.DecodeEntities(markup), PaymentRowSeparator) {
		if strings.TrimSpace(layout.StripTags(seg)) == "" {
			continue
		}
		segments = append(segments, seg)
	}
	return segments
}

// PaymentMethodRenderer draws payment rows as a column at X. It satisfies
// layout.Column.
type PaymentMethodRenderer struct {
	X        float64
	Segments []string
}

// Lines returns the display lines: every segment wrapped at 45 characters
// with markup stripped.
func (r PaymentMethodRenderer) Lines() []string {
	var lines []string
	for _, seg := range r.Segments {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		for _, l := range layout.Wrap(seg) {
			lines = append(lines, strings.TrimSpace(layout.StripTags(l)))
		}
	}
	return lines
}

func (r PaymentMethodRenderer) Height() float64 {
	return float64(len(r.Lines())) * layout.LineHeight
}

// Render draws the lines from start and returns the cursor below the last.
func (r PaymentMethodRenderer) Render(page builder.Page, start layout.Cursor) layout.Cursor {
	c := start
	for _, l := range r.Lines() {
		if l != "" {
			page.DrawText(l, r.X, c.Y())
		}
		c = c.Reserve(layout.LineHeight)
	}
	return c
}
