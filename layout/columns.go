package layout

import (
	"strings"

	"github.com/wudi/invoicekit/builder"
)

// Column is a block that is measured before it is drawn and then rendered
// from a starting cursor, returning where it ended.
type Column interface {
	Height() float64
	Render(page builder.Page, start Cursor) Cursor
}

// AddressBlock renders formatted address lines at a fixed left edge.
type AddressBlock struct {
	X     float64
	Lines []string
	// Reverser reorders right-to-left lines; nil draws lines as they are.
	Reverser Reverser
}

// AddressHeight is the height taken by lines when wrapped: one LineHeight
// per wrapped line of every non-empty input line.
func AddressHeight(lines []string) float64 {
	n := 0
	for _, l := range lines {
		if l == "" {
			continue
		}
		n += len(Wrap(l))
	}
	return float64(n) * LineHeight
}

func (b AddressBlock) Height() float64 { return AddressHeight(b.Lines) }

// Render draws the block from start and returns the cursor below its last
// line. Empty lines are skipped.
func (b AddressBlock) Render(page builder.Page, start Cursor) Cursor {
	c := start
	for _, l := range b.Lines {
		if l == "" {
			continue
		}
		for _, part := range ReverseLines(Wrap(l), b.Reverser) {
			page.DrawText(strings.TrimLeft(StripTags(part), " \t"), b.X, c.Y())
			c = c.Reserve(LineHeight)
		}
	}
	return c
}

// DualColumn lays out two blocks side by side from a shared top.
type DualColumn struct {
	Left Column
	// Right may be nil for a single column.
	Right Column
}

// Height is the height of the taller column.
func (d DualColumn) Height() float64 {
	h := d.Left.Height()
	if d.Right != nil {
		h = max(h, d.Right.Height())
	}
	return h
}

// Render draws both columns from start, each with its own cursor, and
// returns the lower of the two end positions.
func (d DualColumn) Render(page builder.Page, start Cursor) Cursor {
	left := d.Left.Render(page, start.Fork())
	if d.Right == nil {
		return left
	}
	right := d.Right.Render(page, start.Fork())
	return Reconcile(left, right)
}
