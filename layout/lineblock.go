package layout

import (
	"github.com/wudi/invoicekit/builder"
)

// Align controls horizontal text alignment relative to a cell's feed.
type Align int

const (
	AlignLeft Align = iota
	// AlignRight ends the text at the feed, or at feed+width-padding when the
	// cell has a width.
	AlignRight
	// AlignCenter centers the text in [feed, feed+width]; without a width
	// it behaves like AlignLeft.
	AlignCenter
)

const (
	defaultBlockSpacing = 10.0
	defaultFontSize     = 10.0
	alignPadding        = 5.0
)

// Cell is one column of a row: one or more text lines drawn at Feed.
type Cell struct {
	Text     []string
	Feed     float64
	Align    Align
	Width    float64
	Font     builder.FontStyle
	FontSize float64
	// Spacing is the distance between the cell's lines; zero uses the
	// block spacing.
	Spacing float64
}

// Row is a set of cells sharing a top edge.
type Row []Cell

// LineBlock is a group of rows kept together on one page when possible.
type LineBlock struct {
	Rows []Row
	// Spacing is the default line spacing of the block's cells (10 if unset).
	Spacing float64
}

func (b LineBlock) spacing() float64 {
	if b.Spacing > 0 {
		return b.Spacing
	}
	return defaultBlockSpacing
}

func (c Cell) spacing(block float64) float64 {
	if c.Spacing > 0 {
		return c.Spacing
	}
	return block
}

// Shift is the total height of the block: the sum over rows of the tallest
// cell of the row.
func (b LineBlock) Shift() float64 {
	var shift float64
	for _, row := range b.Rows {
		shift += rowHeight(row, b.spacing())
	}
	return shift
}

func rowHeight(row Row, spacing float64) float64 {
	var h float64
	for _, cell := range row {
		h = max(h, float64(len(cell.Text))*cell.spacing(spacing))
	}
	return h
}

// DrawLineBlocks draws blocks starting at pos. A block that does not fit
// above the bottom margin starts on a new page, and so does any text line
// that would cross it, even in the middle of a row. Cells after such a
// break start at the top of the new page. The returned flag reports whether
// a new page was started; the returned position is then on the last page
// started.
func (e *Engine) DrawLineBlocks(pos Position, blocks []LineBlock, settings PageSettings) (Position, bool) {
	continued := false
	newPage := func() {
		pos = e.NewPage(settings)
		continued = true
	}
	for _, block := range blocks {
		spacing := block.spacing()
		if !e.fits(pos.Cursor, block.Shift()) {
			newPage()
		}
		for _, row := range block.Rows {
			var maxHeight float64
			for _, cell := range row {
				size := cell.FontSize
				if size <= 0 {
					size = defaultFontSize
				}
				pos.Page.SetFont(cell.Font, size)
				lineSpacing := cell.spacing(spacing)
				var top float64
				for _, part := range cell.Text {
					if !e.fits(pos.Cursor, top+lineSpacing) {
						newPage()
						pos.Page.SetFont(cell.Font, size)
						// Lines drawn before the break belong to the
						// previous page.
						top, maxHeight = 0, 0
					}
					if part != "" {
						x := alignedX(pos.Page, part, cell)
						pos.Page.DrawText(part, x, pos.Cursor.Y()-top)
					}
					top += lineSpacing
				}
				maxHeight = max(maxHeight, top)
			}
			pos.Cursor = pos.Cursor.Reserve(maxHeight)
		}
	}
	return pos, continued
}

func alignedX(page builder.Page, text string, cell Cell) float64 {
	switch cell.Align {
	case AlignRight:
		w := page.StringWidth(text)
		if cell.Width > 0 {
			return cell.Feed + cell.Width - w - alignPadding
		}
		return cell.Feed - w
	case AlignCenter:
		if cell.Width > 0 {
			return cell.Feed + cell.Width/2 - page.StringWidth(text)/2
		}
	}
	return cell.Feed
}

// AlignRightX returns the x at which text ends padding units before the
// right edge of the column [x, x+width].
func AlignRightX(page builder.Page, text string, x, width float64) float64 {
	return x + width - page.StringWidth(text) - alignPadding
}

// DrawRow draws the cells of row with their first lines at y and returns the
// height of the row. It never starts a page; callers drawing headers on
// fresh pages use it instead of DrawLineBlocks.
func DrawRow(page builder.Page, y float64, row Row, spacing float64) float64 {
	if spacing <= 0 {
		spacing = defaultBlockSpacing
	}
	for _, cell := range row {
		size := cell.FontSize
		if size <= 0 {
			size = defaultFontSize
		}
		page.SetFont(cell.Font, size)
		for i, part := range cell.Text {
			if part != "" {
				page.DrawText(part, alignedX(page, part, cell), y-float64(i)*cell.spacing(spacing))
			}
		}
	}
	return rowHeight(row, spacing)
}
