package invoice

import (
	"strings"

	"github.com/wudi/invoicekit/builder"
	"github.com/wudi/invoicekit/layout"
	"github.com/wudi/invoicekit/model"
)

// MaxTrackTitle is the number of characters of a track title printed before
// it is cut off with an ellipsis.
const MaxTrackTitle = 45

// Tracking table geometry, relative to the shipping column.
const (
	trackTableWidth  = 225.0
	trackDividerX    = 115.0
	trackHeaderX     = 5.0
	trackTitleX      = 7.0
	trackNumberX     = 125.0
	trackHeaderLine  = 10.0
	trackHeaderShift = 20.0
	trackRowHeight   = 10.0
)

// TruncateTitle shortens a track title to MaxTrackTitle characters plus an
// ellipsis. Titles that fit are returned unchanged.
func TruncateTitle(title string) string {
	return layout.Truncate(title, MaxTrackTitle)
}

// ShippingMethodRenderer draws the shipping method column of physical
// orders: the method description, the shipping charges and, when there are
// tracks, the tracking number table.
type ShippingMethodRenderer struct {
	X           float64
	Description string
	// Charges is the formatted shipping amount.
	Charges string
	Tracks  []model.Track
}

// Render draws the column from start and returns the cursor below it.
func (r ShippingMethodRenderer) Render(page builder.Page, start layout.Cursor) layout.Cursor {
	c := start
	for _, l := range layout.Wrap(r.Description) {
		page.DrawText(strings.TrimSpace(layout.StripTags(l)), r.X, c.Y())
		c = c.Reserve(layout.LineHeight)
	}
	page.DrawText("(Total Shipping Charges "+r.Charges+")", r.X, c.Y()-layout.LineHeight)
	c = c.Reserve(layout.LineHeight + 10)

	if len(r.Tracks) == 0 {
		return c.Reserve(trackRowHeight)
	}
	return r.renderTracks(page, c)
}

func (r ShippingMethodRenderer) renderTracks(page builder.Page, c layout.Cursor) layout.Cursor {
	y := c.Y()
	page.SetFillColor(bandFill)
	page.SetLineWidth(0.5)
	page.DrawRectangle(r.X, y, r.X+trackTableWidth, y-trackHeaderLine)
	page.DrawLine(r.X+trackDividerX, y, r.X+trackDividerX, y-trackHeaderLine)

	page.SetFont(builder.FontRegular, 9)
	page.SetFillColor(black)
	page.DrawText("Title", r.X+trackHeaderX, y-7)
	page.DrawText("Number", r.X+trackNumberX, y-7)

	c = c.Reserve(trackHeaderShift)
	page.SetFont(builder.FontRegular, 8)
	for _, t := range r.Tracks {
		page.DrawText(TruncateTitle(t.Title), r.X+trackTitleX, c.Y())
		page.DrawText(t.Number, r.X+trackNumberX, c.Y())
		c = c.Reserve(trackRowHeight)
	}
	return c
}

// CloseMethodBox draws the left, bottom and right edges of the payment and
// shipping method box from methodStart down to the lower of the two column
// ends, which it returns. The top edge belongs to the band above.
func CloseMethodBox(page builder.Page, methodStart, paymentEnd, shippingEnd layout.Cursor) layout.Cursor {
	end := layout.Reconcile(paymentEnd, shippingEnd)
	page.DrawLine(layout.MarginLeft, methodStart.Y(), layout.MarginLeft, end.Y())
	page.DrawLine(layout.MarginLeft, end.Y(), layout.MarginRight, end.Y())
	page.DrawLine(layout.MarginRight, end.Y(), layout.MarginRight, methodStart.Y())
	return end
}
