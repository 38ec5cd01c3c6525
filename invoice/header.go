package invoice

import (
	"github.com/wudi/invoicekit/builder"
	"github.com/wudi/invoicekit/layout"
	"github.com/wudi/invoicekit/locale"
	"github.com/wudi/invoicekit/model"
)

// Column anchors of the two-column header blocks.
const (
	leftColumnX  = 35.0
	rightColumnX = 285.0
	columnSplit  = 275.0
)

var (
	bandFill = builder.RGB(0.93, 0.92, 0.92)
	white    = builder.Gray(1)
	black    = builder.Gray(0)
)

// HeaderRenderer draws the order metadata box and the column blocks below
// it: Sold to / Ship to addresses, then Payment Method / Shipping Method for
// physical orders, or Sold to / Payment Method for virtual ones.
type HeaderRenderer struct {
	Addresses AddressFormatter
	Payments  PaymentInfoProvider
	Dates     DateFormatter
	Prices    PriceFormatter
	// Reverser reorders right-to-left address lines; nil leaves them.
	Reverser layout.Reverser
}

// Header is where a rendered header sits on its page.
type Header struct {
	// Top is the upper edge of the metadata box; the document title is
	// printed relative to it.
	Top float64
	// End is the cursor below the header.
	End layout.Cursor
}

// Render draws the header for src from start.
func (h HeaderRenderer) Render(page builder.Page, start layout.Cursor, src model.Resolved, putOrderID bool) Header {
	order := src.Order
	top := start.Y()

	page.SetFillColor(white)
	page.SetLineColor(builder.Gray(0.45))
	page.DrawRectangle(layout.MarginLeft, top, layout.MarginRight, top-55)
	page.SetFillColor(black)
	page.SetFont(builder.FontRegular, 10)

	y := top
	if putOrderID {
		page.DrawText("Order # "+order.IncrementID, leftColumnX, y-30)
		y -= 15
	}
	y -= 30
	page.DrawText("Order Date: "+h.Dates.FormatDate(order.CreatedAt, order.StoreID, locale.DateMedium), leftColumnX, y)
	y -= 10

	h.drawBands(page, y)
	page.SetFillColor(black)
	page.SetFont(builder.FontBold, 12)
	page.DrawText("Sold to:", leftColumnX, y-15)
	if order.IsVirtual() {
		page.DrawText("Payment Method:", rightColumnX, y-15)
	} else {
		page.DrawText("Ship to:", rightColumnX, y-15)
	}

	cols := layout.DualColumn{Left: h.addressBlock(leftColumnX, &order.BillingAddress)}
	if !order.IsVirtual() {
		cols.Right = h.addressBlock(rightColumnX, order.ShippingAddress)
	}
	page.SetFillColor(white)
	page.DrawRectangle(layout.MarginLeft, y-25, layout.MarginRight, y-33-cols.Height())
	page.SetFillColor(black)
	page.SetFont(builder.FontRegular, 10)

	addressStart := layout.NewCursor(y - 40)
	addressEnd := cols.Render(page, addressStart)
	segments := SplitPaymentBlock(h.Payments.Render(order.Payment))

	if order.IsVirtual() {
		pay := PaymentMethodRenderer{X: rightColumnX, Segments: segments}
		end := layout.Reconcile(addressEnd, pay.Render(page, addressStart.Fork()))
		page.DrawLine(layout.MarginLeft, y-25, layout.MarginLeft, end.Y())
		page.DrawLine(layout.MarginRight, y-25, layout.MarginRight, end.Y())
		page.DrawLine(layout.MarginLeft, end.Y(), layout.MarginRight, end.Y())
		return Header{Top: top, End: end.Reserve(layout.LineHeight)}
	}

	c := addressEnd
	h.drawBands(page, c.Y())
	c = c.Reserve(15)
	page.SetFont(builder.FontBold, 12)
	page.SetFillColor(black)
	page.DrawText("Payment Method:", leftColumnX, c.Y())
	page.DrawText("Shipping Method:", rightColumnX, c.Y())
	c = c.Reserve(10)
	page.SetFont(builder.FontRegular, 10)

	methodStart := c
	columnStart := methodStart.Reserve(layout.LineHeight)
	payEnd := PaymentMethodRenderer{X: leftColumnX, Segments: segments}.Render(page, columnStart.Fork())
	shipEnd := ShippingMethodRenderer{
		X:           rightColumnX,
		Description: order.ShippingDescription,
		Charges:     h.Prices.FormatPrice(order.ShippingAmount, order.CurrencyCode, order.StoreID),
		Tracks:      src.Tracks,
	}.Render(page, columnStart.Fork())
	end := CloseMethodBox(page, methodStart, payEnd, shipEnd)
	return Header{Top: top, End: end.Reserve(layout.LineHeight)}
}

func (h HeaderRenderer) addressBlock(x float64, addr *model.Address) layout.AddressBlock {
	return layout.AddressBlock{X: x, Lines: h.Addresses.Format(addr, AddressTarget), Reverser: h.Reverser}
}

// drawBands draws the grey title bands of a two-column block at y.
func (h HeaderRenderer) drawBands(page builder.Page, y float64) {
	page.SetFillColor(bandFill)
	page.SetLineColor(builder.Gray(0.5))
	page.SetLineWidth(0.5)
	page.DrawRectangle(layout.MarginLeft, y, columnSplit, y-25)
	page.DrawRectangle(columnSplit, y, layout.MarginRight, y-25)
}
