package invoice

import (
	"strconv"
	"strings"

	"github.com/wudi/invoicekit/builder"
	"github.com/wudi/invoicekit/layout"
	"github.com/wudi/invoicekit/model"
	"github.com/wudi/invoicekit/observability"
)

// BaseDocumentRenderer draws the parts of a sales document that surround
// the header: store identity, the item table and the totals.
type BaseDocumentRenderer interface {
	// InsertLogo draws the store logo and moves the cursor below it.
	InsertLogo(pos layout.Position, storeID string) layout.Position
	// InsertStoreAddress draws the store address right-aligned at the top
	// of the page and moves the cursor below it.
	InsertStoreAddress(pos layout.Position, storeID string) layout.Position
	// DrawTableHeader draws the item table header at c and returns the
	// cursor for the first row. It is also called on continuation pages.
	DrawTableHeader(page builder.Page, c layout.Cursor) layout.Cursor
	// DrawItem draws one item row. The flag reports that the row started a
	// new page; the returned position is then on that page.
	DrawItem(e *layout.Engine, pos layout.Position, order *model.Order, item model.LineItem) (layout.Position, bool)
	// InsertTotals draws the document totals below the item table.
	InsertTotals(e *layout.Engine, pos layout.Position, order *model.Order, totals model.Totals) layout.Position
}

// Logo placement.
const (
	logoTop      = 830.0
	logoMaxSize  = 270.0
	addressTop   = 815.0
	addressLine  = 10.0
	addressFeed  = 130.0
	addressWidth = 440.0
)

// StandardRenderer is the BaseDocumentRenderer of invoices and packing
// slips.
type StandardRenderer struct {
	kind      model.DocumentKind
	stores    StoreDirectory
	prices    PriceFormatter
	loadImage func(string) (*builder.Image, error)
	logger    observability.Logger
}

// RendererOption configures a StandardRenderer.
type RendererOption func(*StandardRenderer)

// WithStores sets where logos and store addresses are looked up.
func WithStores(s StoreDirectory) RendererOption {
	return func(r *StandardRenderer) { r.stores = s }
}

// WithRendererLogger sets the logger of the renderer.
func WithRendererLogger(l observability.Logger) RendererOption {
	return func(r *StandardRenderer) { r.logger = l }
}

// WithLogoLoader replaces the image loader used for logos.
func WithLogoLoader(fn func(string) (*builder.Image, error)) RendererOption {
	return func(r *StandardRenderer) { r.loadImage = fn }
}

// NewStandardRenderer returns the renderer for documents of kind.
func NewStandardRenderer(kind model.DocumentKind, prices PriceFormatter, opts ...RendererOption) *StandardRenderer {
	r := &StandardRenderer{
		kind:      kind,
		prices:    prices,
		loadImage: builder.LoadImage,
		logger:    observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *StandardRenderer) profile(storeID string) (StoreProfile, bool) {
	if r.stores == nil {
		return StoreProfile{}, false
	}
	return r.stores.Profile(storeID)
}

func (r *StandardRenderer) InsertLogo(pos layout.Position, storeID string) layout.Position {
	p, ok := r.profile(storeID)
	if !ok || p.Logo == "" {
		return pos
	}
	img, err := r.loadImage(p.Logo)
	if err != nil {
		r.logger.Warn("logo omitted",
			observability.String("store", storeID),
			observability.String("path", p.Logo),
			observability.Error("error", err),
		)
		return pos
	}
	w, h := LogoSize(float64(img.SrcWidth), float64(img.SrcHeight))
	x1, y1 := layout.MarginLeft, logoTop-h
	pos.Page.DrawImage(img, x1, y1, x1+w, logoTop)
	pos.Cursor = layout.Reconcile(pos.Cursor, layout.NewCursor(y1-10))
	return pos
}

// LogoSize fits an image of w×h into the logo box keeping its aspect ratio.
// Images that already fit keep their size.
func LogoSize(w, h float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	ratio := w / h
	switch {
	case ratio > 1 && w > logoMaxSize:
		return logoMaxSize, logoMaxSize / ratio
	case ratio < 1 && h > logoMaxSize:
		return logoMaxSize * ratio, logoMaxSize
	case ratio == 1 && h > logoMaxSize:
		return logoMaxSize, logoMaxSize
	}
	return w, h
}

func (r *StandardRenderer) InsertStoreAddress(pos layout.Position, storeID string) layout.Position {
	p, ok := r.profile(storeID)
	if !ok {
		return pos
	}
	page := pos.Page
	page.SetFillColor(black)
	page.SetFont(builder.FontRegular, 10)
	page.SetLineWidth(0)
	top := addressTop
	for _, value := range p.Address {
		if value == "" {
			continue
		}
		for _, l := range layout.Wrap(value) {
			text := strings.TrimSpace(layout.StripTags(l))
			page.DrawText(text, layout.AlignRightX(page, text, addressFeed, addressWidth), top)
			top -= addressLine
		}
	}
	pos.Cursor = layout.Reconcile(pos.Cursor, layout.NewCursor(top))
	return pos
}

func (r *StandardRenderer) DrawTableHeader(page builder.Page, c layout.Cursor) layout.Cursor {
	page.SetFont(builder.FontRegular, 10)
	page.SetFillColor(bandFill)
	page.SetLineColor(builder.Gray(0.5))
	page.SetLineWidth(0.5)
	page.DrawRectangle(layout.MarginLeft, c.Y(), layout.MarginRight, c.Y()-15)
	c = c.Reserve(10)
	page.SetFillColor(black)

	var (
		row     layout.Row
		spacing float64
	)
	if r.kind == model.KindShipment {
		row = layout.Row{
			{Text: []string{"Products"}, Feed: 100},
			{Text: []string{"Qty"}, Feed: 35},
			{Text: []string{"SKU"}, Feed: 565, Align: layout.AlignRight},
		}
		spacing = 10
	} else {
		row = layout.Row{
			{Text: []string{"Products"}, Feed: 35},
			{Text: []string{"SKU"}, Feed: 290, Align: layout.AlignRight},
			{Text: []string{"Qty"}, Feed: 435, Align: layout.AlignRight},
			{Text: []string{"Price"}, Feed: 360, Align: layout.AlignRight},
			{Text: []string{"Tax"}, Feed: 495, Align: layout.AlignRight},
			{Text: []string{"Subtotal"}, Feed: 565, Align: layout.AlignRight},
		}
		spacing = 5
	}
	c = c.Reserve(layout.DrawRow(page, c.Y(), row, spacing))
	return c.Reserve(20)
}

func (r *StandardRenderer) DrawItem(e *layout.Engine, pos layout.Position, order *model.Order, item model.LineItem) (layout.Position, bool) {
	var rows []layout.Row
	if r.kind == model.KindShipment {
		rows = shipmentRows(item)
	} else {
		rows = r.invoiceRows(order, item)
	}
	return e.DrawLineBlocks(pos, []layout.LineBlock{{Rows: rows, Spacing: 20}}, layout.PageSettings{TableHeader: true})
}

func (r *StandardRenderer) invoiceRows(order *model.Order, item model.LineItem) []layout.Row {
	price := func(v float64) []string { return []string{r.prices.FormatPrice(v, order.CurrencyCode, order.StoreID)} }
	first := layout.Row{
		{Text: layout.Wrap(item.Name, layout.WithWidth(35)), Feed: 35},
		{Text: layout.Chunk(item.SKU, 17), Feed: 290, Align: layout.AlignRight},
		{Text: []string{FormatQty(item.Qty)}, Feed: 435, Align: layout.AlignRight},
		{Text: price(item.Price), Feed: 395, Font: builder.FontBold, Align: layout.AlignRight},
		{Text: price(item.RowTotal), Feed: 565, Font: builder.FontBold, Align: layout.AlignRight},
		{Text: price(item.TaxAmount), Feed: 495, Font: builder.FontBold, Align: layout.AlignRight},
	}
	return append([]layout.Row{first}, optionRows(item.Options, 40, 35, 30, 40)...)
}

func shipmentRows(item model.LineItem) []layout.Row {
	first := layout.Row{
		{Text: []string{FormatQty(item.Qty)}, Feed: 35},
		{Text: layout.Wrap(item.Name, layout.WithWidth(60)), Feed: 100},
		{Text: layout.Chunk(item.SKU, 25), Feed: 565, Align: layout.AlignRight},
	}
	return append([]layout.Row{first}, optionRows(item.Options, 70, 110, 50, 115)...)
}

// optionRows lays out custom options: the label in italics, then one row
// per comma separated value.
func optionRows(options []model.ItemOption, labelWidth int, labelFeed float64, valueWidth int, valueFeed float64) []layout.Row {
	var rows []layout.Row
	for _, opt := range options {
		rows = append(rows, layout.Row{{
			Text: layout.Wrap(layout.StripTags(opt.Label), layout.WithWidth(labelWidth)),
			Feed: labelFeed,
			Font: builder.FontItalic,
		}})
		if opt.Value == "" {
			continue
		}
		for _, v := range strings.Split(opt.Value, ", ") {
			rows = append(rows, layout.Row{{
				Text: layout.Wrap(layout.StripTags(v), layout.WithWidth(valueWidth)),
				Feed: valueFeed,
			}})
		}
	}
	return rows
}

// FormatQty prints a quantity without trailing zeros.
func FormatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func (r *StandardRenderer) InsertTotals(e *layout.Engine, pos layout.Position, order *model.Order, totals model.Totals) layout.Position {
	block := layout.LineBlock{Spacing: 15}
	add := func(label string, amount float64) {
		block.Rows = append(block.Rows, layout.Row{
			{Text: []string{label}, Feed: 475, Align: layout.AlignRight, Font: builder.FontBold, FontSize: 10},
			{Text: []string{r.prices.FormatPrice(amount, order.CurrencyCode, order.StoreID)}, Feed: 565, Align: layout.AlignRight, Font: builder.FontBold, FontSize: 10},
		})
	}
	add("Subtotal:", totals.Subtotal)
	if totals.Discount != 0 {
		add("Discount:", totals.Discount)
	}
	if !order.IsVirtual() {
		add("Shipping & Handling:", totals.Shipping)
	}
	if totals.Tax != 0 {
		add("Tax:", totals.Tax)
	}
	add("Grand Total:", totals.GrandTotal)

	pos.Cursor = pos.Cursor.Reserve(20)
	pos, _ = e.DrawLineBlocks(pos, []layout.LineBlock{block}, layout.PageSettings{})
	return pos
}
