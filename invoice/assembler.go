// Package invoice lays out invoices and packing slips: the order header with
// its address, payment and shipping columns, the item table with product
// thumbnails, and the totals.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wudi/invoicekit/builder"
	"github.com/wudi/invoicekit/layout"
	"github.com/wudi/invoicekit/model"
	"github.com/wudi/invoicekit/observability"
)

// ErrNilDocument is returned when a batch contains a nil invoice or shipment.
// Nothing of the batch is drawn.
var ErrNilDocument = errors.New("invoice: nil document")

// SalesDocument is one document to lay out.
type SalesDocument struct {
	Kind        model.DocumentKind
	IncrementID string
	// StoreID selects the store scope entered while rendering; empty keeps
	// the current scope.
	StoreID string
	Source  model.DocumentSource
	Items   []model.LineItem
	// Totals are printed under the item table when set.
	Totals *model.Totals
}

// Title is the document title line.
func (d SalesDocument) Title() string {
	if d.Kind == model.KindShipment {
		return "Packing Slip # " + d.IncrementID
	}
	return "Invoice # " + d.IncrementID
}

// Result describes a rendered document.
type Result struct {
	Kind        model.DocumentKind
	IncrementID string
	// FirstPage and LastPage are the page numbers the document spans.
	FirstPage int
	LastPage  int
	Images    []ImageResult
}

// Dependencies are the collaborators of an Assembler. Addresses, Payments,
// Dates and Prices are required.
type Dependencies struct {
	Addresses  AddressFormatter
	Payments   PaymentInfoProvider
	Dates      DateFormatter
	Prices     PriceFormatter
	Thumbnails ThumbnailResolver
	Scope      StoreScope
	Settings   Settings
	Stores     StoreDirectory
}

// Assembler renders sales documents into a builder.Document, one after the
// other. Renders are serialized because store scopes are process wide.
type Assembler struct {
	mu        sync.Mutex
	deps      Dependencies
	header    HeaderRenderer
	renderers map[model.DocumentKind]BaseDocumentRenderer
	loadImage func(string) (*builder.Image, error)
	logger    observability.Logger
	tracer    observability.Tracer
	metrics   *observability.Metrics
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger.
func WithLogger(l observability.Logger) Option {
	return func(a *Assembler) { a.logger = l }
}

// WithTracer sets the tracer.
func WithTracer(t observability.Tracer) Option {
	return func(a *Assembler) { a.tracer = t }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Assembler) { a.metrics = m }
}

// WithRenderer replaces the BaseDocumentRenderer of a document kind.
func WithRenderer(kind model.DocumentKind, r BaseDocumentRenderer) Option {
	return func(a *Assembler) { a.renderers[kind] = r }
}

// WithImageLoader replaces the loader of thumbnail and logo images.
func WithImageLoader(fn func(string) (*builder.Image, error)) Option {
	return func(a *Assembler) { a.loadImage = fn }
}

// WithReverser sets the right-to-left reverser applied to address lines.
func WithReverser(r layout.Reverser) Option {
	return func(a *Assembler) { a.header.Reverser = r }
}

// NewAssembler creates an Assembler.
func NewAssembler(deps Dependencies, opts ...Option) (*Assembler, error) {
	switch {
	case deps.Addresses == nil:
		return nil, errors.New("invoice: address formatter is required")
	case deps.Payments == nil:
		return nil, errors.New("invoice: payment info provider is required")
	case deps.Dates == nil:
		return nil, errors.New("invoice: date formatter is required")
	case deps.Prices == nil:
		return nil, errors.New("invoice: price formatter is required")
	}
	a := &Assembler{
		deps: deps,
		header: HeaderRenderer{
			Addresses: deps.Addresses,
			Payments:  deps.Payments,
			Dates:     deps.Dates,
			Prices:    deps.Prices,
			Reverser:  layout.RTLReverser{},
		},
		renderers: make(map[model.DocumentKind]BaseDocumentRenderer),
		loadImage: builder.LoadImage,
		logger:    observability.NopLogger{},
		tracer:    observability.NopTracer(),
	}
	for _, opt := range opts {
		opt(a)
	}
	for _, kind := range []model.DocumentKind{model.KindInvoice, model.KindShipment} {
		if _, ok := a.renderers[kind]; !ok {
			a.renderers[kind] = NewStandardRenderer(kind, deps.Prices,
				WithStores(deps.Stores),
				WithRendererLogger(a.logger),
				WithLogoLoader(a.loadImage),
			)
		}
	}
	return a, nil
}

// RenderInvoices renders invoices into doc.
func (a *Assembler) RenderInvoices(ctx context.Context, doc builder.Document, invoices []*model.Invoice) ([]Result, error) {
	docs := make([]SalesDocument, 0, len(invoices))
	for i, inv := range invoices {
		if inv == nil {
			return nil, fmt.Errorf("invoice %d: %w", i, ErrNilDocument)
		}
		totals := inv.Totals
		docs = append(docs, SalesDocument{
			Kind:        model.KindInvoice,
			IncrementID: inv.IncrementID,
			StoreID:     inv.StoreID,
			Source:      model.OrderSource{Order: inv.Order},
			Items:       inv.Items,
			Totals:      &totals,
		})
	}
	return a.Render(ctx, doc, docs...)
}

// RenderShipments renders packing slips into doc. Their headers list the
// tracking numbers of the shipment.
func (a *Assembler) RenderShipments(ctx context.Context, doc builder.Document, shipments []*model.Shipment) ([]Result, error) {
	docs := make([]SalesDocument, 0, len(shipments))
	for i, s := range shipments {
		if s == nil {
			return nil, fmt.Errorf("shipment %d: %w", i, ErrNilDocument)
		}
		docs = append(docs, SalesDocument{
			Kind:        model.KindShipment,
			IncrementID: s.IncrementID,
			StoreID:     s.StoreID,
			Source:      model.ShipmentSource{Shipment: s},
			Items:       s.Items,
		})
	}
	return a.Render(ctx, doc, docs...)
}

// Render renders docs in order into doc. It stops at the first document
// that fails; pages of the documents before it are complete.
func (a *Assembler) Render(ctx context.Context, doc builder.Document, docs ...SalesDocument) ([]Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()
	ctx, span := a.tracer.StartSpan(ctx, "invoicekit.render")
	defer span.Finish()
	span.SetTag("documents", len(docs))

	results := make([]Result, 0, len(docs))
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			span.SetError(err)
			return results, err
		}
		res, err := a.renderOne(ctx, doc, d)
		if err != nil {
			a.metrics.IncDocument("error")
			span.SetError(err)
			a.logger.Error("render failed",
				observability.String("kind", string(d.Kind)),
				observability.String("document", d.IncrementID),
				observability.Error("error", err),
			)
			return results, err
		}
		a.metrics.IncDocument("ok")
		results = append(results, res)
	}
	a.metrics.ObserveRender(time.Since(start))
	return results, nil
}

func (a *Assembler) renderOne(ctx context.Context, doc builder.Document, d SalesDocument) (res Result, err error) {
	ctx, span := a.tracer.StartSpan(ctx, "invoicekit.render_"+string(d.Kind))
	defer func() {
		span.SetError(err)
		span.Finish()
	}()
	span.SetTag("increment_id", d.IncrementID)

	src, err := model.Resolve(d.Source)
	if err != nil {
		return res, fmt.Errorf("%s %s: %w", d.Kind, d.IncrementID, err)
	}
	r, ok := a.renderers[d.Kind]
	if !ok {
		return res, fmt.Errorf("%s %s: no renderer for document kind", d.Kind, d.IncrementID)
	}

	if d.StoreID != "" && a.deps.Scope != nil {
		if err := a.deps.Scope.Enter(ctx, d.StoreID); err != nil {
			return res, fmt.Errorf("%s %s: enter store %s: %w", d.Kind, d.IncrementID, d.StoreID, err)
		}
		defer a.deps.Scope.Exit()
	}

	storeID := d.StoreID
	if storeID == "" {
		storeID = src.Order.StoreID
	} else if src.Order.StoreID != storeID {
		// Dates and prices follow the store of the document.
		order := *src.Order
		order.StoreID = storeID
		src.Order = &order
	}
	pages := 0
	engine := layout.NewEngine(doc,
		layout.WithTableHeader(r.DrawTableHeader),
		layout.WithPageListener(func(builder.Page) {
			pages++
			a.metrics.IncPage(pages > 1)
		}),
	)

	pos := engine.NewPage(layout.PageSettings{})
	res = Result{Kind: d.Kind, IncrementID: d.IncrementID, FirstPage: pos.Page.Number()}

	pos = r.InsertLogo(pos, storeID)
	pos = r.InsertStoreAddress(pos, storeID)
	hdr := a.header.Render(pos.Page, pos.Cursor, src, a.putOrderID(src.Order.StoreID, d.Kind))
	pos.Cursor = hdr.End
	insertDocumentNumber(pos.Page, hdr, d.Title())
	pos.Cursor = r.DrawTableHeader(pos.Page, pos.Cursor)

	items := ItemTableRenderer{
		renderer:   r,
		thumbnails: a.deps.Thumbnails,
		loadImage:  a.loadImage,
		logger:     a.logger.With(observability.String("document", d.IncrementID)),
		metrics:    a.metrics,
	}
	pos, res.Images = items.Render(ctx, engine, pos, src.Order, d.Items)

	if d.Totals != nil {
		pos = r.InsertTotals(engine, pos, src.Order, *d.Totals)
	}
	res.LastPage = pos.Page.Number()

	a.metrics.IncRendered(string(d.Kind))
	span.SetTag("pages", pages)
	a.logger.Info("document rendered",
		observability.String("kind", string(d.Kind)),
		observability.String("document", d.IncrementID),
		observability.String("store", storeID),
		observability.Int("pages", pages),
	)
	return res, nil
}

func (a *Assembler) putOrderID(storeID string, kind model.DocumentKind) bool {
	if a.deps.Settings == nil {
		return true
	}
	return a.deps.Settings.PutOrderID(storeID, kind)
}

// insertDocumentNumber prints the document title inside the metadata box.
func insertDocumentNumber(page builder.Page, hdr Header, text string) {
	page.SetFillColor(black)
	page.SetFont(builder.FontRegular, 10)
	page.DrawText(text, leftColumnX, hdr.Top-15)
}
