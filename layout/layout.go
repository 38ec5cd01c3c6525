// Package layout computes where the blocks of a sales document go: it owns
// the page cursor, text wrapping, column reconciliation and the line block
// flow that continues content onto new pages.
package layout

import (
	"github.com/wudi/invoicekit/builder"
)

// Position is the active page together with the cursor on it.
type Position struct {
	Page   builder.Page
	Cursor Cursor
}

// PageSettings describe how continuation pages are started.
type PageSettings struct {
	// TableHeader redraws the item table header on new pages.
	TableHeader bool
}

// Engine starts pages for a document and flows line blocks across them.
type Engine struct {
	doc          builder.Document
	pageTop      float64
	bottomMargin float64
	tableHeader  func(builder.Page, Cursor) Cursor
	onNewPage    []func(builder.Page)
}

// Option defines a configuration option for the Engine.
type Option func(*Engine)

// WithTableHeader sets the function drawing the table header on
// continuation pages.
func WithTableHeader(fn func(builder.Page, Cursor) Cursor) Option {
	return func(e *Engine) {
		e.tableHeader = fn
	}
}

// WithPageTop sets the cursor position of new pages.
func WithPageTop(y float64) Option {
	return func(e *Engine) {
		e.pageTop = y
	}
}

// WithBottomMargin sets the lowest position content may be drawn at.
func WithBottomMargin(y float64) Option {
	return func(e *Engine) {
		e.bottomMargin = y
	}
}

// WithPageListener registers fn to be called for every page the engine
// starts.
func WithPageListener(fn func(builder.Page)) Option {
	return func(e *Engine) {
		e.onNewPage = append(e.onNewPage, fn)
	}
}

// NewEngine creates a layout engine drawing into doc.
func NewEngine(doc builder.Document, opts ...Option) *Engine {
	e := &Engine{
		doc:          doc,
		pageTop:      PageTop,
		bottomMargin: BottomMargin,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document returns the document the engine draws into.
func (e *Engine) Document() builder.Document { return e.doc }

// NewPage starts a page and returns the position at its top, below the
// table header if the settings ask for one.
func (e *Engine) NewPage(settings PageSettings) Position {
	page := e.doc.NewPage()
	for _, fn := range e.onNewPage {
		fn(page)
	}
	pos := Position{Page: page, Cursor: NewCursor(e.pageTop)}
	if settings.TableHeader && e.tableHeader != nil {
		pos.Cursor = e.tableHeader(page, pos.Cursor)
	}
	return pos
}

// fits reports whether h more units fit above the bottom margin.
func (e *Engine) fits(c Cursor, h float64) bool { return c.Y()-h >= e.bottomMargin }
