// Package payment renders the payment record of an order into the markup
// printed in the payment method column of sales documents.
package payment

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/wudi/invoicekit/model"
)

// RowSeparator delimits the rows of rendered payment markup.
const RowSeparator = "{{pdf_row_separator}}"

// RowsFunc returns the display rows of a payment method. Rows may contain
// simple markup such as <br/> and <strong>.
type RowsFunc func(p model.Payment) []string

// Provider renders payment records. Methods without a registered RowsFunc
// print their title followed by "Label: Value" rows.
type Provider struct {
	methods map[string]RowsFunc
}

// Option configures a Provider.
type Option func(*Provider)

// WithMethod registers the rows of a payment method code.
func WithMethod(code string, fn RowsFunc) Option {
	return func(p *Provider) {
		p.methods[code] = fn
	}
}

// New returns a Provider knowing the offline methods checkmo and
// purchaseorder.
func New(opts ...Option) *Provider {
	p := &Provider{methods: map[string]RowsFunc{
		"checkmo":       checkMoneyOrder,
		"purchaseorder": purchaseOrder,
	}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render returns the payment markup: rows joined by RowSeparator, with
// values HTML-escaped.
func (p *Provider) Render(pay model.Payment) string {
	fn, ok := p.methods[pay.Method]
	if !ok {
		fn = defaultRows
	}
	return strings.Join(fn(pay), RowSeparator)
}

func title(pay model.Payment) string {
	if pay.Title != "" {
		return pay.Title
	}
	return pay.Method
}

func defaultRows(pay model.Payment) []string {
	rows := []string{html.EscapeString(title(pay))}
	for _, info := range pay.Info {
		rows = append(rows, labelled(info.Label, info.Value))
	}
	return rows
}

func labelled(label, value string) string {
	if label == "" {
		return html.EscapeString(value)
	}
	return html.EscapeString(label) + ": " + html.EscapeString(value)
}

func checkMoneyOrder(pay model.Payment) []string {
	rows := []string{html.EscapeString(title(pay))}
	for _, info := range pay.Info {
		switch info.Label {
		case "payable_to":
			rows = append(rows, labelled("Make Check payable to", info.Value))
		case "mailing_address":
			// The mailing address keeps its own line breaks.
			lines := strings.Split(info.Value, "\n")
			for i := range lines {
				lines[i] = html.EscapeString(lines[i])
			}
			rows = append(rows, "Send Check to:<br/>"+strings.Join(lines, "<br/>"))
		default:
			rows = append(rows, labelled(info.Label, info.Value))
		}
	}
	return rows
}

func purchaseOrder(pay model.Payment) []string {
	rows := []string{html.EscapeString(title(pay))}
	for _, info := range pay.Info {
		if info.Label == "po_number" {
			rows = append(rows, labelled("Purchase Order Number", info.Value))
			continue
		}
		rows = append(rows, labelled(info.Label, info.Value))
	}
	return rows
}
