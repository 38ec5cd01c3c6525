// Package model holds the read-only sales documents the renderer consumes.
package model

import "time"

// Address is a raw postal address as stored on an order.
type Address struct {
	Company   string   `json:"company,omitempty"`
	Prefix    string   `json:"prefix,omitempty"`
	FirstName string   `json:"firstname,omitempty"`
	LastName  string   `json:"lastname,omitempty"`
	Suffix    string   `json:"suffix,omitempty"`
	Street    []string `json:"street,omitempty"`
	City      string   `json:"city,omitempty"`
	Region    string   `json:"region,omitempty"`
	Postcode  string   `json:"postcode,omitempty"`
	Country   string   `json:"country,omitempty"`
	Telephone string   `json:"telephone,omitempty"`
	Fax       string   `json:"fax,omitempty"`
	VATID     string   `json:"vat_id,omitempty"`
}

// Name joins the name parts that are set.
func (a Address) Name() string {
	name := ""
	for _, part := range []string{a.Prefix, a.FirstName, a.LastName, a.Suffix} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

// Payment is the payment record of an order.
type Payment struct {
	Method string `json:"method"`
	Title  string `json:"title"`
	// Info holds additional labelled rows (card type, last digits, PO number...).
	Info []PaymentInfo `json:"info,omitempty"`
}

// PaymentInfo is one labelled payment detail.
type PaymentInfo struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ItemOption is a custom option chosen for a line item.
type ItemOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// LineItem is an invoiced or shipped item row.
type LineItem struct {
	ID           string       `json:"id"`
	ParentItemID string       `json:"parent_item_id,omitempty"`
	ProductID    string       `json:"product_id"`
	SKU          string       `json:"sku"`
	Name         string       `json:"name"`
	Qty          float64      `json:"qty"`
	Price        float64      `json:"price"`
	TaxAmount    float64      `json:"tax_amount"`
	RowTotal     float64      `json:"row_total"`
	Options      []ItemOption `json:"options,omitempty"`
}

// IsChild reports whether the item belongs to a parent item (bundle or
// configurable child). Child items are never drawn as rows of their own.
func (i LineItem) IsChild() bool { return i.ParentItemID != "" }

// Order is a placed sales order.
type Order struct {
	IncrementID         string    `json:"increment_id"`
	StoreID             string    `json:"store_id"`
	CreatedAt           time.Time `json:"created_at"`
	CurrencyCode        string    `json:"currency_code"`
	BillingAddress      Address   `json:"billing_address"`
	ShippingAddress     *Address  `json:"shipping_address,omitempty"`
	Payment             Payment   `json:"payment"`
	ShippingDescription string    `json:"shipping_description,omitempty"`
	ShippingAmount      float64   `json:"shipping_amount"`
}

// IsVirtual reports whether the order has no physical shipping component.
func (o *Order) IsVirtual() bool { return o.ShippingAddress == nil }

// Totals are the document level amounts printed under the item table.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	GrandTotal float64 `json:"grand_total"`
}

// Invoice is an invoice raised against an order.
type Invoice struct {
	IncrementID string     `json:"increment_id"`
	StoreID     string     `json:"store_id"`
	Order       *Order     `json:"order"`
	Items       []LineItem `json:"items"`
	Totals      Totals     `json:"totals"`
}

// Track is a carrier tracking entry.
type Track struct {
	Title  string `json:"title"`
	Number string `json:"number"`
}

// Shipment is a shipment of (part of) an order.
type Shipment struct {
	IncrementID string     `json:"increment_id"`
	StoreID     string     `json:"store_id"`
	Order       *Order     `json:"order"`
	Items       []LineItem `json:"items"`
	Tracks      []Track    `json:"tracks,omitempty"`
}

// DocumentKind names a kind of sales document.
type DocumentKind string

const (
	KindInvoice  DocumentKind = "invoice"
	KindShipment DocumentKind = "shipment"
)
