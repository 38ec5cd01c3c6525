package invoice

import (
	"fmt"
	"time"

	"github.com/wudi/invoicekit/builder"
	"github.com/wudi/invoicekit/locale"
	"github.com/wudi/invoicekit/model"
)

// fakeAddresses prints the name, the street lines and the city.
type fakeAddresses struct{}

func (fakeAddresses) Format(addr *model.Address, _ string) []string {
	if addr == nil {
		return nil
	}
	var lines []string
	for _, l := range append(append([]string{addr.Name()}, addr.Street...), addr.City) {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

type paymentFunc func(model.Payment) string

func (f paymentFunc) Render(p model.Payment) string { return f(p) }

func titlePayment(p model.Payment) string { return p.Title }

type fakeDates struct{}

func (fakeDates) FormatDate(t time.Time, _ string, _ locale.DateStyle) string {
	return t.Format("2006-01-02")
}

type fakePrices struct{}

func (fakePrices) FormatPrice(amount float64, _, _ string) string {
	return fmt.Sprintf("$%.2f", amount)
}

type settingsFunc func(storeID string, kind model.DocumentKind) bool

func (f settingsFunc) PutOrderID(storeID string, kind model.DocumentKind) bool { return f(storeID, kind) }

type fakeStores map[string]StoreProfile

func (s fakeStores) Profile(id string) (StoreProfile, bool) {
	p, ok := s[id]
	return p, ok
}

func fakeImage(path string) (*builder.Image, error) {
	return &builder.Image{Name: "img:" + path, Width: 100, Height: 50, SrcWidth: 600, SrcHeight: 300}, nil
}

func testHeader() HeaderRenderer {
	return HeaderRenderer{
		Addresses: fakeAddresses{},
		Payments:  paymentFunc(titlePayment),
		Dates:     fakeDates{},
		Prices:    fakePrices{},
	}
}

func physicalOrder() *model.Order {
	return &model.Order{
		IncrementID:         "100000001",
		StoreID:             "default",
		CreatedAt:           time.Date(2024, time.May, 4, 10, 0, 0, 0, time.UTC),
		CurrencyCode:        "USD",
		BillingAddress:      model.Address{FirstName: "Ada", LastName: "Lovelace", City: "London"},
		ShippingAddress:     &model.Address{FirstName: "Bob"},
		Payment:             model.Payment{Method: "checkmo", Title: "Check / Money order"},
		ShippingDescription: "Flat Rate - Fixed",
		ShippingAmount:      5,
	}
}

func virtualOrder() *model.Order {
	o := physicalOrder()
	o.ShippingAddress = nil
	o.ShippingDescription = ""
	return o
}

func textAt(page *builder.RecordedPage, text string) (float64, float64, bool) {
	op, ok := page.Find(text)
	return op.X1, op.Y1, ok
}
