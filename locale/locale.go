// Package locale formats dates and amounts the way a store presents them.
package locale

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DateStyle selects how much of a date is printed.
type DateStyle int

const (
	DateShort DateStyle = iota
	DateMedium
	DateLong
)

var dateLayouts = map[DateStyle]string{
	DateShort:  "1/2/06",
	DateMedium: "Jan 2, 2006",
	DateLong:   "January 2, 2006",
}

// Store is the presentation context of one store.
type Store struct {
	Tag      language.Tag
	Location *time.Location
}

// Formatter formats dates in the time zone of a store and prices in the
// number format of its language.
type Formatter struct {
	mu       sync.RWMutex
	stores   map[string]Store
	fallback Store
	printers map[language.Tag]*message.Printer
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithStore registers the language and time zone of a store.
func WithStore(storeID string, tag language.Tag, loc *time.Location) Option {
	return func(f *Formatter) {
		if loc == nil {
			loc = time.UTC
		}
		f.stores[storeID] = Store{Tag: tag, Location: loc}
	}
}

// WithDefault sets the context used for stores that were not registered.
func WithDefault(tag language.Tag, loc *time.Location) Option {
	return func(f *Formatter) {
		if loc == nil {
			loc = time.UTC
		}
		f.fallback = Store{Tag: tag, Location: loc}
	}
}

// New returns a Formatter defaulting to US English in UTC.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		stores:   make(map[string]Store),
		fallback: Store{Tag: language.AmericanEnglish, Location: time.UTC},
		printers: make(map[language.Tag]*message.Printer),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Formatter) store(storeID string) Store {
	if s, ok := f.stores[storeID]; ok {
		return s
	}
	return f.fallback
}

// FormatDate prints t in the time zone of the store.
func (f *Formatter) FormatDate(t time.Time, storeID string, style DateStyle) string {
	layout, ok := dateLayouts[style]
	if !ok {
		layout = dateLayouts[DateMedium]
	}
	return t.In(f.store(storeID).Location).Format(layout)
}

// FormatPrice prints amount with the currency symbol and the grouping of the
// store's language; unregistered stores use the default language. An unknown
// currency code is printed as a prefix.
func (f *Formatter) FormatPrice(amount float64, currencyCode, storeID string) string {
	p := f.printer(f.store(storeID).Tag)
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	unit, err := currency.ParseISO(code)
	if err != nil {
		if code == "" {
			return p.Sprint(number.Decimal(amount, number.Scale(2)))
		}
		return code + " " + p.Sprint(number.Decimal(amount, number.Scale(2)))
	}
	scale, _ := currency.Standard.Rounding(unit)
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = math.Abs(amount)
	}
	symbol := p.Sprint(currency.Symbol(unit))
	return fmt.Sprintf("%s%s%s", sign, symbol, p.Sprint(number.Decimal(amount, number.Scale(scale))))
}

func (f *Formatter) printer(tag language.Tag) *message.Printer {
	f.mu.RLock()
	p, ok := f.printers[tag]
	f.mu.RUnlock()
	if ok {
		return p
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.printers[tag]; ok {
		return p
	}
	p = message.NewPrinter(tag)
	f.printers[tag] = p
	return p
}
