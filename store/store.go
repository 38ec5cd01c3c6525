// Package store keeps the configured store views and the store scope that
// documents are rendered in.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/wudi/invoicekit/config"
	"github.com/wudi/invoicekit/invoice"
	"github.com/wudi/invoicekit/locale"
	"github.com/wudi/invoicekit/model"
	"github.com/wudi/invoicekit/observability"
)

// ErrUnknownStore is returned when entering a store that is not configured.
var ErrUnknownStore = errors.New("store: unknown store")

// View is a configured store with its parsed locale settings.
type View struct {
	ID       string
	Name     string
	Tag      language.Tag
	Location *time.Location
	Currency string
	Logo     string
	Address  []string

	putOrderIDInvoice  bool
	putOrderIDShipment bool
}

// Registry holds the store views and the scope stack. It implements
// invoice.StoreScope, invoice.Settings and invoice.StoreDirectory.
type Registry struct {
	views  map[string]View
	order  []string
	logger observability.Logger

	mu    sync.Mutex
	stack []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger of scope changes.
func WithLogger(l observability.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry builds the views of stores. Relative logo paths are resolved
// against mediaDir.
func NewRegistry(stores []config.Store, mediaDir string, opts ...Option) (*Registry, error) {
	r := &Registry{
		views:  make(map[string]View, len(stores)),
		logger: observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	var errs []error
	for _, s := range stores {
		v, err := newView(s, mediaDir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := r.views[v.ID]; dup {
			errs = append(errs, fmt.Errorf("store %s: duplicate id", v.ID))
			continue
		}
		r.views[v.ID] = v
		r.order = append(r.order, v.ID)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return r, nil
}

func newView(s config.Store, mediaDir string) (View, error) {
	tag := language.AmericanEnglish
	if s.Locale != "" {
		t, err := language.Parse(s.Locale)
		if err != nil {
			return View{}, fmt.Errorf("store %s: locale %q: %w", s.ID, s.Locale, err)
		}
		tag = t
	}
	loc := time.UTC
	if s.Timezone != "" {
		l, err := time.LoadLocation(s.Timezone)
		if err != nil {
			return View{}, fmt.Errorf("store %s: timezone %q: %w", s.ID, s.Timezone, err)
		}
		loc = l
	}
	logo := s.Logo
	if logo != "" && !filepath.IsAbs(logo) {
		logo = filepath.Join(mediaDir, logo)
	}
	return View{
		ID:                 s.ID,
		Name:               s.Name,
		Tag:                tag,
		Location:           loc,
		Currency:           s.Currency,
		Logo:               logo,
		Address:            s.Address,
		putOrderIDInvoice:  s.PutOrderIDInvoice == nil || *s.PutOrderIDInvoice,
		putOrderIDShipment: s.PutOrderIDShipment == nil || *s.PutOrderIDShipment,
	}, nil
}

// View returns the store with the given id.
func (r *Registry) View(id string) (View, bool) {
	v, ok := r.views[id]
	return v, ok
}

// IDs returns the store ids in configuration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Enter makes id the current store until the matching Exit.
func (r *Registry) Enter(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := r.views[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStore, id)
	}
	r.mu.Lock()
	r.stack = append(r.stack, id)
	depth := len(r.stack)
	r.mu.Unlock()
	r.logger.Debug("store scope entered", observability.String("store", id), observability.Int("depth", depth))
	return nil
}

// Exit restores the store that was current before the last Enter.
func (r *Registry) Exit() {
	r.mu.Lock()
	if len(r.stack) == 0 {
		r.mu.Unlock()
		r.logger.Warn("store scope exit without enter")
		return
	}
	id := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	depth := len(r.stack)
	r.mu.Unlock()
	r.logger.Debug("store scope exited", observability.String("store", id), observability.Int("depth", depth))
}

// Current returns the innermost entered store, or "" outside any scope.
func (r *Registry) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stack) == 0 {
		return ""
	}
	return r.stack[len(r.stack)-1]
}

// PutOrderID reports whether documents of kind print the order id. Unknown
// stores print it.
func (r *Registry) PutOrderID(storeID string, kind model.DocumentKind) bool {
	v, ok := r.views[storeID]
	if !ok {
		return true
	}
	if kind == model.KindShipment {
		return v.putOrderIDShipment
	}
	return v.putOrderIDInvoice
}

// Profile returns the identity printed at the top of the store's documents.
func (r *Registry) Profile(storeID string) (invoice.StoreProfile, bool) {
	v, ok := r.views[storeID]
	if !ok {
		return invoice.StoreProfile{}, false
	}
	return invoice.StoreProfile{Name: v.Name, Logo: v.Logo, Address: v.Address}, true
}

// LocaleOptions configures a locale.Formatter with the stores' locales and
// time zones.
func (r *Registry) LocaleOptions() []locale.Option {
	opts := make([]locale.Option, 0, len(r.order))
	for _, id := range r.order {
		v := r.views[id]
		opts = append(opts, locale.WithStore(id, v.Tag, v.Location))
	}
	return opts
}
