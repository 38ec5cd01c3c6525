// Package app wires the invoicekit components from a configuration.
package app

import (
	"errors"
	"fmt"

	"github.com/wudi/invoicekit/address"
	"github.com/wudi/invoicekit/catalog"
	"github.com/wudi/invoicekit/config"
	"github.com/wudi/invoicekit/invoice"
	"github.com/wudi/invoicekit/locale"
	"github.com/wudi/invoicekit/observability"
	"github.com/wudi/invoicekit/payment"
	"github.com/wudi/invoicekit/store"
)

// App is the set of wired components.
type App struct {
	Config    *config.Config
	Stores    *store.Registry
	Locale    *locale.Formatter
	Addresses *address.Formatter
	Catalog   *catalog.Resolver
	Assembler *invoice.Assembler
}

type options struct {
	logger  observability.Logger
	tracer  observability.Tracer
	metrics *observability.Metrics
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger passed to every component.
func WithLogger(l observability.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTracer sets the tracer of the assembler.
func WithTracer(t observability.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithMetrics sets the metrics of the assembler.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New builds the components described by cfg.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	o := options{logger: observability.NopLogger{}, tracer: observability.NopTracer()}
	for _, opt := range opts {
		opt(&o)
	}

	stores, err := store.NewRegistry(cfg.Stores, cfg.MediaDir, store.WithLogger(o.logger.With(observability.String("component", "store"))))
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	addresses := address.New()
	for target, text := range cfg.AddressTemplates {
		if err := addresses.SetTemplate(target, text); err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
	}

	var index map[string]string
	if cfg.CatalogFile != "" {
		if index, err = catalog.LoadIndex(cfg.CatalogFile); err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
	}
	thumbnails := catalog.NewResolver(cfg.MediaDir, index)

	formatter := locale.New(stores.LocaleOptions()...)
	assembler, err := invoice.NewAssembler(invoice.Dependencies{
		Addresses:  addresses,
		Payments:   payment.New(),
		Dates:      formatter,
		Prices:     formatter,
		Thumbnails: thumbnails,
		Scope:      stores,
		Settings:   stores,
		Stores:     stores,
	},
		invoice.WithLogger(o.logger.With(observability.String("component", "invoice"))),
		invoice.WithTracer(o.tracer),
		invoice.WithMetrics(o.metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	return &App{
		Config:    cfg,
		Stores:    stores,
		Locale:    formatter,
		Addresses: addresses,
		Catalog:   thumbnails,
		Assembler: assembler,
	}, nil
}
