package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts rendering work. A nil *Metrics records nothing.
type Metrics struct {
	// Finished documents by outcome
	Documents *prometheus.CounterVec

	// Rendered sales documents by kind
	Rendered *prometheus.CounterVec

	// Pages started, and pages started because content overflowed
	Pages         prometheus.Counter
	Continuations prometheus.Counter

	// Thumbnails by result: placed, or the reason they were skipped
	Thumbnails *prometheus.CounterVec

	RenderLatency prometheus.Histogram
}

// NewMetrics registers the renderer metrics with reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Documents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "invoicekit_documents_total",
			Help: "Assembled documents by outcome",
		}, []string{"outcome"}),

		Rendered: f.NewCounterVec(prometheus.CounterOpts{
			Name: "invoicekit_sales_documents_rendered_total",
			Help: "Invoices and packing slips rendered, by kind",
		}, []string{"kind"}),

		Pages: f.NewCounter(prometheus.CounterOpts{
			Name: "invoicekit_pages_total",
			Help: "Pages started",
		}),

		Continuations: f.NewCounter(prometheus.CounterOpts{
			Name: "invoicekit_page_continuations_total",
			Help: "Pages started because item rows or totals overflowed",
		}),

		Thumbnails: f.NewCounterVec(prometheus.CounterOpts{
			Name: "invoicekit_thumbnails_total",
			Help: "Product thumbnails by result",
		}, []string{"result"}),

		RenderLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "invoicekit_render_duration_seconds",
			Help:    "Duration of rendering one batch of documents",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncDocument records a finished document with outcome "ok" or "error".
func (m *Metrics) IncDocument(outcome string) {
	if m != nil {
		m.Documents.WithLabelValues(outcome).Inc()
	}
}

// IncRendered records one rendered sales document.
func (m *Metrics) IncRendered(kind string) {
	if m != nil {
		m.Rendered.WithLabelValues(kind).Inc()
	}
}

// IncPage records a started page.
func (m *Metrics) IncPage(continuation bool) {
	if m == nil {
		return
	}
	m.Pages.Inc()
	if continuation {
		m.Continuations.Inc()
	}
}

// IncThumbnail records a thumbnail result.
func (m *Metrics) IncThumbnail(result string) {
	if m != nil {
		m.Thumbnails.WithLabelValues(result).Inc()
	}
}

// ObserveRender records the duration of one render.
func (m *Metrics) ObserveRender(d time.Duration) {
	if m != nil {
		m.RenderLatency.Observe(d.Seconds())
	}
}
