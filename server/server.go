// Package server exposes document rendering over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wudi/invoicekit/builder"
	"github.com/wudi/invoicekit/invoice"
	"github.com/wudi/invoicekit/model"
	"github.com/wudi/invoicekit/observability"
	"github.com/wudi/invoicekit/store"
)

// RequestIDHeader carries the id of a request in both directions.
const RequestIDHeader = "X-Request-ID"

// Response headers describing a rendered document.
const (
	PageCountHeader = "X-Page-Count"
	FormatTrace     = "trace"
)

const maxBodyBytes = 8 << 20

// Renderer renders sales documents into a document.
type Renderer interface {
	RenderInvoices(ctx context.Context, doc builder.Document, invoices []*model.Invoice) ([]invoice.Result, error)
	RenderShipments(ctx context.Context, doc builder.Document, shipments []*model.Shipment) ([]invoice.Result, error)
}

// InvoicesRequest is the body of POST /v1/invoices/pdf.
type InvoicesRequest struct {
	Invoices []*model.Invoice `json:"invoices"`
}

// ShipmentsRequest is the body of POST /v1/shipments/pdf.
type ShipmentsRequest struct {
	Shipments []*model.Shipment `json:"shipments"`
}

// ErrorResponse is the body of failed requests.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type requestIDKey struct{}

// Server routes HTTP requests to a Renderer.
type Server struct {
	renderer Renderer
	logger   observability.Logger
	gatherer prometheus.Gatherer
	timeout  time.Duration
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l observability.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithGatherer exposes the metrics of g at /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithTimeout bounds the time spent rendering one request.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithClock sets the clock used for PDF creation dates.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a Server.
func New(r Renderer, opts ...Option) (*Server, error) {
	if r == nil {
		return nil, errors.New("server: renderer is required")
	}
	s := &Server{
		renderer: r,
		logger:   observability.NopLogger{},
		timeout:  30 * time.Second,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Router returns the HTTP handler of the server.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(s.timeout))
		r.Post("/invoices/pdf", s.handleInvoices)
		r.Post("/shipments/pdf", s.handleShipments)
	})
	return r
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// RequestID returns the id assigned to the request of ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			observability.String("request_id", RequestID(r.Context())),
			observability.String("method", r.Method),
			observability.String("path", r.URL.Path),
			observability.Int("status", ww.Status()),
			observability.Int("bytes", ww.BytesWritten()),
			observability.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
		)
	})
}

func (s *Server) handleInvoices(w http.ResponseWriter, r *http.Request) {
	var req InvoicesRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Invoices) == 0 {
		s.writeError(w, r, http.StatusBadRequest, errors.New("no invoices in request"))
		return
	}
	s.render(w, r, "invoices", func(ctx context.Context, doc builder.Document) ([]invoice.Result, error) {
		return s.renderer.RenderInvoices(ctx, doc, req.Invoices)
	})
}

func (s *Server) handleShipments(w http.ResponseWriter, r *http.Request) {
	var req ShipmentsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Shipments) == 0 {
		s.writeError(w, r, http.StatusBadRequest, errors.New("no shipments in request"))
		return
	}
	s.render(w, r, "packingslips", func(ctx context.Context, doc builder.Document) ([]invoice.Result, error) {
		return s.renderer.RenderShipments(ctx, doc, req.Shipments)
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

type renderFunc func(ctx context.Context, doc builder.Document) ([]invoice.Result, error)

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, fn renderFunc) {
	ctx := r.Context()
	trace := r.URL.Query().Get("format") == FormatTrace

	var doc builder.Document
	if trace {
		doc = builder.NewRecorder()
	} else {
		doc = builder.NewPDF(builder.WithTitle(name), builder.WithCreationDate(s.now()))
	}
	results, err := fn(ctx, doc)
	if err != nil {
		s.writeError(w, r, statusOf(err), err)
		return
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	for _, res := range results {
		for _, img := range res.Images {
			if img.Skipped() {
				s.logger.Debug("thumbnail skipped",
					observability.String("request_id", RequestID(ctx)),
					observability.String("document", res.IncrementID),
					observability.String("item", img.ItemID),
				)
			}
		}
	}

	h := w.Header()
	h.Set(PageCountHeader, strconv.Itoa(doc.PageCount()))
	if trace {
		h.Set("Content-Type", "application/json")
	} else {
		h.Set("Content-Type", "application/pdf")
		h.Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s-%s.pdf"`, name, RequestID(ctx)))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrUnsupportedSource),
		errors.Is(err, model.ErrMissingOrder),
		errors.Is(err, invoice.ErrNilDocument),
		errors.Is(err, store.ErrUnknownStore):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled):
		return 499
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := RequestID(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", observability.String("request_id", id), observability.Error("error", err))
	} else {
		s.logger.Warn("request rejected", observability.String("request_id", id), observability.Error("error", err))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error(), RequestID: id})
}
