package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/invoicekit/app"
	"github.com/wudi/invoicekit/builder"
	"github.com/wudi/invoicekit/config"
	"github.com/wudi/invoicekit/invoice"
	"github.com/wudi/invoicekit/model"
	"github.com/wudi/invoicekit/observability"
)

func newRouter(t *testing.T) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	cfg := config.Default()
	cfg.Stores[0].Address = []string{"Main Store"}
	a, err := app.New(cfg, app.WithMetrics(observability.NewMetrics(reg)))
	require.NoError(t, err)
	s, err := New(a.Assembler,
		WithGatherer(reg),
		WithClock(func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }),
	)
	require.NoError(t, err)
	return s.Router(), reg
}

func testOrder() *model.Order {
	return &model.Order{
		IncrementID:         "100000001",
		StoreID:             config.DefaultStoreID,
		CreatedAt:           time.Date(2024, time.May, 4, 10, 0, 0, 0, time.UTC),
		CurrencyCode:        "USD",
		BillingAddress:      model.Address{FirstName: "Ada", LastName: "Lovelace", City: "London"},
		ShippingAddress:     &model.Address{FirstName: "Bob", City: "Paris"},
		Payment:             model.Payment{Method: "checkmo", Title: "Check / Money order"},
		ShippingDescription: "Flat Rate",
		ShippingAmount:      5,
	}
}

func invoicesBody(t *testing.T, storeID string) []byte {
	t.Helper()
	body, err := json.Marshal(InvoicesRequest{Invoices: []*model.Invoice{{
		IncrementID: "200000001",
		StoreID:     storeID,
		Order:       testOrder(),
		Items:       []model.LineItem{{ID: "1", ProductID: "p1", SKU: "W-1", Name: "Widget", Qty: 1, Price: 10, RowTotal: 10}},
		Totals:      model.Totals{Subtotal: 10, Shipping: 5, GrandTotal: 15},
	}}})
	require.NoError(t, err)
	return body
}

func post(router http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type trace struct {
	Pages []struct {
		Number int          `json:"number"`
		Ops    []builder.Op `json:"ops"`
	} `json:"pages"`
}

func traceTexts(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var tr trace
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tr))
	var texts []string
	for _, p := range tr.Pages {
		for _, op := range p.Ops {
			if op.Kind == builder.OpText {
				texts = append(texts, op.Text)
			}
		}
	}
	return texts
}

func TestInvoicesPDF(t *testing.T) {
	router, reg := newRouter(t)

	rec := post(router, "/v1/invoices/pdf", invoicesBody(t, config.DefaultStoreID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "1", rec.Header().Get(PageCountHeader))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))

	id := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "invoices-"+id+".pdf")

	metrics := httptest.NewRecorder()
	router.ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), `invoicekit_sales_documents_rendered_total{kind="invoice"} 1`)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestInvoicesTrace(t *testing.T) {
	router, _ := newRouter(t)

	rec := post(router, "/v1/invoices/pdf?format=trace", invoicesBody(t, config.DefaultStoreID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	texts := traceTexts(t, rec)
	assert.Contains(t, texts, "Invoice # 200000001")
	assert.Contains(t, texts, "Main Store")
	assert.Contains(t, texts, "Widget")
	assert.Contains(t, texts, "Grand Total:")
}

func TestShipmentsTrace(t *testing.T) {
	router, _ := newRouter(t)
	body, err := json.Marshal(ShipmentsRequest{Shipments: []*model.Shipment{{
		IncrementID: "300000001",
		Order:       testOrder(),
		Items:       []model.LineItem{{ID: "1", ProductID: "p1", SKU: "W-1", Name: "Widget", Qty: 2}},
		Tracks:      []model.Track{{Title: "UPS", Number: "1Z999"}},
	}}})
	require.NoError(t, err)

	rec := post(router, "/v1/shipments/pdf?format=trace", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	texts := traceTexts(t, rec)
	assert.Contains(t, texts, "Packing Slip # 300000001")
	assert.Contains(t, texts, "1Z999")
	assert.NotContains(t, texts, "Grand Total:")
}

func TestRequestErrors(t *testing.T) {
	router, _ := newRouter(t)

	missingOrder, err := json.Marshal(InvoicesRequest{Invoices: []*model.Invoice{{IncrementID: "1"}}})
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		body   []byte
		status int
	}{
		{"malformed json", "/v1/invoices/pdf", []byte(`{"invoices": [`), http.StatusBadRequest},
		{"no invoices", "/v1/invoices/pdf", []byte(`{"invoices": []}`), http.StatusBadRequest},
		{"no shipments", "/v1/shipments/pdf", []byte(`{}`), http.StatusBadRequest},
		{"unknown store", "/v1/invoices/pdf", invoicesBody(t, "missing"), http.StatusUnprocessableEntity},
		{"missing order", "/v1/invoices/pdf", missingOrder, http.StatusUnprocessableEntity},
		{"null shipment", "/v1/shipments/pdf", []byte(`{"shipments": [null]}`), http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(router, tt.path, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, rec.Header().Get(RequestIDHeader), resp.RequestID)
		})
	}
}

type failingRenderer struct{ err error }

func (f failingRenderer) RenderInvoices(context.Context, builder.Document, []*model.Invoice) ([]invoice.Result, error) {
	return nil, f.err
}

func (f failingRenderer) RenderShipments(context.Context, builder.Document, []*model.Shipment) ([]invoice.Result, error) {
	return nil, f.err
}

func TestRenderFailure(t *testing.T) {
	s, err := New(failingRenderer{err: errors.New("disk full")})
	require.NoError(t, err)

	rec := post(s.Router(), "/v1/invoices/pdf", invoicesBody(t, config.DefaultStoreID))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "disk full")
}

func TestRequestIDPropagation(t *testing.T) {
	router, _ := newRouter(t)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestNew_RequiresRenderer(t *testing.T) {
	_, err := New(nil)
	assert.ErrorContains(t, err, "renderer is required")
}
