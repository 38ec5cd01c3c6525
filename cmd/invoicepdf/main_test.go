package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const invoicesJSON = `{
  "invoices": [{
    "increment_id": "200000001",
    "store_id": "default",
    "order": {
      "increment_id": "100000001",
      "store_id": "default",
      "created_at": "2024-05-04T10:00:00Z",
      "currency_code": "USD",
      "billing_address": {"firstname": "Ada", "lastname": "Lovelace", "city": "London"},
      "payment": {"method": "checkmo", "title": "Check / Money order"}
    },
    "items": [{"id": "1", "product_id": "p1", "sku": "W-1", "name": "Widget", "qty": 1, "price": 10, "row_total": 10}],
    "totals": {"subtotal": 10, "grand_total": 10}
  }]
}`

func TestRun_Dump(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")
	if err := os.WriteFile(in, []byte(invoicesJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := run(context.Background(), options{inPath: in, outPath: out, kind: "invoice", dump: true}); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var trace struct {
		Pages []struct {
			Ops []struct {
				Text string `json:"text"`
			} `json:"ops"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(data, &trace); err != nil {
		t.Fatalf("decode trace: %v", err)
	}
	if len(trace.Pages) != 1 {
		t.Fatalf("expected one page, got %d", len(trace.Pages))
	}
	var found bool
	for _, op := range trace.Pages[0].Ops {
		if op.Text == "Invoice # 200000001" {
			found = true
		}
	}
	if !found {
		t.Fatalf("title missing from trace")
	}
}

func TestRun_PDF(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.pdf")
	if err := os.WriteFile(in, []byte(invoicesJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := run(context.Background(), options{inPath: in, outPath: out, kind: "invoice"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", data[:min(len(data), 8)])
	}
}

func TestRun_BadInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	if err := os.WriteFile(in, []byte(`{"shipments": [`), 0o600); err != nil {
		t.Fatal(err)
	}
	err := run(context.Background(), options{inPath: in, outPath: filepath.Join(dir, "out.pdf"), kind: "shipment"})
	if err == nil || !strings.Contains(err.Error(), "parse shipments") {
		t.Fatalf("expected parse error, got %v", err)
	}
}
