package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/wudi/invoicekit/app"
	"github.com/wudi/invoicekit/builder"
	"github.com/wudi/invoicekit/config"
	"github.com/wudi/invoicekit/invoice"
	"github.com/wudi/invoicekit/model"
	"github.com/wudi/invoicekit/observability"
	"github.com/wudi/invoicekit/server"
)

type options struct {
	configPath string
	inPath     string
	outPath    string
	kind       model.DocumentKind
	dump       bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invoicepdf: %v\n", err)
		os.Exit(2)
	}
	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "invoicepdf: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: invoicepdf [flags]\n")
		flag.PrintDefaults()
	}
	configPath := flag.String("config", "", "Configuration file (JSON)")
	in := flag.String("in", "-", "Input documents (JSON), - for stdin")
	out := flag.String("out", "invoice.pdf", "Output file, - for stdout")
	kind := flag.String("kind", string(model.KindInvoice), "Document kind: invoice or shipment")
	dump := flag.Bool("dump", false, "Write the layout trace as JSON instead of a PDF")
	flag.Parse()

	switch model.DocumentKind(*kind) {
	case model.KindInvoice, model.KindShipment:
	default:
		flag.Usage()
		return options{}, fmt.Errorf("unknown kind %q", *kind)
	}
	opts.configPath = *configPath
	opts.inPath = *in
	opts.outPath = *out
	opts.kind = model.DocumentKind(*kind)
	opts.dump = *dump
	return opts, nil
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger := observability.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: observability.ParseLevel(cfg.LogLevel),
	})))
	a, err := app.New(cfg, app.WithLogger(logger))
	if err != nil {
		return err
	}

	input, err := readInput(opts.inPath)
	if err != nil {
		return err
	}

	var doc builder.Document
	if opts.dump {
		doc = builder.NewRecorder()
	} else {
		doc = builder.NewPDF(builder.WithTitle(string(opts.kind)))
	}
	results, err := render(ctx, a.Assembler, doc, opts.kind, input)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return err
	}
	if opts.outPath == "-" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(opts.outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.outPath, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d documents, %d pages, %d bytes)\n", opts.outPath, len(results), doc.PageCount(), buf.Len())
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func render(ctx context.Context, a *invoice.Assembler, doc builder.Document, kind model.DocumentKind, input []byte) ([]invoice.Result, error) {
	if kind == model.KindShipment {
		var req server.ShipmentsRequest
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, fmt.Errorf("parse shipments: %w", err)
		}
		return a.RenderShipments(ctx, doc, req.Shipments)
	}
	var req server.InvoicesRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return nil, fmt.Errorf("parse invoices: %w", err)
	}
	return a.RenderInvoices(ctx, doc, req.Invoices)
}
