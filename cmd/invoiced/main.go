package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"

	"github.com/wudi/invoicekit/app"
	"github.com/wudi/invoicekit/config"
	"github.com/wudi/invoicekit/observability"
	"github.com/wudi/invoicekit/server"
)

// main loads the configuration, wires the renderer and serves it until
// interrupted.
func main() {
	configPath := flag.String("config", "", "Configuration file (JSON)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invoiced: %v\n", err)
		os.Exit(2)
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: observability.ParseLevel(cfg.LogLevel)}))
	logger := observability.NewSlogLogger(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := app.New(cfg,
		app.WithLogger(logger),
		app.WithMetrics(observability.NewMetrics(reg)),
		app.WithTracer(observability.NewOTelTracer(otel.Tracer("github.com/wudi/invoicekit"))),
	)
	if err != nil {
		log.Error("wiring failed", "error", err)
		os.Exit(1)
	}
	srv, err := server.New(a.Assembler, server.WithLogger(logger), server.WithGatherer(reg))
	if err != nil {
		log.Error("server setup failed", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("starting invoiced", "addr", cfg.Listen, "stores", a.Stores.IDs())
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("stopped")
}
