package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"rutkit/internal/platform/config"
	"rutkit/internal/platform/httpserver"
	"rutkit/internal/platform/logger"
	"rutkit/internal/platform/metrics"
	ruthandler "rutkit/internal/rut/handler"
	rutmetrics "rutkit/internal/rut/metrics"
	rutservice "rutkit/internal/rut/service"
	httptransport "rutkit/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logs := logger.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := rutservice.New(
		rutservice.WithLogger(logs),
		rutservice.WithMetrics(rutmetrics.New(reg)),
		rutservice.WithLimits(cfg.Limits.MaxGenerateCount, cfg.Limits.MaxBatchSize),
	)
	router := httptransport.NewRouter(httptransport.Deps{
		RUT:            ruthandler.New(svc, logs),
		Logger:         logs,
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
		RequestTimeout: cfg.RequestTimeout,
	})
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logs.Info("starting rutkit server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logs.Info("shutting down rutkit server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logs.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
