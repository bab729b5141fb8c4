package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"inkpress/internal/retention"
	"inkpress/pkg/logger"
	"inkpress/pkg/store"
	"inkpress/pkg/telemetry"
)

// StartBackground launches the cache retention scheduler and, when an
// address is configured, a metrics listener. Both stop when the app is
// closed.
func (a *App) StartBackground(ctx context.Context) error {
	cancel, err := retention.Start(ctx, a.Config.Retention)
	if err != nil {
		return err
	}
	a.cancelRetention = cancel

	if addr := a.Config.Metrics.Addr; addr != "" {
		a.cancelMetrics = startMetrics(addr)
	}
	return nil
}

// startMetrics serves Prometheus metrics plus a tiny health probe on
// addr and returns a shutdown func.
func startMetrics(addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", telemetry.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !store.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"store closed"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics_listener_failed", "addr", addr, "error", err)
		}
	}()
	logger.Info("metrics_listener_started", "addr", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
