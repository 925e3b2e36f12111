package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/reusee/taibar/logs"
)

func (m *Metrics) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	return mux
}

// Serve serves the metrics on addr until ctx is done. Listen failures are
// logged and the bar keeps running without metrics.
func (m *Metrics) Serve(ctx context.Context, addr Addr, logger logs.Logger) {
	if addr == "" {
		return
	}
	listener, err := net.Listen("tcp", string(addr))
	if err != nil {
		logger.WarnContext(ctx, "metrics server disabled", "addr", addr, "error", err)
		return
	}

	server := &http.Server{
		Handler:      m.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.InfoContext(ctx, "metrics server started", "addr", listener.Addr().String())
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.ErrorContext(ctx, "metrics server", "error", err)
	}
}
