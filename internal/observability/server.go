package observability

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OpsServer exposes health probes and the prometheus scrape endpoint.
type OpsServer struct {
	server *http.Server
	logger *slog.Logger
	ready  func() bool
}

// NewOpsServer builds the ops HTTP server on addr. ready is consulted by the
// readiness probe; a nil ready always reports ready.
func NewOpsServer(addr string, obs *Observability, ready func() bool) *OpsServer {
	if ready == nil {
		ready = func() bool { return true }
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(10 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if !ready() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))

	return &OpsServer{
		server: &http.Server{Addr: addr, Handler: r},
		logger: obs.Logger,
		ready:  ready,
	}
}

// Start serves until the listener fails or Shutdown is called.
func (s *OpsServer) Start() {
	s.logger.Info("Ops server listening", slog.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Ops server stopped", slog.Any("error", err))
	}
}

// Shutdown drains the server.
func (s *OpsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
