package metrics

import (
	"context"
	"net/http"
	"time"
)

// OpsServer exposes the operational HTTP endpoints: Prometheus metrics,
// health, readiness, and liveness.
type OpsServer struct {
	mux *http.ServeMux
	srv *http.Server
}

// NewOpsServer creates an operational endpoint server bound to addr
func NewOpsServer(addr string) *OpsServer {
	mux := http.NewServeMux()

	// Register endpoints
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", HealthHandler())
	mux.HandleFunc("/ready", ReadyHandler())
	mux.HandleFunc("/live", LivenessHandler())

	return &OpsServer{
		mux: mux,
		srv: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start serves until the listener fails or Shutdown is called
func (s *OpsServer) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests up to the
// context deadline
func (s *OpsServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// GetHandler returns the HTTP handler for embedding in other servers
func (s *OpsServer) GetHandler() http.Handler {
	return s.mux
}
