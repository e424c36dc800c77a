package status

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ingestHealthTimeout bounds the transport probe inside /api/v1/health.
const ingestHealthTimeout = 2 * time.Second

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/latest", s.handleLatest)
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth reports the loop state and, when configured, whether the
// ingest transport answers. An unhealthy transport does not make the
// daemon unhealthy: cycles keep running and are discarded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state, latest := s.snapshot()

	body := map[string]any{
		"status":         "ok",
		"version":        s.version,
		"state":          state,
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	}
	if latest != nil {
		body["last_cycle"] = latest.Seq
	}

	if s.ingest != nil {
		ctx, cancel := context.WithTimeout(r.Context(), ingestHealthTimeout)
		defer cancel()

		ingest := map[string]any{"transport": s.ingest.Name(), "healthy": true}
		if err := s.ingest.HealthCheck(ctx); err != nil {
			ingest["healthy"] = false
			ingest["error"] = err.Error()
			body["status"] = "degraded"
		}
		body["ingest"] = ingest
	}

	writeJSON(w, http.StatusOK, body)
}

// handleLatest returns the most recent cycle report.
func (s *Server) handleLatest(w http.ResponseWriter, _ *http.Request) {
	_, latest := s.snapshot()
	if latest == nil {
		writeNotFound(w, "no cycle has completed yet")
		return
	}
	writeJSON(w, http.StatusOK, latest)
}
