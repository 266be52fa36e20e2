package api

import (
	"net/http"

	"github.com/lucasb/storyquest/internal/logger"
)

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady is the readiness probe; it checks database connectivity.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if s.DB != nil {
		if err := s.DB.PingContext(r.Context()); err != nil {
			log.Warn("readiness check failed - database: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Database unavailable"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
