package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(s.profileMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/profiles", s.handleListProfiles)
		r.Post("/profiles", s.handleCreateProfile)
		r.Post("/profiles/{id}/select", s.handleSelectProfile)
		r.Post("/profiles/{id}/delete", s.handleDeleteProfile)

		r.Get("/story/scene", s.handleCurrentScene)
		r.Post("/story/choose", s.handleChoose)

		r.Post("/puzzles/start", s.handleStartPuzzle)
		r.Post("/puzzles/next", s.handleNextPuzzle)
		r.Post("/puzzles/{session}/answer", s.handleSubmitAnswer)
		r.Post("/puzzles/{session}/hint", s.handleRequestHint)

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/dashboard/categories", s.handleCategoryBreakdown)
		r.Get("/dashboard/activity", s.handleActivity)
		r.Get("/badges", s.handleListBadges)

		r.Post("/progress/reset", s.handleResetProgress)
	})

	return r
}
