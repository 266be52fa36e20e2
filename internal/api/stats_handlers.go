package api

import (
	"net/http"
	"strconv"

	"github.com/lucasb/storyquest/internal/models"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	summary, err := s.Stats.Dashboard(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	rows, err := s.Stats.CategoryBreakdown(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": rows})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	filter := models.EventFilter{
		ProfileID: profile.ID,
		Type:      r.URL.Query().Get("type"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	events, err := s.Stats.Activity(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (s *Server) handleListBadges(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	badges, err := s.Badges.List(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"badges": badges})
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	if err := s.Progress.Reset(r.Context(), profile.ID); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reset": profile.ID})
}
