package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lucasb/storyquest/internal/errors"
	"github.com/lucasb/storyquest/internal/models"
)

func (s *Server) handleStartPuzzle(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req struct {
		SceneID string `json:"scene_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
		return
	}
	if req.SceneID == "" {
		handleError(w, r, errors.NewValidationError("scene_id", "cannot be empty"))
		return
	}

	view, err := s.Puzzles.StartPuzzle(r.Context(), profile.ID, req.SceneID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleNextPuzzle(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
		return
	}
	category, ok := models.ParseCategory(req.Category)
	if !ok {
		handleError(w, r, errors.NewValidationError("category", "must be math, language or science"))
		return
	}

	view, err := s.Puzzles.NextPuzzle(r.Context(), profile.ID, category)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")

	var req struct {
		Answer models.Answer `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid answer payload"))
		return
	}
	if req.Answer.IsZero() {
		handleError(w, r, errors.NewValidationError("answer", "cannot be empty"))
		return
	}

	view, err := s.Puzzles.SubmitAnswer(r.Context(), sessionID, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRequestHint(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")

	view, err := s.Puzzles.RequestHint(r.Context(), sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
