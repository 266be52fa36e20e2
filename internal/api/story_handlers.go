package api

import (
	"encoding/json"
	"net/http"

	"github.com/lucasb/storyquest/internal/errors"
)

func (s *Server) handleCurrentScene(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	scene, err := s.Story.CurrentScene(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scene)
}

func (s *Server) handleChoose(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req struct {
		Next string `json:"next"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
		return
	}
	if req.Next == "" {
		handleError(w, r, errors.NewValidationError("next", "cannot be empty"))
		return
	}

	scene, err := s.Story.Choose(r.Context(), profile.ID, req.Next)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scene)
}
