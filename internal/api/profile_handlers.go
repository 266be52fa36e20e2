package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lucasb/storyquest/internal/errors"
	"github.com/lucasb/storyquest/internal/logger"
)

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.Profiles.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
		return
	}

	profile, err := s.Profiles.Create(r.Context(), req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setProfileCookie(w, profile.ID)
	writeJSON(w, http.StatusCreated, profile)
}

func (s *Server) handleSelectProfile(w http.ResponseWriter, r *http.Request) {
	id, err := profileIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.Profiles.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setProfileCookie(w, profile.ID)
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := profileIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Profiles.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("profile deleted via API: id=%d", id)
	clearProfileCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func profileIDParam(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid profile id")
	}
	return id, nil
}
