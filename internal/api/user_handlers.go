package api

import (
	"net/http"

	"github.com/hyerin/tinywords/internal/models"
)

func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userFromContext(ctx)
	timezone := r.Header.Get(HeaderTimezone)

	result, err := s.ProfileService.Initialize(ctx, userID, timezone)
	if err != nil {
		handleError(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	respondJSON(w, r, status, result)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := s.ProfileService.Get(ctx, userFromContext(ctx))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handlePatchProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var patch models.ProfilePatch
	if err := decodeJSON(r, &patch); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.Patch(ctx, userFromContext(ctx), patch)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleResetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.ProfileService.Reset(ctx, userFromContext(ctx)); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"reset": true})
}
