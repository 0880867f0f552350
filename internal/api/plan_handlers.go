package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hyerin/tinywords/internal/dateutil"
	"github.com/hyerin/tinywords/internal/models"
)

func (s *Server) handleGetToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userFromContext(ctx)
	today := dateutil.Today(locationFromContext(ctx))

	createIfMissing := r.URL.Query().Get("create_if_missing") != "false"

	result, err := s.PlanService.GetToday(ctx, userID, today, createIfMissing)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handlePatchPlanItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userFromContext(ctx)
	planID := chi.URLParam(r, "planID")
	itemID := chi.URLParam(r, "itemID")

	var patch models.PlanItemPatch
	if err := decodeJSON(r, &patch); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.PlanService.PatchItem(ctx, userID, planID, itemID, patch)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleCompletePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userFromContext(ctx)
	planID := chi.URLParam(r, "planID")

	// Only a client-supplied request ID makes the call retryable.
	requestID := r.Header.Get(HeaderRequestID)

	result, err := s.PlanService.Complete(ctx, userID, planID, requestID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}
