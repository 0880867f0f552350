package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hyerin/tinywords/internal/dateutil"
	"github.com/hyerin/tinywords/internal/models"
)

func (s *Server) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userFromContext(ctx)
	today := dateutil.Today(locationFromContext(ctx))

	queue, err := s.ReviewService.GetQueue(ctx, userID, today)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, queue)
}

type submitReviewRequest struct {
	Result models.ReviewResult `json:"result"`
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userFromContext(ctx)
	reviewID := chi.URLParam(r, "reviewID")
	today := dateutil.Today(locationFromContext(ctx))
	requestID := r.Header.Get(HeaderRequestID)

	var req submitReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.ReviewService.Submit(ctx, userID, reviewID, req.Result, today, requestID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}
