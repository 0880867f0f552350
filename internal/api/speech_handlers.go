package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hyerin/tinywords/internal/services"
)

func (s *Server) handleCreateSpeechAttempt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input services.SpeechAttemptInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	attempt, err := s.SpeechService.CreateAttempt(ctx, userFromContext(ctx), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, attempt)
}

type updateScoreRequest struct {
	PronunciationScore int    `json:"pronunciation_score"`
	ScoringVersion     string `json:"scoring_version"`
}

func (s *Server) handleUpdateSpeechScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	speechID := chi.URLParam(r, "speechID")

	var req updateScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	attempt, err := s.SpeechService.UpdateScore(ctx, userFromContext(ctx), speechID, req.PronunciationScore, req.ScoringVersion)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, attempt)
}
