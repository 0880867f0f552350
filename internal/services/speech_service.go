package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hyerin/tinywords/internal/errors"
	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/repository"
)

// SpeechAttemptInput is the payload for recording a speech attempt.
type SpeechAttemptInput struct {
	PlanItemID         string `json:"plan_item_id"`
	AudioURI           string `json:"audio_uri"`
	DurationMs         int    `json:"duration_ms"`
	PronunciationScore *int   `json:"pronunciation_score"`
	ScoringVersion     string `json:"scoring_version"`
}

// SpeechService handles speech attempt business logic
type SpeechService interface {
	CreateAttempt(ctx context.Context, userID string, input SpeechAttemptInput) (*models.SpeechAttempt, error)
	// UpdateScore attaches an externally computed pronunciation score.
	UpdateScore(ctx context.Context, userID, speechID string, score int, scoringVersion string) (*models.SpeechAttempt, error)
}

type speechService struct {
	speech repository.SpeechRepository
}

// NewSpeechService creates a new SpeechService
func NewSpeechService(speech repository.SpeechRepository) SpeechService {
	return &speechService{speech: speech}
}

func (s *speechService) CreateAttempt(ctx context.Context, userID string, input SpeechAttemptInput) (*models.SpeechAttempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating speech attempt: plan_item_id=%s", input.PlanItemID)

	if input.PlanItemID == "" {
		return nil, errors.NewValidationError("plan_item_id", "must not be empty")
	}
	if input.AudioURI == "" {
		return nil, errors.NewValidationError("audio_uri", "must not be empty")
	}
	if input.DurationMs < 0 {
		return nil, errors.NewValidationError("duration_ms", "must not be negative")
	}
	if input.PronunciationScore != nil {
		if err := validateScore(*input.PronunciationScore); err != nil {
			return nil, err
		}
	}

	attempt := models.SpeechAttempt{
		ID:                 uuid.NewString(),
		UserID:             userID,
		PlanItemID:         input.PlanItemID,
		AudioURI:           input.AudioURI,
		DurationMs:         input.DurationMs,
		PronunciationScore: input.PronunciationScore,
		ScoringVersion:     input.ScoringVersion,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.speech.Insert(ctx, attempt); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &attempt, nil
}

func (s *speechService) UpdateScore(ctx context.Context, userID, speechID string, score int, scoringVersion string) (*models.SpeechAttempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating speech score: speech_id=%s score=%d", speechID, score)

	if err := validateScore(score); err != nil {
		return nil, err
	}

	attempt, err := s.speech.Get(ctx, userID, speechID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if attempt == nil {
		return nil, errors.NewNotFoundError("speech attempt", speechID)
	}

	if err := s.speech.UpdateScore(ctx, userID, speechID, score, scoringVersion); err != nil {
		return nil, errors.NewInternalError(err)
	}
	attempt.PronunciationScore = &score
	attempt.ScoringVersion = scoringVersion
	return attempt, nil
}

func validateScore(score int) error {
	if score < 0 || score > 100 {
		return errors.NewValidationError("pronunciation_score", "must be between 0 and 100")
	}
	return nil
}
