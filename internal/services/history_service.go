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

// History is the learning-history view: streak header plus recent
// completed days, newest first.
type History struct {
	Streak models.StreakState  `json:"streak"`
	Days   []models.HistoryDay `json:"days"`
}

// HistoryService assembles the history screen
type HistoryService interface {
	Get(ctx context.Context, userID string, limit int) (*History, error)
}

type historyService struct {
	plans     repository.PlanRepository
	reviews   repository.ReviewRepository
	streaks   repository.StreakRepository
	sentences repository.SentenceRepository
	speech    repository.SpeechRepository
	events    EventRecorder
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(
	plans repository.PlanRepository,
	reviews repository.ReviewRepository,
	streaks repository.StreakRepository,
	sentences repository.SentenceRepository,
	speech repository.SpeechRepository,
	events EventRecorder,
) HistoryService {
	return &historyService{
		plans:     plans,
		reviews:   reviews,
		streaks:   streaks,
		sentences: sentences,
		speech:    speech,
		events:    events,
	}
}

func (s *historyService) Get(ctx context.Context, userID string, limit int) (*History, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting history: user_id=%s limit=%d", userID, limit)

	state, err := s.streaks.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	plans, err := s.plans.ListCompleted(ctx, userID, limit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	history := &History{Streak: state, Days: make([]models.HistoryDay, 0, len(plans))}
	for _, p := range plans {
		day := models.HistoryDay{
			PlanDate:       p.PlanDate,
			PlanStatus:     p.Status,
			LearningTarget: p.DailyTarget,
		}

		itemIDs := make([]string, 0, len(p.Items))
		for _, item := range p.Items {
			itemIDs = append(itemIDs, item.ID)
		}
		sentences, err := s.sentences.LatestByPlanItems(ctx, userID, itemIDs)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		attempts, err := s.speech.LatestByPlanItems(ctx, userID, itemIDs)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}

		for _, item := range p.Items {
			if item.IsCompleted {
				day.LearningDone++
			}
			h := models.HistoryItem{
				Lemma:          item.Lemma,
				Meaning:        item.Meaning,
				ItemType:       item.ItemType,
				RecallStatus:   item.RecallStatus,
				SentenceStatus: item.SentenceStatus,
				SpeechStatus:   item.SpeechStatus,
				IsCompleted:    item.IsCompleted,
			}
			h.UserSentence = sentences[item.ID]
			if attempt, ok := attempts[item.ID]; ok {
				h.PronunciationScore = attempt.PronunciationScore
			}
			day.Items = append(day.Items, h)
		}

		day.ReviewDone, err = s.reviews.CountDoneOn(ctx, userID, p.PlanDate)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		day.ReviewPending, err = s.reviews.CountQueuedDueBy(ctx, userID, p.PlanDate)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}

		history.Days = append(history.Days, day)
	}

	s.events.Record(models.ActivityEvent{
		ID:         uuid.NewString(),
		UserID:     userID,
		EventName:  models.EventHistoryOpened,
		EntityType: "history",
		EntityID:   userID,
		Payload:    map[string]any{"days": len(history.Days)},
		OccurredAt: time.Now().UTC(),
	})
	return history, nil
}
