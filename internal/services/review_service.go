package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hyerin/tinywords/internal/errors"
	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/repository"
	"github.com/hyerin/tinywords/internal/review"
)

// ReviewQueue is the review inbox: summary header plus ordered tasks.
type ReviewQueue struct {
	Summary models.ReviewQueueSummary `json:"summary"`
	Tasks   []models.QueuedReviewTask `json:"tasks"`
}

// SubmitReviewResult is the outcome of a review submission.
type SubmitReviewResult struct {
	Task            models.ReviewTask  `json:"task"`
	NextTask        *models.ReviewTask `json:"next_task"`
	NextTaskCreated bool               `json:"next_task_created"`
	PolicyVersion   string             `json:"policy_version"`
}

// ReviewService handles spaced-review business logic
type ReviewService interface {
	GetQueue(ctx context.Context, userID, today string) (*ReviewQueue, error)
	// Submit applies a review result. Safe to retry with the same
	// request ID.
	Submit(ctx context.Context, userID, reviewID string, result models.ReviewResult, today, requestID string) (*SubmitReviewResult, error)
}

type reviewService struct {
	reviews repository.ReviewRepository
	items   repository.LearningItemRepository
	idem    repository.IdempotencyRepository
	events  EventRecorder
	idemTTL time.Duration
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviews repository.ReviewRepository,
	items repository.LearningItemRepository,
	idem repository.IdempotencyRepository,
	events EventRecorder,
	idemTTL time.Duration,
) ReviewService {
	return &reviewService{
		reviews: reviews,
		items:   items,
		idem:    idem,
		events:  events,
		idemTTL: idemTTL,
	}
}

func (s *reviewService) GetQueue(ctx context.Context, userID, today string) (*ReviewQueue, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting review queue: user_id=%s today=%s", userID, today)

	tasks, err := s.reviews.ListQueued(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	sorted := review.SortQueue(tasks, today)

	queue := &ReviewQueue{
		Summary: models.ReviewQueueSummary{QueuedTotal: len(sorted)},
		Tasks:   make([]models.QueuedReviewTask, 0, len(sorted)),
	}

	itemIDs := make([]string, 0, len(sorted))
	for _, t := range sorted {
		itemIDs = append(itemIDs, t.LearningItemID)
		if review.IsOverdue(t, today) {
			queue.Summary.OverdueCount++
		} else if t.DueDate == today {
			queue.Summary.DueTodayCount++
		}
	}

	items, err := s.items.ListByIDs(ctx, userID, itemIDs)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	byID := make(map[string]models.LearningItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	for _, t := range sorted {
		enriched := models.QueuedReviewTask{ReviewTask: t}
		if item, ok := byID[t.LearningItemID]; ok {
			enriched.Lemma = item.Lemma
			enriched.Meaning = item.Meaning
			enriched.ItemType = item.ItemType
			enriched.Example = item.Example
		}
		queue.Tasks = append(queue.Tasks, enriched)
	}
	return queue, nil
}

func (s *reviewService) Submit(ctx context.Context, userID, reviewID string, result models.ReviewResult, today, requestID string) (*SubmitReviewResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting review: review_id=%s result=%s", reviewID, result)

	switch result {
	case models.ResultSuccess, models.ResultHard, models.ResultFail:
	default:
		return nil, errors.NewValidationError("result", "must be success, hard or fail")
	}

	key := ""
	if requestID != "" {
		key = IdempotencyKey("POST", "/api/v1/reviews/"+reviewID+"/submit", requestID)
		var cached SubmitReviewResult
		if replayCached(ctx, s.idem, key, &cached) {
			return &cached, nil
		}
	}

	task, err := s.reviews.Get(ctx, userID, reviewID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if task == nil {
		return nil, errors.NewNotFoundError("review task", reviewID)
	}
	if task.Status != models.ReviewQueued {
		return nil, errors.NewConflictError("review task is already completed")
	}

	now := time.Now().UTC()
	outcome := review.SubmitReview(*task, result, today, now, func(stage models.ReviewStage, dueDate string) models.ReviewTask {
		return models.ReviewTask{
			ID:             uuid.NewString(),
			UserID:         userID,
			LearningItemID: task.LearningItemID,
			DueDate:        dueDate,
			Stage:          stage,
			Status:         models.ReviewQueued,
			CreatedAt:      now,
		}
	})

	if err := s.reviews.Update(ctx, outcome.UpdatedTask); err != nil {
		return nil, errors.NewInternalError(err)
	}

	if outcome.NextTask != nil {
		exists, err := s.reviews.ExistsQueued(ctx, userID, task.LearningItemID, outcome.NextTask.Stage)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		if exists {
			log.Debug("next review already queued for item %s stage %s", task.LearningItemID, outcome.NextTask.Stage)
			outcome.NextTask = nil
			outcome.NextTaskCreated = false
		} else if err := s.reviews.Insert(ctx, *outcome.NextTask); err != nil {
			// The partial unique index backstops a racing submit.
			if err == repository.ErrDuplicate {
				log.Debug("next review queued concurrently for item %s", task.LearningItemID)
				outcome.NextTask = nil
				outcome.NextTaskCreated = false
			} else {
				return nil, errors.NewInternalError(err)
			}
		}
	}

	s.events.Record(models.ActivityEvent{
		ID:         uuid.NewString(),
		UserID:     userID,
		EventName:  models.EventReviewCompleted,
		EntityType: "review_task",
		EntityID:   reviewID,
		Payload: map[string]any{
			"result":         result,
			"stage":          task.Stage,
			"policy_version": outcome.PolicyVersion,
		},
		OccurredAt: now,
	})

	out := &SubmitReviewResult{
		Task:            outcome.UpdatedTask,
		NextTask:        outcome.NextTask,
		NextTaskCreated: outcome.NextTaskCreated,
		PolicyVersion:   outcome.PolicyVersion,
	}
	storeCached(ctx, s.idem, key, userID, out, s.idemTTL)
	return out, nil
}
