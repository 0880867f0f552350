package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hyerin/tinywords/internal/errors"
	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/plan"
	"github.com/hyerin/tinywords/internal/repository"
	"github.com/hyerin/tinywords/internal/streak"
	"github.com/hyerin/tinywords/internal/words"
)

// Word batch provenance, stored on learning items.
const (
	SourceAI       = "ai_generated"
	SourceFallback = "fallback_pool"
)

// TodayPlan is a day plan with its derived progress, as served to the
// Today screen.
type TodayPlan struct {
	Plan       models.DayPlan `json:"plan"`
	Progress   plan.Progress  `json:"progress"`
	WordSource string         `json:"word_source,omitempty"`
}

// CompletePlanResult is the outcome of completing a day plan.
type CompletePlanResult struct {
	Plan             models.DayPlan     `json:"plan"`
	Streak           models.StreakState `json:"streak"`
	ReviewsCreated   int                `json:"reviews_created"`
	AlreadyCompleted bool               `json:"already_completed"`
}

// PlanService handles day-plan business logic
type PlanService interface {
	// GetToday returns the plan for the given local date, creating one
	// when createIfMissing is set and none exists yet.
	GetToday(ctx context.Context, userID, today string, createIfMissing bool) (*TodayPlan, error)
	PatchItem(ctx context.Context, userID, planID, itemID string, patch models.PlanItemPatch) (*TodayPlan, error)
	// Complete marks the plan done, updates the streak and queues the
	// first reviews. Safe to retry with the same request ID.
	Complete(ctx context.Context, userID, planID, requestID string) (*CompletePlanResult, error)
}

type planService struct {
	plans     repository.PlanRepository
	items     repository.LearningItemRepository
	reviews   repository.ReviewRepository
	streaks   repository.StreakRepository
	sentences repository.SentenceRepository
	profiles  repository.ProfileRepository
	idem      repository.IdempotencyRepository
	supplier  words.Supplier
	events    EventRecorder
	idemTTL   time.Duration
}

// NewPlanService creates a new PlanService
func NewPlanService(
	plans repository.PlanRepository,
	items repository.LearningItemRepository,
	reviews repository.ReviewRepository,
	streaks repository.StreakRepository,
	sentences repository.SentenceRepository,
	profiles repository.ProfileRepository,
	idem repository.IdempotencyRepository,
	supplier words.Supplier,
	events EventRecorder,
	idemTTL time.Duration,
) PlanService {
	return &planService{
		plans:     plans,
		items:     items,
		reviews:   reviews,
		streaks:   streaks,
		sentences: sentences,
		profiles:  profiles,
		idem:      idem,
		supplier:  supplier,
		events:    events,
		idemTTL:   idemTTL,
	}
}

func (s *planService) GetToday(ctx context.Context, userID, today string, createIfMissing bool) (*TodayPlan, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting today plan: user_id=%s date=%s", userID, today)

	p, err := s.plans.GetByDate(ctx, userID, today)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if p != nil {
		return &TodayPlan{Plan: *p, Progress: plan.GetProgress(*p)}, nil
	}
	if !createIfMissing {
		return nil, errors.NewNotFoundError("day plan", today)
	}

	return s.createToday(ctx, userID, today)
}

func (s *planService) createToday(ctx context.Context, userID, today string) (*TodayPlan, error) {
	log := logger.FromContext(ctx)

	profile := s.profileOrDefault(ctx, userID)

	known, err := s.plans.KnownLemmas(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	recent, err := s.plans.RecentLemmas(ctx, userID, 25)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	generated, source := s.generateWords(ctx, words.GenerateInput{
		Count:      profile.DailyTarget,
		Level:      profile.Level,
		Focus:      profile.LearningFocus,
		KnownWords: known,
		AvoidWords: recent,
	})
	if len(generated) == 0 {
		return nil, errors.NewUpstreamError("word generation", nil)
	}

	now := time.Now().UTC()
	learningItems := make([]models.LearningItem, len(generated))
	for i, w := range generated {
		learningItems[i] = models.LearningItem{
			ID:                 uuid.NewString(),
			UserID:             userID,
			ItemType:           w.ItemType,
			Lemma:              w.Lemma,
			Meaning:            w.Meaning,
			PartOfSpeech:       w.PartOfSpeech,
			Example:            w.Example,
			ExampleTranslation: w.ExampleTranslation,
			Source:             source,
			IsActive:           true,
			CreatedAt:          now,
		}
	}
	if err := s.items.InsertBatch(ctx, learningItems); err != nil {
		return nil, errors.NewInternalError(err)
	}

	newPlan := models.DayPlan{
		ID:          uuid.NewString(),
		UserID:      userID,
		PlanDate:    today,
		DailyTarget: profile.DailyTarget,
		Status:      models.PlanOpen,
		CreatedAt:   now,
	}
	for i, li := range learningItems {
		newPlan.Items = append(newPlan.Items, models.PlanItem{
			ID:                 uuid.NewString(),
			PlanID:             newPlan.ID,
			UserID:             userID,
			LearningItemID:     li.ID,
			ItemType:           li.ItemType,
			Lemma:              li.Lemma,
			Meaning:            li.Meaning,
			PartOfSpeech:       li.PartOfSpeech,
			Example:            li.Example,
			ExampleTranslation: li.ExampleTranslation,
			RecallStatus:       models.RecallPending,
			SentenceStatus:     models.StepPending,
			SpeechStatus:       models.StepPending,
			OrderNum:           i + 1,
		})
	}

	err = s.plans.Insert(ctx, newPlan)
	if err == repository.ErrDuplicate {
		// A concurrent request created the plan first; serve that one.
		log.Debug("plan already created concurrently, refetching")
		existing, err := s.plans.GetByDate(ctx, userID, today)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		if existing == nil {
			return nil, errors.NewInternalError(repository.ErrDuplicate)
		}
		return &TodayPlan{Plan: *existing, Progress: plan.GetProgress(*existing)}, nil
	}
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	s.events.Record(models.ActivityEvent{
		ID:         uuid.NewString(),
		UserID:     userID,
		EventName:  models.EventTodayStarted,
		EntityType: "day_plan",
		EntityID:   newPlan.ID,
		Payload:    map[string]any{"plan_date": today, "word_source": source},
		OccurredAt: now,
	})

	log.Info("created day plan: id=%s date=%s words=%d source=%s", newPlan.ID, today, len(newPlan.Items), source)
	return &TodayPlan{Plan: newPlan, Progress: plan.GetProgress(newPlan), WordSource: source}, nil
}

// profileOrDefault lets the Today screen work before the profile was
// ever saved.
func (s *planService) profileOrDefault(ctx context.Context, userID string) models.UserProfile {
	log := logger.FromContext(ctx)

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		log.Warn("failed to load profile, using defaults: %v", err)
	}
	if profile == nil {
		return defaultProfile(userID)
	}
	return *profile
}

func (s *planService) generateWords(ctx context.Context, input words.GenerateInput) ([]words.GeneratedWord, string) {
	log := logger.FromContext(ctx)

	generated, err := s.supplier.GenerateWords(ctx, input)
	if err == nil {
		return generated, SourceAI
	}
	log.Warn("word generation failed, using fallback pool: %v", err)
	return words.PickFallback(input.Count, input.AvoidWords), SourceFallback
}

func (s *planService) PatchItem(ctx context.Context, userID, planID, itemID string, patch models.PlanItemPatch) (*TodayPlan, error) {
	log := logger.FromContext(ctx)
	log.Debug("patching plan item: plan_id=%s item_id=%s", planID, itemID)

	item, err := s.plans.GetItem(ctx, userID, planID, itemID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("plan item", itemID)
	}

	if patch.RecallStatus != nil {
		if !plan.CanTransitionRecall(item.RecallStatus, *patch.RecallStatus) {
			return nil, errors.NewValidationError("recall_status", "cannot change once set")
		}
		item.RecallStatus = *patch.RecallStatus
	}
	if patch.SentenceStatus != nil {
		if !plan.CanTransitionStep(item.SentenceStatus, *patch.SentenceStatus) {
			return nil, errors.NewValidationError("sentence_status", "cannot change once set")
		}
		item.SentenceStatus = *patch.SentenceStatus
	}
	if patch.SpeechStatus != nil {
		if !plan.CanTransitionStep(item.SpeechStatus, *patch.SpeechStatus) {
			return nil, errors.NewValidationError("speech_status", "cannot change once set")
		}
		item.SpeechStatus = *patch.SpeechStatus
	}

	updated := plan.SyncCompletion(*item)
	if err := s.plans.UpdateItem(ctx, updated); err != nil {
		return nil, errors.NewInternalError(err)
	}

	if patch.UserSentence != nil && *patch.UserSentence != "" {
		attempt := models.SentenceAttempt{
			ID:         uuid.NewString(),
			UserID:     userID,
			PlanItemID: itemID,
			Sentence:   *patch.UserSentence,
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.sentences.Insert(ctx, attempt); err != nil {
			log.Warn("failed to store sentence attempt: %v", err)
		}
	}

	s.events.Record(models.ActivityEvent{
		ID:         uuid.NewString(),
		UserID:     userID,
		EventName:  models.EventWordStepCompleted,
		EntityType: "plan_item",
		EntityID:   itemID,
		Payload: map[string]any{
			"recall_status":   updated.RecallStatus,
			"sentence_status": updated.SentenceStatus,
			"speech_status":   updated.SpeechStatus,
			"is_completed":    updated.IsCompleted,
		},
		OccurredAt: time.Now().UTC(),
	})

	p, err := s.plans.GetByID(ctx, userID, planID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("day plan", planID)
	}
	return &TodayPlan{Plan: *p, Progress: plan.GetProgress(*p)}, nil
}

func (s *planService) Complete(ctx context.Context, userID, planID, requestID string) (*CompletePlanResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("completing plan: plan_id=%s request_id=%s", planID, requestID)

	key := ""
	if requestID != "" {
		key = IdempotencyKey("POST", "/api/v1/day-plans/"+planID+"/complete", requestID)
		var cached CompletePlanResult
		if replayCached(ctx, s.idem, key, &cached) {
			return &cached, nil
		}
	}

	p, err := s.plans.GetByID(ctx, userID, planID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("day plan", planID)
	}

	if p.Status == models.PlanCompleted {
		state, err := s.streaks.Get(ctx, userID)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		result := &CompletePlanResult{Plan: *p, Streak: state, AlreadyCompleted: true}
		storeCached(ctx, s.idem, key, userID, result, s.idemTTL)
		return result, nil
	}

	if !plan.CanComplete(*p) {
		return nil, errors.NewValidationError("plan", "all items must be completed first")
	}

	now := time.Now().UTC()
	if err := s.plans.Complete(ctx, userID, planID, now); err != nil {
		if err == repository.ErrNoRowsUpdated {
			// A concurrent request completed the plan between our read
			// and the guarded update; its side effects already ran.
			log.Debug("plan %s completed concurrently, returning current state", planID)
			refreshed, err := s.plans.GetByID(ctx, userID, planID)
			if err != nil {
				return nil, errors.NewInternalError(err)
			}
			if refreshed == nil {
				return nil, errors.NewNotFoundError("day plan", planID)
			}
			state, err := s.streaks.Get(ctx, userID)
			if err != nil {
				return nil, errors.NewInternalError(err)
			}
			result := &CompletePlanResult{Plan: *refreshed, Streak: state, AlreadyCompleted: true}
			storeCached(ctx, s.idem, key, userID, result, s.idemTTL)
			return result, nil
		}
		return nil, errors.NewInternalError(err)
	}
	p.Status = models.PlanCompleted
	p.CompletedAt = &now

	state, err := s.streaks.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	state = streak.ApplyDayCompletion(state, p.PlanDate)
	if err := s.streaks.Upsert(ctx, state); err != nil {
		return nil, errors.NewInternalError(err)
	}

	reviewsCreated, err := s.queueFirstReviews(ctx, *p)
	if err != nil {
		return nil, err
	}

	s.events.Record(models.ActivityEvent{
		ID:         uuid.NewString(),
		UserID:     userID,
		EventName:  models.EventTodayCompleted,
		EntityType: "day_plan",
		EntityID:   planID,
		Payload:    map[string]any{"plan_date": p.PlanDate, "reviews_created": reviewsCreated},
		OccurredAt: now,
	})
	s.events.Record(models.ActivityEvent{
		ID:         uuid.NewString(),
		UserID:     userID,
		EventName:  models.EventStreakUpdated,
		EntityType: "streak",
		EntityID:   userID,
		Payload:    map[string]any{"current_streak": state.CurrentStreak, "longest_streak": state.LongestStreak},
		OccurredAt: now,
	})

	result := &CompletePlanResult{
		Plan:           *p,
		Streak:         state,
		ReviewsCreated: reviewsCreated,
	}
	storeCached(ctx, s.idem, key, userID, result, s.idemTTL)

	log.Info("plan completed: id=%s date=%s streak=%d reviews=%d", planID, p.PlanDate, state.CurrentStreak, reviewsCreated)
	return result, nil
}

// queueFirstReviews schedules the first spaced review of every plan
// item for the day after the plan date. A queued duplicate for the same
// item is left alone.
func (s *planService) queueFirstReviews(ctx context.Context, p models.DayPlan) (int, error) {
	log := logger.FromContext(ctx)

	dueDate := plan.FirstReviewDueDate(p.PlanDate)
	created := 0
	for _, item := range p.Items {
		if item.LearningItemID == "" {
			continue
		}
		task := models.ReviewTask{
			ID:             uuid.NewString(),
			UserID:         p.UserID,
			LearningItemID: item.LearningItemID,
			DueDate:        dueDate,
			Stage:          models.StageD1,
			Status:         models.ReviewQueued,
			CreatedAt:      time.Now().UTC(),
		}
		err := s.reviews.Insert(ctx, task)
		if err == repository.ErrDuplicate {
			log.Debug("review already queued for item %s, skipping", item.LearningItemID)
			continue
		}
		if err != nil {
			return created, errors.NewInternalError(err)
		}
		created++
	}
	return created, nil
}
