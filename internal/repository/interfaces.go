package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hyerin/tinywords/internal/models"
)

// ErrDuplicate is returned by inserts that hit a uniqueness constraint
// (one plan per user+date, one queued review per user+item+stage).
// Callers resolve it by re-fetching or discarding, never by erroring out.
var ErrDuplicate = errors.New("duplicate row")

// ErrNoRowsUpdated is returned by guarded updates whose WHERE clause
// matched nothing, typically because a concurrent writer got there
// first.
var ErrNoRowsUpdated = errors.New("no rows updated")

// ProfileRepository handles user profile access
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Upsert(ctx context.Context, profile models.UserProfile) error
	// ResetUserData wipes the user's learning state (plans, reviews,
	// streaks, attempts, events) but keeps the profile row.
	ResetUserData(ctx context.Context, userID string) error
}

// LearningItemRepository handles learning item access
type LearningItemRepository interface {
	InsertBatch(ctx context.Context, items []models.LearningItem) error
	ListByIDs(ctx context.Context, userID string, ids []string) ([]models.LearningItem, error)
}

// PlanRepository handles day plan and plan item access
type PlanRepository interface {
	// GetByDate returns the plan with its items for one calendar date,
	// or nil when the user has no plan that day.
	GetByDate(ctx context.Context, userID, planDate string) (*models.DayPlan, error)
	GetByID(ctx context.Context, userID, planID string) (*models.DayPlan, error)
	// Insert stores the plan and its items atomically. Returns
	// ErrDuplicate when a plan already exists for (user, plan date).
	Insert(ctx context.Context, p models.DayPlan) error
	GetItem(ctx context.Context, userID, planID, planItemID string) (*models.PlanItem, error)
	UpdateItem(ctx context.Context, item models.PlanItem) error
	// Complete marks an open plan completed. Returns ErrNoRowsUpdated
	// when the plan is not open (or not the user's).
	Complete(ctx context.Context, userID, planID string, completedAt time.Time) error
	ListCompleted(ctx context.Context, userID string, limit int) ([]models.DayPlan, error)
	// KnownLemmas returns lemmas the user has successfully recalled.
	KnownLemmas(ctx context.Context, userID string) ([]string, error)
	// RecentLemmas returns the most recently planned lemmas, newest first.
	RecentLemmas(ctx context.Context, userID string, limit int) ([]string, error)
}

// ReviewRepository handles review task access
type ReviewRepository interface {
	Get(ctx context.Context, userID, reviewID string) (*models.ReviewTask, error)
	ListQueued(ctx context.Context, userID string) ([]models.ReviewTask, error)
	// Insert returns ErrDuplicate when a queued task already exists for
	// the same (user, item, stage).
	Insert(ctx context.Context, task models.ReviewTask) error
	Update(ctx context.Context, task models.ReviewTask) error
	ExistsQueued(ctx context.Context, userID, learningItemID string, stage models.ReviewStage) (bool, error)
	CountDoneOn(ctx context.Context, userID, completedDate string) (int, error)
	CountQueuedDueBy(ctx context.Context, userID, date string) (int, error)
}

// StreakRepository handles streak state access
type StreakRepository interface {
	// Get returns the zero state when the user has no streak row yet.
	Get(ctx context.Context, userID string) (models.StreakState, error)
	Upsert(ctx context.Context, state models.StreakState) error
}

// SpeechRepository handles speech attempt access
type SpeechRepository interface {
	Insert(ctx context.Context, attempt models.SpeechAttempt) error
	Get(ctx context.Context, userID, speechID string) (*models.SpeechAttempt, error)
	UpdateScore(ctx context.Context, userID, speechID string, score int, scoringVersion string) error
	// LatestByPlanItems returns the newest attempt per plan item.
	LatestByPlanItems(ctx context.Context, userID string, planItemIDs []string) (map[string]models.SpeechAttempt, error)
}

// SentenceRepository handles sentence attempt access
type SentenceRepository interface {
	Insert(ctx context.Context, attempt models.SentenceAttempt) error
	// LatestByPlanItems returns the newest sentence per plan item.
	LatestByPlanItems(ctx context.Context, userID string, planItemIDs []string) (map[string]string, error)
}

// EventRepository handles activity event access
type EventRepository interface {
	Insert(ctx context.Context, event models.ActivityEvent) error
}

// IdempotencyRepository caches responses of side-effecting requests
type IdempotencyRepository interface {
	// Get returns the cached response for key, or ok=false when absent
	// or expired.
	Get(ctx context.Context, key string) (response []byte, ok bool, err error)
	Put(ctx context.Context, key, userID string, response []byte, ttl time.Duration) error
	PurgeExpired(ctx context.Context) (int64, error)
}
