package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/repository"
)

type streakRepository struct {
	db *sql.DB
}

// NewStreakRepository creates a new StreakRepository implementation
func NewStreakRepository(db *sql.DB) repository.StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) Get(ctx context.Context, userID string) (models.StreakState, error) {
	log := logger.FromContext(ctx).WithPrefix("streak_repo")

	state := models.StreakState{UserID: userID}
	var lastCompleted sql.NullString
	err := r.db.QueryRowContext(ctx, `
SELECT current_streak, longest_streak, last_completed_date
FROM streak_states
WHERE user_id = ?
`, userID).Scan(&state.CurrentStreak, &state.LongestStreak, &lastCompleted)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no streak state yet: user_id=%s", userID)
		return state, nil
	}
	if err != nil {
		log.Error("failed to get streak state: %v", err)
		return state, err
	}
	if lastCompleted.Valid {
		s := lastCompleted.String
		state.LastCompletedDate = &s
	}
	return state, nil
}

func (r *streakRepository) Upsert(ctx context.Context, state models.StreakState) error {
	log := logger.FromContext(ctx).WithPrefix("streak_repo")
	log.Debug("upserting streak: user_id=%s current=%d longest=%d", state.UserID, state.CurrentStreak, state.LongestStreak)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO streak_states (user_id, current_streak, longest_streak, last_completed_date, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
    current_streak = excluded.current_streak,
    longest_streak = excluded.longest_streak,
    last_completed_date = excluded.last_completed_date,
    updated_at = excluded.updated_at
`, state.UserID, state.CurrentStreak, state.LongestStreak, state.LastCompletedDate, time.Now().UTC())
	if err != nil {
		log.Error("failed to upsert streak state: %v", err)
	}
	return err
}
