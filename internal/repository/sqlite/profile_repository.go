package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")

	var p models.UserProfile
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, daily_target, level, learning_focus, timezone, reminder_enabled, speech_required, updated_at
FROM profiles
WHERE user_id = ?
`, userID).Scan(&p.UserID, &p.DailyTarget, &p.Level, &p.LearningFocus, &p.Timezone, &p.ReminderEnabled, &p.SpeechRequired, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: user_id=%s", userID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, p models.UserProfile) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("upserting profile: user_id=%s, daily_target=%d", p.UserID, p.DailyTarget)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO profiles (user_id, daily_target, level, learning_focus, timezone, reminder_enabled, speech_required, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
    daily_target = excluded.daily_target,
    level = excluded.level,
    learning_focus = excluded.learning_focus,
    timezone = excluded.timezone,
    reminder_enabled = excluded.reminder_enabled,
    speech_required = excluded.speech_required,
    updated_at = excluded.updated_at
`, p.UserID, p.DailyTarget, p.Level, p.LearningFocus, p.Timezone, p.ReminderEnabled, p.SpeechRequired, p.UpdatedAt)
	if err != nil {
		log.Error("failed to upsert profile: %v", err)
	}
	return err
}

func (r *profileRepository) ResetUserData(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Info("resetting user data: user_id=%s", userID)

	return tx(ctx, r.db, func(t *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM plan_items WHERE user_id = ?`,
			`DELETE FROM day_plans WHERE user_id = ?`,
			`DELETE FROM review_tasks WHERE user_id = ?`,
			`DELETE FROM learning_items WHERE user_id = ?`,
			`DELETE FROM streak_states WHERE user_id = ?`,
			`DELETE FROM speech_attempts WHERE user_id = ?`,
			`DELETE FROM sentence_attempts WHERE user_id = ?`,
			`DELETE FROM activity_events WHERE user_id = ?`,
			`DELETE FROM idempotency_keys WHERE user_id = ?`,
		} {
			if _, err := t.ExecContext(ctx, stmt, userID); err != nil {
				return err
			}
		}
		return nil
	})
}
