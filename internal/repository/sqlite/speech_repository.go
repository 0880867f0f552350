package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/repository"
)

type speechRepository struct {
	db *sql.DB
}

// NewSpeechRepository creates a new SpeechRepository implementation
func NewSpeechRepository(db *sql.DB) repository.SpeechRepository {
	return &speechRepository{db: db}
}

const speechColumns = `id, user_id, plan_item_id, audio_uri, duration_ms, pronunciation_score, scoring_version, created_at`

func scanSpeechAttempt(scanner interface{ Scan(...any) error }) (models.SpeechAttempt, error) {
	var a models.SpeechAttempt
	var score sql.NullInt64
	err := scanner.Scan(&a.ID, &a.UserID, &a.PlanItemID, &a.AudioURI, &a.DurationMs, &score, &a.ScoringVersion, &a.CreatedAt)
	if score.Valid {
		s := int(score.Int64)
		a.PronunciationScore = &s
	}
	return a, err
}

func (r *speechRepository) Insert(ctx context.Context, a models.SpeechAttempt) error {
	log := logger.FromContext(ctx).WithPrefix("speech_repo")
	log.Debug("inserting speech attempt: plan_item_id=%s duration_ms=%d", a.PlanItemID, a.DurationMs)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO speech_attempts (`+speechColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, a.ID, a.UserID, a.PlanItemID, a.AudioURI, a.DurationMs, a.PronunciationScore, a.ScoringVersion, a.CreatedAt)
	if err != nil {
		log.Error("failed to insert speech attempt: %v", err)
	}
	return err
}

func (r *speechRepository) Get(ctx context.Context, userID, speechID string) (*models.SpeechAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("speech_repo")

	a, err := scanSpeechAttempt(r.db.QueryRowContext(ctx, `
SELECT `+speechColumns+` FROM speech_attempts WHERE id = ? AND user_id = ?
`, speechID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get speech attempt: %v", err)
		return nil, err
	}
	return &a, nil
}

func (r *speechRepository) UpdateScore(ctx context.Context, userID, speechID string, score int, scoringVersion string) error {
	log := logger.FromContext(ctx).WithPrefix("speech_repo")
	log.Debug("updating speech score: id=%s score=%d", speechID, score)

	_, err := r.db.ExecContext(ctx, `
UPDATE speech_attempts
SET pronunciation_score = ?, scoring_version = ?
WHERE id = ? AND user_id = ?
`, score, scoringVersion, speechID, userID)
	if err != nil {
		log.Error("failed to update speech score: %v", err)
	}
	return err
}

func (r *speechRepository) LatestByPlanItems(ctx context.Context, userID string, planItemIDs []string) (map[string]models.SpeechAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("speech_repo")

	if len(planItemIDs) == 0 {
		return map[string]models.SpeechAttempt{}, nil
	}

	query, args, err := squirrel.
		Select("id", "user_id", "plan_item_id", "audio_uri", "duration_ms", "pronunciation_score", "scoring_version", "created_at").
		From("speech_attempts").
		Where(squirrel.Eq{"user_id": userID, "plan_item_id": planItemIDs}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query speech attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	latest := make(map[string]models.SpeechAttempt)
	for rows.Next() {
		a, err := scanSpeechAttempt(rows)
		if err != nil {
			log.Error("failed to scan speech attempt row: %v", err)
			return nil, err
		}
		if _, ok := latest[a.PlanItemID]; !ok {
			latest[a.PlanItemID] = a
		}
	}
	return latest, rows.Err()
}
