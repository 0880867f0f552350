package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/repository"
)

type sentenceRepository struct {
	db *sql.DB
}

// NewSentenceRepository creates a new SentenceRepository implementation
func NewSentenceRepository(db *sql.DB) repository.SentenceRepository {
	return &sentenceRepository{db: db}
}

func (r *sentenceRepository) Insert(ctx context.Context, a models.SentenceAttempt) error {
	log := logger.FromContext(ctx).WithPrefix("sentence_repo")
	log.Debug("inserting sentence attempt: plan_item_id=%s", a.PlanItemID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO sentence_attempts (id, user_id, plan_item_id, sentence, created_at)
VALUES (?, ?, ?, ?, ?)
`, a.ID, a.UserID, a.PlanItemID, a.Sentence, a.CreatedAt)
	if err != nil {
		log.Error("failed to insert sentence attempt: %v", err)
	}
	return err
}

func (r *sentenceRepository) LatestByPlanItems(ctx context.Context, userID string, planItemIDs []string) (map[string]string, error) {
	log := logger.FromContext(ctx).WithPrefix("sentence_repo")

	if len(planItemIDs) == 0 {
		return map[string]string{}, nil
	}

	query, args, err := squirrel.
		Select("plan_item_id", "sentence").
		From("sentence_attempts").
		Where(squirrel.Eq{"user_id": userID, "plan_item_id": planItemIDs}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query sentence attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	latest := make(map[string]string)
	for rows.Next() {
		var planItemID, sentence string
		if err := rows.Scan(&planItemID, &sentence); err != nil {
			log.Error("failed to scan sentence attempt row: %v", err)
			return nil, err
		}
		if _, ok := latest[planItemID]; !ok {
			latest[planItemID] = sentence
		}
	}
	return latest, rows.Err()
}
