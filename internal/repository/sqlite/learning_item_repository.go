package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/repository"
)

type learningItemRepository struct {
	db *sql.DB
}

// NewLearningItemRepository creates a new LearningItemRepository implementation
func NewLearningItemRepository(db *sql.DB) repository.LearningItemRepository {
	return &learningItemRepository{db: db}
}

func (r *learningItemRepository) InsertBatch(ctx context.Context, items []models.LearningItem) error {
	log := logger.FromContext(ctx).WithPrefix("learning_item_repo")
	log.Debug("inserting %d learning items", len(items))

	if len(items) == 0 {
		return nil
	}

	return tx(ctx, r.db, func(t *sql.Tx) error {
		stmt, err := t.PrepareContext(ctx, `
INSERT INTO learning_items (id, user_id, item_type, lemma, meaning, part_of_speech, example, example_translation, source, is_active, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, item := range items {
			if _, err := stmt.ExecContext(ctx,
				item.ID, item.UserID, item.ItemType, item.Lemma, item.Meaning,
				item.PartOfSpeech, item.Example, item.ExampleTranslation,
				item.Source, item.IsActive, item.CreatedAt,
			); err != nil {
				log.Error("failed to insert learning item %s: %v", item.Lemma, err)
				return err
			}
		}
		return nil
	})
}

func (r *learningItemRepository) ListByIDs(ctx context.Context, userID string, ids []string) ([]models.LearningItem, error) {
	log := logger.FromContext(ctx).WithPrefix("learning_item_repo")

	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := squirrel.
		Select("id", "user_id", "item_type", "lemma", "meaning", "part_of_speech", "example", "example_translation", "source", "is_active", "created_at").
		From("learning_items").
		Where(squirrel.Eq{"user_id": userID, "id": ids}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query learning items: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []models.LearningItem
	for rows.Next() {
		var item models.LearningItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ItemType, &item.Lemma, &item.Meaning,
			&item.PartOfSpeech, &item.Example, &item.ExampleTranslation,
			&item.Source, &item.IsActive, &item.CreatedAt); err != nil {
			log.Error("failed to scan learning item row: %v", err)
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
