package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository implementation
func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Insert(ctx context.Context, event models.ActivityEvent) error {
	log := logger.FromContext(ctx).WithPrefix("event_repo")

	payload := "{}"
	if event.Payload != nil {
		b, err := json.Marshal(event.Payload)
		if err != nil {
			log.Error("failed to marshal event payload: %v", err)
			return err
		}
		payload = string(b)
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO activity_events (id, user_id, event_name, entity_type, entity_id, payload, occurred_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, event.ID, event.UserID, event.EventName, event.EntityType, event.EntityID, payload, event.OccurredAt)
	if err != nil {
		log.Error("failed to insert activity event: %v", err)
	}
	return err
}
