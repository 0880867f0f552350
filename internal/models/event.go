package models

import "time"

// ActivityEvent is an append-only record of a user action, kept for
// observability and history views.
type ActivityEvent struct {
	ID         string         `json:"event_id"`
	UserID     string         `json:"user_id"`
	EventName  string         `json:"event_name"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Payload    map[string]any `json:"payload"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Event names recorded by the services.
const (
	EventTodayStarted      = "today_started"
	EventWordStepCompleted = "word_step_completed"
	EventTodayCompleted    = "today_completed"
	EventStreakUpdated     = "streak_updated"
	EventReviewCompleted   = "review_completed"
	EventSettingsUpdated   = "settings_updated"
	EventHistoryOpened     = "history_opened"
)
