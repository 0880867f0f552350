package services

import "github.com/hyerin/tinywords/internal/models"

// EventRecorder accepts activity events for asynchronous persistence.
// Recording must never block or fail request handling.
type EventRecorder interface {
	Record(event models.ActivityEvent)
}
