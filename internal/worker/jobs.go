package worker

import (
	"context"
	"time"

	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/repository"
)

// RecordEventJob persists one activity event.
type RecordEventJob struct {
	Events repository.EventRepository
	Event  models.ActivityEvent
}

func (j *RecordEventJob) Name() string { return "record_event:" + j.Event.EventName }

func (j *RecordEventJob) Run(ctx context.Context) error {
	return j.Events.Insert(ctx, j.Event)
}

// PurgeIdempotencyJob removes expired idempotency keys.
type PurgeIdempotencyJob struct {
	Keys repository.IdempotencyRepository
}

func (j *PurgeIdempotencyJob) Name() string { return "purge_idempotency" }

func (j *PurgeIdempotencyJob) Run(ctx context.Context) error {
	_, err := j.Keys.PurgeExpired(ctx)
	return err
}

// EventRecorder feeds activity events through the pool so request
// handling never waits on event persistence. A full queue drops the
// event with a warning.
type EventRecorder struct {
	pool   *Pool
	events repository.EventRepository
	log    *logger.Logger
}

// NewEventRecorder creates a recorder backed by the given pool.
func NewEventRecorder(pool *Pool, events repository.EventRepository) *EventRecorder {
	return &EventRecorder{
		pool:   pool,
		events: events,
		log:    logger.Default().WithPrefix("events"),
	}
}

func (r *EventRecorder) Record(event models.ActivityEvent) {
	if !r.pool.TrySubmit(&RecordEventJob{Events: r.events, Event: event}) {
		r.log.Warn("event queue full, dropping event %s", event.EventName)
	}
}

// StartPurger periodically enqueues idempotency-key purges until ctx is
// cancelled.
func StartPurger(ctx context.Context, pool *Pool, keys repository.IdempotencyRepository, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pool.TrySubmit(&PurgeIdempotencyJob{Keys: keys})
			}
		}
	}()
}
