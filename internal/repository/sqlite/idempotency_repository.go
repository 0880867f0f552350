package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/repository"
)

type idempotencyRepository struct {
	db *sql.DB
}

// NewIdempotencyRepository creates a new IdempotencyRepository implementation
func NewIdempotencyRepository(db *sql.DB) repository.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("idempotency_repo")

	var response string
	var expiresAt time.Time
	err := r.db.QueryRowContext(ctx, `
SELECT response, expires_at FROM idempotency_keys WHERE key = ?
`, key).Scan(&response, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		log.Error("failed to get idempotency key: %v", err)
		return nil, false, err
	}
	if !expiresAt.After(time.Now().UTC()) {
		log.Debug("idempotency key expired: %s", key)
		return nil, false, nil
	}
	log.Debug("idempotency hit: %s", key)
	return []byte(response), true, nil
}

func (r *idempotencyRepository) Put(ctx context.Context, key, userID string, response []byte, ttl time.Duration) error {
	log := logger.FromContext(ctx).WithPrefix("idempotency_repo")

	_, err := r.db.ExecContext(ctx, `
INSERT OR REPLACE INTO idempotency_keys (key, user_id, response, expires_at)
VALUES (?, ?, ?, ?)
`, key, userID, string(response), time.Now().UTC().Add(ttl))
	if err != nil {
		log.Error("failed to store idempotency key: %v", err)
	}
	return err
}

func (r *idempotencyRepository) PurgeExpired(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("idempotency_repo")

	res, err := r.db.ExecContext(ctx, `
DELETE FROM idempotency_keys WHERE expires_at <= ?
`, time.Now().UTC())
	if err != nil {
		log.Error("failed to purge idempotency keys: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Debug("purged %d expired idempotency keys", n)
	}
	return n, nil
}
