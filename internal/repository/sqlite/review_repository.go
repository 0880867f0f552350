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

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, user_id, learning_item_id, due_date, stage, status, completed_at, created_at`

func scanReviewTask(scanner interface{ Scan(...any) error }) (models.ReviewTask, error) {
	var t models.ReviewTask
	var completedAt sql.NullTime
	err := scanner.Scan(&t.ID, &t.UserID, &t.LearningItemID, &t.DueDate, &t.Stage, &t.Status, &completedAt, &t.CreatedAt)
	if completedAt.Valid {
		ts := completedAt.Time
		t.CompletedAt = &ts
	}
	return t, err
}

func (r *reviewRepository) Get(ctx context.Context, userID, reviewID string) (*models.ReviewTask, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	task, err := scanReviewTask(r.db.QueryRowContext(ctx, `
SELECT `+reviewColumns+` FROM review_tasks WHERE id = ? AND user_id = ?
`, reviewID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("review task not found: id=%s", reviewID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get review task: %v", err)
		return nil, err
	}
	return &task, nil
}

func (r *reviewRepository) ListQueued(ctx context.Context, userID string) ([]models.ReviewTask, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	query, args, err := squirrel.
		Select("id", "user_id", "learning_item_id", "due_date", "stage", "status", "completed_at", "created_at").
		From("review_tasks").
		Where(squirrel.Eq{"user_id": userID, "status": models.ReviewQueued}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query queued review tasks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var tasks []models.ReviewTask
	for rows.Next() {
		task, err := scanReviewTask(rows)
		if err != nil {
			log.Error("failed to scan review task row: %v", err)
			return nil, err
		}
		tasks = append(tasks, task)
	}
	log.Debug("found %d queued review tasks", len(tasks))
	return tasks, rows.Err()
}

func (r *reviewRepository) Insert(ctx context.Context, task models.ReviewTask) error {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("inserting review task: item=%s stage=%s due=%s", task.LearningItemID, task.Stage, task.DueDate)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_tasks (`+reviewColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, task.ID, task.UserID, task.LearningItemID, task.DueDate, task.Stage, task.Status, task.CompletedAt, task.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("queued task already exists: item=%s stage=%s", task.LearningItemID, task.Stage)
			return repository.ErrDuplicate
		}
		log.Error("failed to insert review task: %v", err)
		return err
	}
	return nil
}

func (r *reviewRepository) Update(ctx context.Context, task models.ReviewTask) error {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("updating review task: id=%s status=%s due=%s", task.ID, task.Status, task.DueDate)

	_, err := r.db.ExecContext(ctx, `
UPDATE review_tasks
SET due_date = ?, status = ?, completed_at = ?
WHERE id = ? AND user_id = ?
`, task.DueDate, task.Status, task.CompletedAt, task.ID, task.UserID)
	if err != nil {
		log.Error("failed to update review task: %v", err)
	}
	return err
}

func (r *reviewRepository) ExistsQueued(ctx context.Context, userID, learningItemID string, stage models.ReviewStage) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
SELECT 1 FROM review_tasks
WHERE user_id = ? AND learning_item_id = ? AND stage = ? AND status = 'queued'
LIMIT 1
`, userID, learningItemID, stage).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *reviewRepository) CountDoneOn(ctx context.Context, userID, completedDate string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM review_tasks
WHERE user_id = ? AND status = 'done' AND date(completed_at) = ?
`, userID, completedDate).Scan(&count)
	return count, err
}

func (r *reviewRepository) CountQueuedDueBy(ctx context.Context, userID, date string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM review_tasks
WHERE user_id = ? AND status = 'queued' AND due_date <= ?
`, userID, date).Scan(&count)
	return count, err
}
