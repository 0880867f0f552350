package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/repository"
)

type planRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository implementation
func NewPlanRepository(db *sql.DB) repository.PlanRepository {
	return &planRepository{db: db}
}

const planColumns = `id, user_id, plan_date, daily_target, status, completed_at, created_at`
const planItemColumns = `id, plan_id, user_id, learning_item_id, item_type, lemma, meaning, part_of_speech, example, example_translation, recall_status, sentence_status, speech_status, is_completed, order_num`

func scanPlan(row *sql.Row) (*models.DayPlan, error) {
	var p models.DayPlan
	var completedAt sql.NullTime
	err := row.Scan(&p.ID, &p.UserID, &p.PlanDate, &p.DailyTarget, &p.Status, &completedAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		p.CompletedAt = &t
	}
	return &p, nil
}

func scanPlanItem(rows *sql.Rows) (models.PlanItem, error) {
	var item models.PlanItem
	err := rows.Scan(&item.ID, &item.PlanID, &item.UserID, &item.LearningItemID,
		&item.ItemType, &item.Lemma, &item.Meaning, &item.PartOfSpeech,
		&item.Example, &item.ExampleTranslation,
		&item.RecallStatus, &item.SentenceStatus, &item.SpeechStatus,
		&item.IsCompleted, &item.OrderNum)
	return item, err
}

func (r *planRepository) itemsForPlan(ctx context.Context, planID string) ([]models.PlanItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+planItemColumns+`
FROM plan_items
WHERE plan_id = ?
ORDER BY order_num
`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.PlanItem
	for rows.Next() {
		item, err := scanPlanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *planRepository) GetByDate(ctx context.Context, userID, planDate string) (*models.DayPlan, error) {
	log := logger.FromContext(ctx).WithPrefix("plan_repo")

	p, err := scanPlan(r.db.QueryRowContext(ctx, `
SELECT `+planColumns+` FROM day_plans WHERE user_id = ? AND plan_date = ?
`, userID, planDate))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no plan for user_id=%s date=%s", userID, planDate)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get plan by date: %v", err)
		return nil, err
	}

	p.Items, err = r.itemsForPlan(ctx, p.ID)
	if err != nil {
		log.Error("failed to load plan items: %v", err)
		return nil, err
	}
	return p, nil
}

func (r *planRepository) GetByID(ctx context.Context, userID, planID string) (*models.DayPlan, error) {
	log := logger.FromContext(ctx).WithPrefix("plan_repo")

	p, err := scanPlan(r.db.QueryRowContext(ctx, `
SELECT `+planColumns+` FROM day_plans WHERE id = ? AND user_id = ?
`, planID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get plan: %v", err)
		return nil, err
	}

	p.Items, err = r.itemsForPlan(ctx, p.ID)
	if err != nil {
		log.Error("failed to load plan items: %v", err)
		return nil, err
	}
	return p, nil
}

func (r *planRepository) Insert(ctx context.Context, p models.DayPlan) error {
	log := logger.FromContext(ctx).WithPrefix("plan_repo")
	log.Debug("inserting plan: user_id=%s date=%s items=%d", p.UserID, p.PlanDate, len(p.Items))

	err := tx(ctx, r.db, func(t *sql.Tx) error {
		_, err := t.ExecContext(ctx, `
INSERT INTO day_plans (id, user_id, plan_date, daily_target, status, completed_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, p.ID, p.UserID, p.PlanDate, p.DailyTarget, p.Status, p.CompletedAt, p.CreatedAt)
		if err != nil {
			return err
		}

		for _, item := range p.Items {
			if _, err := t.ExecContext(ctx, `
INSERT INTO plan_items (`+planItemColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, item.ID, p.ID, item.UserID, item.LearningItemID, item.ItemType, item.Lemma,
				item.Meaning, item.PartOfSpeech, item.Example, item.ExampleTranslation,
				item.RecallStatus, item.SentenceStatus, item.SpeechStatus,
				item.IsCompleted, item.OrderNum); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("plan already exists for user_id=%s date=%s", p.UserID, p.PlanDate)
			return repository.ErrDuplicate
		}
		log.Error("failed to insert plan: %v", err)
		return err
	}
	log.Debug("plan inserted: id=%s", p.ID)
	return nil
}

func (r *planRepository) GetItem(ctx context.Context, userID, planID, planItemID string) (*models.PlanItem, error) {
	log := logger.FromContext(ctx).WithPrefix("plan_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT `+planItemColumns+`
FROM plan_items
WHERE id = ? AND plan_id = ? AND user_id = ?
`, planItemID, planID, userID)
	if err != nil {
		log.Error("failed to query plan item: %v", err)
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	item, err := scanPlanItem(rows)
	if err != nil {
		log.Error("failed to scan plan item: %v", err)
		return nil, err
	}
	return &item, nil
}

func (r *planRepository) UpdateItem(ctx context.Context, item models.PlanItem) error {
	log := logger.FromContext(ctx).WithPrefix("plan_repo")
	log.Debug("updating plan item: id=%s recall=%s sentence=%s speech=%s completed=%v",
		item.ID, item.RecallStatus, item.SentenceStatus, item.SpeechStatus, item.IsCompleted)

	_, err := r.db.ExecContext(ctx, `
UPDATE plan_items
SET recall_status = ?, sentence_status = ?, speech_status = ?, is_completed = ?
WHERE id = ?
`, item.RecallStatus, item.SentenceStatus, item.SpeechStatus, item.IsCompleted, item.ID)
	if err != nil {
		log.Error("failed to update plan item: %v", err)
	}
	return err
}

func (r *planRepository) Complete(ctx context.Context, userID, planID string, completedAt time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("plan_repo")
	log.Debug("completing plan: id=%s", planID)

	res, err := r.db.ExecContext(ctx, `
UPDATE day_plans
SET status = 'completed', completed_at = ?
WHERE id = ? AND user_id = ? AND status = 'open'
`, completedAt, planID, userID)
	if err != nil {
		log.Error("failed to complete plan: %v", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Debug("plan %s not open, nothing to complete", planID)
		return repository.ErrNoRowsUpdated
	}
	return nil
}

func (r *planRepository) ListCompleted(ctx context.Context, userID string, limit int) ([]models.DayPlan, error) {
	log := logger.FromContext(ctx).WithPrefix("plan_repo")

	if limit <= 0 {
		limit = 30
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT `+planColumns+` FROM day_plans
WHERE user_id = ? AND status = 'completed'
ORDER BY plan_date DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		log.Error("failed to query completed plans: %v", err)
		return nil, err
	}
	defer rows.Close()

	var plans []models.DayPlan
	for rows.Next() {
		var p models.DayPlan
		var completedAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.UserID, &p.PlanDate, &p.DailyTarget, &p.Status, &completedAt, &p.CreatedAt); err != nil {
			log.Error("failed to scan plan row: %v", err)
			return nil, err
		}
		if completedAt.Valid {
			t := completedAt.Time
			p.CompletedAt = &t
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range plans {
		items, err := r.itemsForPlan(ctx, plans[i].ID)
		if err != nil {
			return nil, err
		}
		plans[i].Items = items
	}
	return plans, nil
}

func (r *planRepository) KnownLemmas(ctx context.Context, userID string) ([]string, error) {
	return r.lemmas(ctx, `
SELECT DISTINCT lemma FROM plan_items
WHERE user_id = ? AND recall_status = 'success'
ORDER BY lemma
`, userID)
}

func (r *planRepository) RecentLemmas(ctx context.Context, userID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 25
	}
	return r.lemmas(ctx, `
SELECT lemma FROM plan_items pi
JOIN day_plans dp ON dp.id = pi.plan_id
WHERE pi.user_id = ?
ORDER BY dp.plan_date DESC, pi.order_num
LIMIT ?
`, userID, limit)
}

func (r *planRepository) lemmas(ctx context.Context, query string, args ...any) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("plan_repo")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query lemmas: %v", err)
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var lemmas []string
	for rows.Next() {
		var lemma string
		if err := rows.Scan(&lemma); err != nil {
			return nil, err
		}
		if !seen[lemma] {
			seen[lemma] = true
			lemmas = append(lemmas, lemma)
		}
	}
	return lemmas, rows.Err()
}
