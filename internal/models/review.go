package models

import "time"

// ReviewStage is the spaced-repetition interval tier.
type ReviewStage string

const (
	StageD1     ReviewStage = "d1"
	StageD3     ReviewStage = "d3"
	StageD7     ReviewStage = "d7"
	StageCustom ReviewStage = "custom"
)

// ReviewStatus is the lifecycle state of a review task.
type ReviewStatus string

const (
	ReviewQueued ReviewStatus = "queued"
	ReviewDone   ReviewStatus = "done"
	ReviewMissed ReviewStatus = "missed"
)

// ReviewResult is the outcome the user reports for a review.
type ReviewResult string

const (
	ResultSuccess ReviewResult = "success"
	ResultHard    ReviewResult = "hard"
	ResultFail    ReviewResult = "fail"
)

// ReviewTask is one scheduled future recall of a learning item.
// At most one queued task exists per (user, item, stage).
type ReviewTask struct {
	ID             string       `json:"review_id"`
	UserID         string       `json:"-"`
	LearningItemID string       `json:"item_id"`
	DueDate        string       `json:"due_date"` // YYYY-MM-DD
	Stage          ReviewStage  `json:"stage"`
	Status         ReviewStatus `json:"status"`
	CompletedAt    *time.Time   `json:"completed_at"`
	CreatedAt      time.Time    `json:"created_at"`
}

// QueuedReviewTask is a review task enriched with its learning item,
// as served by the inbox.
type QueuedReviewTask struct {
	ReviewTask
	Lemma    string   `json:"lemma"`
	Meaning  string   `json:"meaning"`
	ItemType ItemType `json:"item_type"`
	Example  string   `json:"example"`
}

// ReviewQueueSummary is the header of the review inbox.
type ReviewQueueSummary struct {
	QueuedTotal   int `json:"queued_total"`
	OverdueCount  int `json:"overdue_count"`
	DueTodayCount int `json:"due_today_count"`
}
