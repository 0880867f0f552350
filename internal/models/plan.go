package models

import "time"

// ItemType classifies a learning item.
type ItemType string

const (
	ItemTypeVocab       ItemType = "vocab"
	ItemTypePreposition ItemType = "preposition"
	ItemTypeIdiom       ItemType = "idiom"
	ItemTypePhrasalVerb ItemType = "phrasal_verb"
	ItemTypeCollocation ItemType = "collocation"
)

// RecallStatus is the state of the recall step of a plan item.
type RecallStatus string

const (
	RecallPending RecallStatus = "pending"
	RecallSuccess RecallStatus = "success"
	RecallFail    RecallStatus = "fail"
)

// StepStatus is the state of the sentence and speech steps.
type StepStatus string

const (
	StepPending StepStatus = "pending"
	StepDone    StepStatus = "done"
	StepSkipped StepStatus = "skipped"
)

// PlanStatus is the lifecycle state of a day plan.
type PlanStatus string

const (
	PlanOpen      PlanStatus = "open"
	PlanCompleted PlanStatus = "completed"
)

// LearningItem is a word or phrase a user is learning. Plan items and
// review tasks reference it by ID; it outlives any single plan.
type LearningItem struct {
	ID                 string    `json:"item_id"`
	UserID             string    `json:"-"`
	ItemType           ItemType  `json:"item_type"`
	Lemma              string    `json:"lemma"`
	Meaning            string    `json:"meaning"`
	PartOfSpeech       string    `json:"part_of_speech"`
	Example            string    `json:"example"`
	ExampleTranslation string    `json:"example_translation"`
	Source             string    `json:"source"` // ai_generated, user_added, edited
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
}

// PlanItem is one learning unit inside a day plan, with three
// independent completion steps.
type PlanItem struct {
	ID                 string       `json:"plan_item_id"`
	PlanID             string       `json:"-"`
	UserID             string       `json:"-"`
	LearningItemID     string       `json:"item_id"`
	ItemType           ItemType     `json:"item_type"`
	Lemma              string       `json:"lemma"`
	Meaning            string       `json:"meaning"`
	PartOfSpeech       string       `json:"part_of_speech"`
	Example            string       `json:"example"`
	ExampleTranslation string       `json:"example_translation"`
	RecallStatus       RecallStatus `json:"recall_status"`
	SentenceStatus     StepStatus   `json:"sentence_status"`
	SpeechStatus       StepStatus   `json:"speech_status"`
	// IsCompleted is derived from the three step statuses and must only
	// be written via plan.SyncCompletion.
	IsCompleted bool `json:"is_completed"`
	OrderNum    int  `json:"order_num"`
}

// DayPlan is one calendar day's set of plan items for one user.
// At most one plan exists per (user, plan date).
type DayPlan struct {
	ID          string     `json:"plan_id"`
	UserID      string     `json:"-"`
	PlanDate    string     `json:"plan_date"` // YYYY-MM-DD, user-local
	DailyTarget int        `json:"daily_target"`
	Status      PlanStatus `json:"status"`
	CompletedAt *time.Time `json:"completed_at"`
	Items       []PlanItem `json:"items"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PlanItemPatch is a partial update to a plan item's step statuses.
// Nil fields keep the current value.
type PlanItemPatch struct {
	RecallStatus   *RecallStatus `json:"recall_status"`
	SentenceStatus *StepStatus   `json:"sentence_status"`
	SpeechStatus   *StepStatus   `json:"speech_status"`
	UserSentence   *string       `json:"user_sentence"`
}

// SentenceAttempt is a sentence the user composed for a plan item.
type SentenceAttempt struct {
	ID         string    `json:"sentence_id"`
	UserID     string    `json:"-"`
	PlanItemID string    `json:"plan_item_id"`
	Sentence   string    `json:"sentence"`
	CreatedAt  time.Time `json:"created_at"`
}
