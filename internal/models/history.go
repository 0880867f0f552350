package models

// HistoryDay summarizes one calendar day for the history screen.
type HistoryDay struct {
	PlanDate       string        `json:"plan_date"`
	PlanStatus     PlanStatus    `json:"dayplan_status"`
	LearningDone   int           `json:"learning_done"`
	LearningTarget int           `json:"learning_target"`
	ReviewDone     int           `json:"review_done"`
	ReviewPending  int           `json:"review_pending"`
	Items          []HistoryItem `json:"items"`
}

// HistoryItem is the per-item detail inside a history day, enriched
// with the user's latest sentence and pronunciation score when present.
type HistoryItem struct {
	Lemma              string       `json:"lemma"`
	Meaning            string       `json:"meaning"`
	ItemType           ItemType     `json:"item_type"`
	RecallStatus       RecallStatus `json:"recall_status"`
	SentenceStatus     StepStatus   `json:"sentence_status"`
	SpeechStatus       StepStatus   `json:"speech_status"`
	IsCompleted        bool         `json:"is_completed"`
	UserSentence       string       `json:"user_sentence,omitempty"`
	PronunciationScore *int         `json:"pronunciation_score,omitempty"`
}
