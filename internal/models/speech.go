package models

import "time"

// SpeechAttempt is one recording of the user speaking a plan item's
// sentence. Scoring happens outside this server; the score is stored
// verbatim and never interpreted.
type SpeechAttempt struct {
	ID                 string    `json:"speech_id"`
	UserID             string    `json:"-"`
	PlanItemID         string    `json:"plan_item_id"`
	AudioURI           string    `json:"audio_uri"`
	DurationMs         int       `json:"duration_ms"`
	PronunciationScore *int      `json:"pronunciation_score"`
	ScoringVersion     string    `json:"scoring_version"`
	CreatedAt          time.Time `json:"created_at"`
}
