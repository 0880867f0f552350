package models

import "time"

// UserProfile holds the user's learning settings.
type UserProfile struct {
	UserID          string    `json:"user_id"`
	DailyTarget     int       `json:"daily_target"` // 3, 4 or 5
	Level           string    `json:"level"`
	LearningFocus   string    `json:"learning_focus"`
	Timezone        string    `json:"timezone"`
	ReminderEnabled bool      `json:"reminder_enabled"`
	SpeechRequired  bool      `json:"speech_required_for_completion"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProfilePatch is a partial update to a user profile. Nil fields keep
// the current value.
type ProfilePatch struct {
	DailyTarget     *int    `json:"daily_target"`
	Level           *string `json:"level"`
	LearningFocus   *string `json:"learning_focus"`
	ReminderEnabled *bool   `json:"reminder_enabled"`
	SpeechRequired  *bool   `json:"speech_required_for_completion"`
}
