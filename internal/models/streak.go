package models

// StreakState is the per-user consecutive-day-completion counter.
// LongestStreak is never less than CurrentStreak.
type StreakState struct {
	UserID            string  `json:"-"`
	CurrentStreak     int     `json:"current_streak"`
	LongestStreak     int     `json:"longest_streak"`
	LastCompletedDate *string `json:"last_completed_date"` // YYYY-MM-DD
}
