// Package streak implements consecutive-day-completion accounting.
package streak

import (
	"github.com/hyerin/tinywords/internal/dateutil"
	"github.com/hyerin/tinywords/internal/models"
)

// ApplyDayCompletion folds one day-plan completion into the streak
// state. It is pure and must be called exactly once per completion
// event; re-applying the same date is a no-op.
//
//   - first ever completion: streak starts at 1
//   - same date as last: unchanged
//   - the day after last: streak grows
//   - anything else (gap, or an out-of-order earlier date): reset to 1
//
// LongestStreak only ever grows.
func ApplyDayCompletion(state models.StreakState, completedDate string) models.StreakState {
	if state.LastCompletedDate == nil {
		state.CurrentStreak = 1
		state.LongestStreak = max(1, state.LongestStreak)
		state.LastCompletedDate = &completedDate
		return state
	}

	if *state.LastCompletedDate == completedDate {
		return state
	}

	expectedNext := dateutil.AddDays(*state.LastCompletedDate, 1)
	if dateutil.Compare(expectedNext, completedDate) == 0 {
		state.CurrentStreak++
	} else {
		state.CurrentStreak = 1
	}
	state.LongestStreak = max(state.LongestStreak, state.CurrentStreak)
	state.LastCompletedDate = &completedDate
	return state
}
