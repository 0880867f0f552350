// Package plan implements the day-plan progression engine: the per-item
// three-step completion state machine and the plan completion rule.
// Everything here is pure; persistence and error surfacing live in the
// service layer.
package plan

import (
	"time"

	"github.com/hyerin/tinywords/internal/dateutil"
	"github.com/hyerin/tinywords/internal/models"
)

// CTAState drives the "Today" screen call-to-action.
type CTAState string

const (
	CTAStart    CTAState = "start"
	CTAContinue CTAState = "continue"
	CTADone     CTAState = "done"
)

// Progress summarizes how far through a day plan the user is.
type Progress struct {
	Total           int      `json:"total"`
	CompletedCount  int      `json:"completed_count"`
	ProgressPercent int      `json:"progress_percent"`
	StepsCompleted  int      `json:"steps_completed"`
	StepsTotal      int      `json:"steps_total"`
	StepPercent     int      `json:"step_percent"`
	CTAState        CTAState `json:"cta_state"`
}

// IsItemCompleted reports whether all three steps are finished:
// recall succeeded, sentence done, speech done or skipped.
func IsItemCompleted(item models.PlanItem) bool {
	speechOK := item.SpeechStatus == models.StepDone || item.SpeechStatus == models.StepSkipped
	return item.RecallStatus == models.RecallSuccess &&
		item.SentenceStatus == models.StepDone &&
		speechOK
}

// SyncCompletion returns item with IsCompleted recomputed. Callers must
// apply this after every step-status write; IsCompleted is never set
// directly.
func SyncCompletion(item models.PlanItem) models.PlanItem {
	item.IsCompleted = IsItemCompleted(item)
	return item
}

// CountCompletedSteps returns how many of the item's three steps are
// complete (recall success, sentence done, speech done or skipped).
func CountCompletedSteps(item models.PlanItem) int {
	count := 0
	if item.RecallStatus == models.RecallSuccess {
		count++
	}
	if item.SentenceStatus == models.StepDone {
		count++
	}
	if item.SpeechStatus == models.StepDone || item.SpeechStatus == models.StepSkipped {
		count++
	}
	return count
}

// CanTransitionRecall reports whether the recall step may move from old
// to new. Recall is terminal once it leaves pending; re-sending the
// current value is allowed (idempotent no-op).
func CanTransitionRecall(old, new models.RecallStatus) bool {
	if old == new {
		return true
	}
	return old == models.RecallPending &&
		(new == models.RecallSuccess || new == models.RecallFail)
}

// CanTransitionStep reports whether a sentence/speech step may move from
// old to new. Terminal once it leaves pending.
func CanTransitionStep(old, new models.StepStatus) bool {
	if old == new {
		return true
	}
	return old == models.StepPending &&
		(new == models.StepDone || new == models.StepSkipped)
}

// CanComplete reports whether every item in the plan is completed.
func CanComplete(p models.DayPlan) bool {
	for _, item := range p.Items {
		if !item.IsCompleted {
			return false
		}
	}
	return true
}

// Complete returns a copy of p marked completed at the given instant.
// If the plan is not ready it returns p unchanged; the caller is
// responsible for surfacing that as a validation failure. Completing an
// already-completed plan is a no-op.
func Complete(p models.DayPlan, completedAt time.Time) models.DayPlan {
	if p.Status == models.PlanCompleted {
		return p
	}
	if !CanComplete(p) {
		return p
	}
	p.Status = models.PlanCompleted
	p.CompletedAt = &completedAt
	return p
}

// GetProgress computes plan progress and the CTA state.
func GetProgress(p models.DayPlan) Progress {
	completedCount := 0
	stepsCompleted := 0
	for _, item := range p.Items {
		if item.IsCompleted {
			completedCount++
		}
		stepsCompleted += CountCompletedSteps(item)
	}
	stepsTotal := len(p.Items) * 3

	progressPercent := 0
	if p.DailyTarget >= 1 {
		progressPercent = completedCount * 100 / p.DailyTarget
	}
	stepPercent := 0
	if stepsTotal >= 1 {
		stepPercent = stepsCompleted * 100 / stepsTotal
	}

	out := Progress{
		Total:           p.DailyTarget,
		CompletedCount:  completedCount,
		ProgressPercent: progressPercent,
		StepsCompleted:  stepsCompleted,
		StepsTotal:      stepsTotal,
		StepPercent:     stepPercent,
	}

	switch {
	case p.Status == models.PlanCompleted:
		out.ProgressPercent = 100
		out.StepPercent = 100
		out.CTAState = CTADone
	case completedCount == 0 && stepsCompleted == 0:
		out.CTAState = CTAStart
	default:
		out.CTAState = CTAContinue
	}
	return out
}

// FirstReviewDueDate returns the due date of the D1 review for a plan:
// always the calendar day after the plan's date, regardless of when the
// plan was actually completed.
func FirstReviewDueDate(planDate string) string {
	return dateutil.AddDays(planDate, 1)
}
