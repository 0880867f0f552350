// Package review implements the spaced-review queue engine: overdue
// detection, queue ordering and the stage progression D1→D3→D7. All
// functions are pure; duplicate suppression and persistence are the
// service layer's job.
package review

import (
	"sort"
	"time"

	"github.com/hyerin/tinywords/internal/dateutil"
	"github.com/hyerin/tinywords/internal/models"
)

// PolicyVersion identifies the scheduling policy applied by SubmitReview.
const PolicyVersion = "v1"

// Due-date offsets from the submission day. The schedule anchors to the
// day the review is submitted, not the day it was originally due.
const (
	d3OffsetDays    = 2
	d7OffsetDays    = 4
	retryOffsetDays = 1
)

var stageRanks = map[models.ReviewStage]int{
	models.StageD1:     0,
	models.StageD3:     1,
	models.StageD7:     2,
	models.StageCustom: 3,
}

// StageRank orders stages d1 < d3 < d7 < custom. Unknown stages sort last.
func StageRank(stage models.ReviewStage) int {
	if rank, ok := stageRanks[stage]; ok {
		return rank
	}
	return len(stageRanks)
}

// NextStage returns the successor stage, or "" if the stage is terminal.
// d7 and custom spawn no further task.
func NextStage(stage models.ReviewStage) models.ReviewStage {
	switch stage {
	case models.StageD1:
		return models.StageD3
	case models.StageD3:
		return models.StageD7
	default:
		return ""
	}
}

// IsOverdue reports whether a queued task's due date has passed.
func IsOverdue(task models.ReviewTask, today string) bool {
	return task.Status == models.ReviewQueued &&
		dateutil.Compare(task.DueDate, today) < 0
}

// SortQueue returns a new slice ordered for the inbox: overdue tasks
// first, then ascending due date, then stage rank. The sort is stable so
// equal tasks keep their incoming order.
func SortQueue(tasks []models.ReviewTask, today string) []models.ReviewTask {
	sorted := make([]models.ReviewTask, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		aOverdue, bOverdue := IsOverdue(a, today), IsOverdue(b, today)
		if aOverdue != bOverdue {
			return aOverdue
		}
		if cmp := dateutil.Compare(a.DueDate, b.DueDate); cmp != 0 {
			return cmp < 0
		}
		return StageRank(a.Stage) < StageRank(b.Stage)
	})
	return sorted
}

// TaskFactory builds a new review task for the next stage. The service
// layer supplies one that fills in IDs and ownership.
type TaskFactory func(stage models.ReviewStage, dueDate string) models.ReviewTask

// SubmitOutcome is the result of applying a review submission.
type SubmitOutcome struct {
	UpdatedTask     models.ReviewTask
	NextTask        *models.ReviewTask
	NextTaskCreated bool
	PolicyVersion   string
}

// SubmitReview applies a review result to a queued task.
//
//   - fail: the task stays queued and is retried tomorrow; no new task.
//   - success or hard: the task is done; if the stage has a successor a
//     new task is created due today+2 (d3) or today+4 (d7).
//
// The caller must verify the task is queued beforehand and must suppress
// the next task if a queued duplicate for the same (item, stage) exists.
func SubmitReview(task models.ReviewTask, result models.ReviewResult, today string, submittedAt time.Time, factory TaskFactory) SubmitOutcome {
	if result == models.ResultFail {
		task.DueDate = dateutil.AddDays(today, retryOffsetDays)
		task.Status = models.ReviewQueued
		return SubmitOutcome{UpdatedTask: task, PolicyVersion: PolicyVersion}
	}

	task.Status = models.ReviewDone
	task.CompletedAt = &submittedAt

	next := NextStage(task.Stage)
	if next == "" {
		return SubmitOutcome{UpdatedTask: task, PolicyVersion: PolicyVersion}
	}

	offset := d3OffsetDays
	if next == models.StageD7 {
		offset = d7OffsetDays
	}
	created := factory(next, dateutil.AddDays(today, offset))
	return SubmitOutcome{
		UpdatedTask:     task,
		NextTask:        &created,
		NextTaskCreated: true,
		PolicyVersion:   PolicyVersion,
	}
}
