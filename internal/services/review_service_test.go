package services

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/hyerin/tinywords/internal/errors"
	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/repository"
	"github.com/hyerin/tinywords/internal/review"
	"github.com/hyerin/tinywords/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewServiceMocks struct {
	reviews  *mocks.MockReviewRepository
	items    *mocks.MockLearningItemRepository
	idem     *mocks.MockIdempotencyRepository
	recorder *recorderStub
}

func newReviewService() (ReviewService, *reviewServiceMocks) {
	m := &reviewServiceMocks{
		reviews:  new(mocks.MockReviewRepository),
		items:    new(mocks.MockLearningItemRepository),
		idem:     new(mocks.MockIdempotencyRepository),
		recorder: new(recorderStub),
	}
	svc := NewReviewService(m.reviews, m.items, m.idem, m.recorder, 24*time.Hour)
	return svc, m
}

func queuedTask(id, itemID string, stage models.ReviewStage, dueDate string) models.ReviewTask {
	return models.ReviewTask{
		ID:             id,
		UserID:         "user-1",
		LearningItemID: itemID,
		DueDate:        dueDate,
		Stage:          stage,
		Status:         models.ReviewQueued,
	}
}

func TestGetQueueOrdersAndSummarizes(t *testing.T) {
	svc, m := newReviewService()
	ctx := context.Background()
	today := "2026-02-15"

	m.reviews.On("ListQueued", ctx, "user-1").Return([]models.ReviewTask{
		queuedTask("rev-a", "li-a", models.StageD3, "2026-02-17"),
		queuedTask("rev-b", "li-b", models.StageD1, "2026-02-15"),
		queuedTask("rev-c", "li-c", models.StageD1, "2026-02-13"),
	}, nil)
	m.items.On("ListByIDs", ctx, "user-1", []string{"li-c", "li-b", "li-a"}).Return([]models.LearningItem{
		{ID: "li-c", Lemma: "commute", Meaning: "통근하다", ItemType: models.ItemTypeVocab},
		{ID: "li-b", Lemma: "sturdy", Meaning: "튼튼한", ItemType: models.ItemTypeVocab},
	}, nil)

	queue, err := svc.GetQueue(ctx, "user-1", today)
	require.NoError(t, err)

	// Overdue first, then due today, then future.
	require.Len(t, queue.Tasks, 3)
	assert.Equal(t, "rev-c", queue.Tasks[0].ID)
	assert.Equal(t, "rev-b", queue.Tasks[1].ID)
	assert.Equal(t, "rev-a", queue.Tasks[2].ID)

	assert.Equal(t, 3, queue.Summary.QueuedTotal)
	assert.Equal(t, 1, queue.Summary.OverdueCount)
	assert.Equal(t, 1, queue.Summary.DueTodayCount)

	// Enriched from the learning item.
	assert.Equal(t, "commute", queue.Tasks[0].Lemma)
	assert.Equal(t, "sturdy", queue.Tasks[1].Lemma)
	assert.Empty(t, queue.Tasks[2].Lemma)
}

func TestSubmitInvalidResult(t *testing.T) {
	svc, _ := newReviewService()

	_, err := svc.Submit(context.Background(), "user-1", "rev-1", "easy", "2026-02-15", "")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestSubmitNotFound(t *testing.T) {
	svc, m := newReviewService()
	ctx := context.Background()
	m.reviews.On("Get", ctx, "user-1", "rev-1").Return(nil, nil)

	_, err := svc.Submit(ctx, "user-1", "rev-1", models.ResultSuccess, "2026-02-15", "")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestSubmitDoneTaskConflicts(t *testing.T) {
	svc, m := newReviewService()
	ctx := context.Background()

	done := queuedTask("rev-1", "li-1", models.StageD1, "2026-02-15")
	done.Status = models.ReviewDone
	m.reviews.On("Get", ctx, "user-1", "rev-1").Return(&done, nil)

	_, err := svc.Submit(ctx, "user-1", "rev-1", models.ResultSuccess, "2026-02-15", "")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
}

func TestSubmitFailRequeuesTomorrow(t *testing.T) {
	svc, m := newReviewService()
	ctx := context.Background()

	task := queuedTask("rev-1", "li-1", models.StageD3, "2026-02-13")
	m.reviews.On("Get", ctx, "user-1", "rev-1").Return(&task, nil)
	m.reviews.On("Update", ctx, mock.MatchedBy(func(t models.ReviewTask) bool {
		return t.Status == models.ReviewQueued && t.DueDate == "2026-02-16" && t.Stage == models.StageD3
	})).Return(nil)

	result, err := svc.Submit(ctx, "user-1", "rev-1", models.ResultFail, "2026-02-15", "")
	require.NoError(t, err)
	assert.Nil(t, result.NextTask)
	assert.False(t, result.NextTaskCreated)
	assert.Equal(t, review.PolicyVersion, result.PolicyVersion)
	m.reviews.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSubmitSuccessAdvancesStage(t *testing.T) {
	svc, m := newReviewService()
	ctx := context.Background()

	task := queuedTask("rev-1", "li-1", models.StageD1, "2026-02-15")
	m.reviews.On("Get", ctx, "user-1", "rev-1").Return(&task, nil)
	m.reviews.On("Update", ctx, mock.MatchedBy(func(t models.ReviewTask) bool {
		return t.Status == models.ReviewDone && t.CompletedAt != nil
	})).Return(nil)
	m.reviews.On("ExistsQueued", ctx, "user-1", "li-1", models.StageD3).Return(false, nil)
	m.reviews.On("Insert", ctx, mock.MatchedBy(func(t models.ReviewTask) bool {
		return t.Stage == models.StageD3 && t.DueDate == "2026-02-17" && t.Status == models.ReviewQueued
	})).Return(nil)

	result, err := svc.Submit(ctx, "user-1", "rev-1", models.ResultSuccess, "2026-02-15", "")
	require.NoError(t, err)
	assert.True(t, result.NextTaskCreated)
	require.NotNil(t, result.NextTask)
	assert.Equal(t, models.StageD3, result.NextTask.Stage)
	assert.Contains(t, m.recorder.names(), models.EventReviewCompleted)
}

func TestSubmitTerminalStageSpawnsNothing(t *testing.T) {
	svc, m := newReviewService()
	ctx := context.Background()

	task := queuedTask("rev-1", "li-1", models.StageD7, "2026-02-15")
	m.reviews.On("Get", ctx, "user-1", "rev-1").Return(&task, nil)
	m.reviews.On("Update", ctx, mock.Anything).Return(nil)

	result, err := svc.Submit(ctx, "user-1", "rev-1", models.ResultHard, "2026-02-15", "")
	require.NoError(t, err)
	assert.Nil(t, result.NextTask)
	m.reviews.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSubmitDuplicateNextTaskIsSuppressed(t *testing.T) {
	svc, m := newReviewService()
	ctx := context.Background()

	task := queuedTask("rev-1", "li-1", models.StageD1, "2026-02-15")
	m.reviews.On("Get", ctx, "user-1", "rev-1").Return(&task, nil)
	m.reviews.On("Update", ctx, mock.Anything).Return(nil)
	m.reviews.On("ExistsQueued", ctx, "user-1", "li-1", models.StageD3).Return(true, nil)

	result, err := svc.Submit(ctx, "user-1", "rev-1", models.ResultSuccess, "2026-02-15", "")
	require.NoError(t, err)
	assert.Nil(t, result.NextTask)
	assert.False(t, result.NextTaskCreated)
	m.reviews.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSubmitRacingNextTaskIsSuppressed(t *testing.T) {
	svc, m := newReviewService()
	ctx := context.Background()

	// The pre-check sees nothing but a racing submit wins the insert;
	// the unique index turns that into a duplicate to discard.
	task := queuedTask("rev-1", "li-1", models.StageD1, "2026-02-15")
	m.reviews.On("Get", ctx, "user-1", "rev-1").Return(&task, nil)
	m.reviews.On("Update", ctx, mock.Anything).Return(nil)
	m.reviews.On("ExistsQueued", ctx, "user-1", "li-1", models.StageD3).Return(false, nil)
	m.reviews.On("Insert", ctx, mock.Anything).Return(repository.ErrDuplicate)

	result, err := svc.Submit(ctx, "user-1", "rev-1", models.ResultSuccess, "2026-02-15", "")
	require.NoError(t, err)
	assert.Nil(t, result.NextTask)
	assert.False(t, result.NextTaskCreated)
}

func TestSubmitReplaysCachedResponse(t *testing.T) {
	svc, m := newReviewService()
	ctx := context.Background()

	key := IdempotencyKey("POST", "/api/v1/reviews/rev-1/submit", "req-1")
	cached := []byte(`{"task":{"review_id":"rev-1","status":"done"},"next_task":null,"next_task_created":false,"policy_version":"v1"}`)
	m.idem.On("Get", ctx, key).Return(cached, true, nil)

	result, err := svc.Submit(ctx, "user-1", "rev-1", models.ResultSuccess, "2026-02-15", "req-1")
	require.NoError(t, err)
	assert.Equal(t, models.ReviewDone, result.Task.Status)
	m.reviews.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	m.reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubmitCachesResponse(t *testing.T) {
	svc, m := newReviewService()
	ctx := context.Background()

	task := queuedTask("rev-1", "li-1", models.StageD7, "2026-02-15")
	key := IdempotencyKey("POST", "/api/v1/reviews/rev-1/submit", "req-2")
	m.idem.On("Get", ctx, key).Return(nil, false, nil)
	m.reviews.On("Get", ctx, "user-1", "rev-1").Return(&task, nil)
	m.reviews.On("Update", ctx, mock.Anything).Return(nil)
	m.idem.On("Put", ctx, key, "user-1", mock.Anything, 24*time.Hour).Return(nil)

	_, err := svc.Submit(ctx, "user-1", "rev-1", models.ResultSuccess, "2026-02-15", "req-2")
	require.NoError(t, err)
	m.idem.AssertExpectations(t)
}
