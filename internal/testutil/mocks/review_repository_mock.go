package mocks

import (
	"context"

	"github.com/hyerin/tinywords/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Get(ctx context.Context, userID, reviewID string) (*models.ReviewTask, error) {
	args := m.Called(ctx, userID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewTask), args.Error(1)
}

func (m *MockReviewRepository) ListQueued(ctx context.Context, userID string) ([]models.ReviewTask, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewTask), args.Error(1)
}

func (m *MockReviewRepository) Insert(ctx context.Context, task models.ReviewTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, task models.ReviewTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockReviewRepository) ExistsQueued(ctx context.Context, userID, learningItemID string, stage models.ReviewStage) (bool, error) {
	args := m.Called(ctx, userID, learningItemID, stage)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) CountDoneOn(ctx context.Context, userID, completedDate string) (int, error) {
	args := m.Called(ctx, userID, completedDate)
	return args.Int(0), args.Error(1)
}

func (m *MockReviewRepository) CountQueuedDueBy(ctx context.Context, userID, date string) (int, error) {
	args := m.Called(ctx, userID, date)
	return args.Int(0), args.Error(1)
}
