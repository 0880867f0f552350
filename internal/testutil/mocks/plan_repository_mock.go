package mocks

import (
	"context"
	"time"

	"github.com/hyerin/tinywords/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockPlanRepository is a mock implementation of repository.PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) GetByDate(ctx context.Context, userID, planDate string) (*models.DayPlan, error) {
	args := m.Called(ctx, userID, planDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DayPlan), args.Error(1)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, userID, planID string) (*models.DayPlan, error) {
	args := m.Called(ctx, userID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DayPlan), args.Error(1)
}

func (m *MockPlanRepository) Insert(ctx context.Context, p models.DayPlan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlanRepository) GetItem(ctx context.Context, userID, planID, planItemID string) (*models.PlanItem, error) {
	args := m.Called(ctx, userID, planID, planItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlanItem), args.Error(1)
}

func (m *MockPlanRepository) UpdateItem(ctx context.Context, item models.PlanItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPlanRepository) Complete(ctx context.Context, userID, planID string, completedAt time.Time) error {
	args := m.Called(ctx, userID, planID, completedAt)
	return args.Error(0)
}

func (m *MockPlanRepository) ListCompleted(ctx context.Context, userID string, limit int) ([]models.DayPlan, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DayPlan), args.Error(1)
}

func (m *MockPlanRepository) KnownLemmas(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPlanRepository) RecentLemmas(ctx context.Context, userID string, limit int) ([]string, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
