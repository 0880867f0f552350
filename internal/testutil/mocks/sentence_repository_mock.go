package mocks

import (
	"context"

	"github.com/hyerin/tinywords/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockSentenceRepository is a mock implementation of repository.SentenceRepository
type MockSentenceRepository struct {
	mock.Mock
}

func (m *MockSentenceRepository) Insert(ctx context.Context, attempt models.SentenceAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockSentenceRepository) LatestByPlanItems(ctx context.Context, userID string, planItemIDs []string) (map[string]string, error) {
	args := m.Called(ctx, userID, planItemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}
