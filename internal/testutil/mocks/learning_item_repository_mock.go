package mocks

import (
	"context"

	"github.com/hyerin/tinywords/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockLearningItemRepository is a mock implementation of repository.LearningItemRepository
type MockLearningItemRepository struct {
	mock.Mock
}

func (m *MockLearningItemRepository) InsertBatch(ctx context.Context, items []models.LearningItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockLearningItemRepository) ListByIDs(ctx context.Context, userID string, ids []string) ([]models.LearningItem, error) {
	args := m.Called(ctx, userID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LearningItem), args.Error(1)
}
