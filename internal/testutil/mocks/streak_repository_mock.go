package mocks

import (
	"context"

	"github.com/hyerin/tinywords/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockStreakRepository is a mock implementation of repository.StreakRepository
type MockStreakRepository struct {
	mock.Mock
}

func (m *MockStreakRepository) Get(ctx context.Context, userID string) (models.StreakState, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.StreakState), args.Error(1)
}

func (m *MockStreakRepository) Upsert(ctx context.Context, state models.StreakState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}
