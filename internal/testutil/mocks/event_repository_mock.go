package mocks

import (
	"context"

	"github.com/hyerin/tinywords/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockEventRepository is a mock implementation of repository.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Insert(ctx context.Context, event models.ActivityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
