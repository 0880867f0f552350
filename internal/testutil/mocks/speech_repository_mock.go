package mocks

import (
	"context"

	"github.com/hyerin/tinywords/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockSpeechRepository is a mock implementation of repository.SpeechRepository
type MockSpeechRepository struct {
	mock.Mock
}

func (m *MockSpeechRepository) Insert(ctx context.Context, attempt models.SpeechAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockSpeechRepository) Get(ctx context.Context, userID, speechID string) (*models.SpeechAttempt, error) {
	args := m.Called(ctx, userID, speechID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpeechAttempt), args.Error(1)
}

func (m *MockSpeechRepository) UpdateScore(ctx context.Context, userID, speechID string, score int, scoringVersion string) error {
	args := m.Called(ctx, userID, speechID, score, scoringVersion)
	return args.Error(0)
}

func (m *MockSpeechRepository) LatestByPlanItems(ctx context.Context, userID string, planItemIDs []string) (map[string]models.SpeechAttempt, error) {
	args := m.Called(ctx, userID, planItemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.SpeechAttempt), args.Error(1)
}
