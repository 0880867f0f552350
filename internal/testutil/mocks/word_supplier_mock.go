package mocks

import (
	"context"

	"github.com/hyerin/tinywords/internal/words"
	"github.com/stretchr/testify/mock"
)

// MockWordSupplier is a mock implementation of words.Supplier
type MockWordSupplier struct {
	mock.Mock
}

func (m *MockWordSupplier) GenerateWords(ctx context.Context, input words.GenerateInput) ([]words.GeneratedWord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]words.GeneratedWord), args.Error(1)
}
