package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/patternmaster/internal/models"
)

// MockCompletedPatternRepository is a mock implementation of repository.CompletedPatternRepository
type MockCompletedPatternRepository struct {
	mock.Mock
}

func (m *MockCompletedPatternRepository) Insert(ctx context.Context, record models.CompletedPattern) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCompletedPatternRepository) ExcludedSequences(ctx context.Context, userID string, t models.PatternType) ([]string, error) {
	args := m.Called(ctx, userID, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCompletedPatternRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.CompletedPattern, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CompletedPattern), args.Error(1)
}
