package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lucasb/storyquest/internal/models"
)

// MockEventRepository is a mock implementation of repository.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Insert(ctx context.Context, event models.Event) (int64, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventRepository) CountByType(ctx context.Context, profileID int64) (map[string]int, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}
