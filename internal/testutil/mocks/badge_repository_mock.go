package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lucasb/storyquest/internal/models"
)

// MockBadgeRepository is a mock implementation of repository.BadgeRepository
type MockBadgeRepository struct {
	mock.Mock
}

func (m *MockBadgeRepository) List(ctx context.Context, profileID int64) ([]models.Badge, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Badge), args.Error(1)
}

func (m *MockBadgeRepository) Award(ctx context.Context, profileID int64, badge models.Badge) (bool, error) {
	args := m.Called(ctx, profileID, badge)
	return args.Bool(0), args.Error(1)
}

func (m *MockBadgeRepository) Count(ctx context.Context, profileID int64) (int, error) {
	args := m.Called(ctx, profileID)
	return args.Int(0), args.Error(1)
}
