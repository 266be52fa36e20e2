package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lucasb/storyquest/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, profileID int64) (*models.Progress, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

func (m *MockProgressRepository) Save(ctx context.Context, progress models.Progress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) CategoryStats(ctx context.Context, profileID int64) ([]models.CategoryStat, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryStat), args.Error(1)
}

func (m *MockProgressRepository) BumpCategory(ctx context.Context, profileID int64, category models.Category, correct bool) error {
	args := m.Called(ctx, profileID, category, correct)
	return args.Error(0)
}

func (m *MockProgressRepository) Reset(ctx context.Context, profileID int64) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}
