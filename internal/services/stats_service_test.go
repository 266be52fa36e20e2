package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lucasb/storyquest/internal/errors"
	"github.com/lucasb/storyquest/internal/models"
	"github.com/lucasb/storyquest/internal/services"
	"github.com/lucasb/storyquest/internal/testutil/mocks"
)

func newStatsServiceForTest() (services.StatsService, *mocks.MockProfileRepository, *mocks.MockProgressRepository, *mocks.MockBadgeRepository, *mocks.MockEventRepository) {
	profileRepo := new(mocks.MockProfileRepository)
	progressRepo := new(mocks.MockProgressRepository)
	badgeRepo := new(mocks.MockBadgeRepository)
	eventRepo := new(mocks.MockEventRepository)
	svc := services.NewStatsService(profileRepo, progressRepo, badgeRepo, eventRepo)
	return svc, profileRepo, progressRepo, badgeRepo, eventRepo
}

func TestDashboard_Summary(t *testing.T) {
	ctx := context.Background()
	svc, profileRepo, progressRepo, badgeRepo, _ := newStatsServiceForTest()

	profileRepo.On("Get", mock.Anything, int64(1)).Return(&models.Profile{ID: 1, Name: "Maya"}, nil)
	progressRepo.On("Get", mock.Anything, int64(1)).Return(&models.Progress{
		ProfileID:      1,
		SolvedCount:    8,
		AttemptedCount: 10,
		SkillLevel:     2,
		Difficulty:     models.DifficultyState{Tier: models.TierMedium},
	}, nil)
	badgeRepo.On("Count", mock.Anything, int64(1)).Return(3, nil)

	summary, err := svc.Dashboard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Maya", summary.ProfileName)
	assert.Equal(t, 8, summary.SolvedCount)
	assert.Equal(t, models.TierMedium, summary.CurrentTier)
	assert.Equal(t, 3, summary.BadgeCount)
	assert.InDelta(t, 0.8, summary.OverallAccuracy, 1e-9)

	// Second read hits the cache.
	_, err = svc.Dashboard(ctx, 1)
	require.NoError(t, err)
	profileRepo.AssertNumberOfCalls(t, "Get", 1)
}

func TestDashboard_UnknownProfile(t *testing.T) {
	ctx := context.Background()
	svc, profileRepo, _, _, _ := newStatsServiceForTest()

	profileRepo.On("Get", mock.Anything, int64(99)).Return(nil, nil)

	_, err := svc.Dashboard(ctx, 99)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestDashboard_FreshProfileHasDefaults(t *testing.T) {
	ctx := context.Background()
	svc, profileRepo, progressRepo, badgeRepo, _ := newStatsServiceForTest()

	profileRepo.On("Get", mock.Anything, int64(2)).Return(&models.Profile{ID: 2, Name: "Leo"}, nil)
	progressRepo.On("Get", mock.Anything, int64(2)).Return(nil, nil)
	badgeRepo.On("Count", mock.Anything, int64(2)).Return(0, nil)

	summary, err := svc.Dashboard(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SkillLevel)
	assert.Equal(t, models.TierEasy, summary.CurrentTier)
	assert.Zero(t, summary.OverallAccuracy)
}

func TestRefreshProfileStats_UpdatesCache(t *testing.T) {
	ctx := context.Background()
	svc, profileRepo, progressRepo, badgeRepo, _ := newStatsServiceForTest()

	profileRepo.On("Get", mock.Anything, int64(1)).Return(&models.Profile{ID: 1, Name: "Maya"}, nil)
	badgeRepo.On("Count", mock.Anything, int64(1)).Return(0, nil)

	progressRepo.On("Get", mock.Anything, int64(1)).Return(&models.Progress{ProfileID: 1, SolvedCount: 1, AttemptedCount: 1, SkillLevel: 1}, nil).Once()
	summary, err := svc.Dashboard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SolvedCount)

	progressRepo.On("Get", mock.Anything, int64(1)).Return(&models.Progress{ProfileID: 1, SolvedCount: 2, AttemptedCount: 2, SkillLevel: 1}, nil)
	require.NoError(t, svc.RefreshProfileStats(ctx, 1))

	summary, err = svc.Dashboard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.SolvedCount, "refresh replaced the cached summary")
}

func TestCategoryBreakdown(t *testing.T) {
	ctx := context.Background()
	svc, _, progressRepo, _, _ := newStatsServiceForTest()

	progressRepo.On("CategoryStats", mock.Anything, int64(1)).Return([]models.CategoryStat{
		{Category: models.CategoryMath, Attempted: 10, Correct: 7},
		{Category: models.CategoryLanguage, Attempted: 4, Correct: 4},
	}, nil)

	rows, err := svc.CategoryBreakdown(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.InDelta(t, 0.7, rows[0].Accuracy, 1e-9)
	assert.InDelta(t, 1.0, rows[1].Accuracy, 1e-9)
}
