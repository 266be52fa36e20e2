package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lucasb/storyquest/internal/models"
	"github.com/lucasb/storyquest/internal/services"
	"github.com/lucasb/storyquest/internal/testutil/mocks"
)

func TestProgressLoad_EmptyStoreTolerant(t *testing.T) {
	ctx := context.Background()
	progressRepo := new(mocks.MockProgressRepository)
	svc := services.NewProgressService(progressRepo, "gate")

	progressRepo.On("Get", mock.Anything, int64(7)).Return(nil, nil)

	p, err := svc.Load(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ProfileID)
	assert.Equal(t, "gate", p.CurrentScene)
	assert.Equal(t, 1, p.SkillLevel)
	assert.Equal(t, models.TierEasy, p.Difficulty.Tier)
	assert.Zero(t, p.SolvedCount)
}

func TestRecordCompletion_CountersAndStreak(t *testing.T) {
	ctx := context.Background()
	progressRepo := new(mocks.MockProgressRepository)
	svc := services.NewProgressService(progressRepo, "gate")

	stored := models.Progress{
		ProfileID:      7,
		CurrentScene:   "riddle",
		SolvedCount:    9,
		AttemptedCount: 12,
		SkillLevel:     2,
		FirstTryStreak: 2,
		Difficulty:     models.DifficultyState{Tier: models.TierMedium},
	}
	progressRepo.On("Get", mock.Anything, int64(7)).Return(&stored, nil)
	progressRepo.On("BumpCategory", mock.Anything, int64(7), models.CategoryMath, true).Return(nil)

	var saved models.Progress
	progressRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(models.Progress)
	}).Return(nil)

	got, err := svc.RecordCompletion(ctx, services.CompletionRecord{
		ProfileID:  7,
		Category:   models.CategoryMath,
		Outcome:    models.Outcome{Correct: true, Attempts: 1, Hints: 0, Elapsed: 8 * time.Second, Tier: models.TierMedium},
		Difficulty: models.DifficultyState{Tier: models.TierHard},
		NextScene:  "meadow",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, got.SolvedCount)
	assert.Equal(t, 13, got.AttemptedCount)
	assert.Equal(t, 3, got.FirstTryStreak, "first-try no-hint solve extends the streak")
	assert.Equal(t, 3, got.SkillLevel, "a level every five solves")
	assert.Equal(t, "meadow", got.CurrentScene)
	assert.Equal(t, models.TierHard, got.Difficulty.Tier)
	assert.Equal(t, saved, got)
}

func TestRecordCompletion_StreakResets(t *testing.T) {
	ctx := context.Background()
	progressRepo := new(mocks.MockProgressRepository)
	svc := services.NewProgressService(progressRepo, "gate")

	progressRepo.On("Get", mock.Anything, int64(7)).Return(&models.Progress{
		ProfileID:      7,
		CurrentScene:   "riddle",
		FirstTryStreak: 4,
		SkillLevel:     1,
	}, nil)
	progressRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	progressRepo.On("BumpCategory", mock.Anything, int64(7), models.CategoryMath, false).Return(nil)

	got, err := svc.RecordCompletion(ctx, services.CompletionRecord{
		ProfileID: 7,
		Category:  models.CategoryMath,
		Outcome:   models.Outcome{Correct: false, Attempts: 3, Tier: models.TierMedium},
	})
	require.NoError(t, err)
	assert.Zero(t, got.FirstTryStreak)
	assert.Zero(t, got.SolvedCount)
	assert.Equal(t, 1, got.AttemptedCount)
	assert.Equal(t, "riddle", got.CurrentScene, "no route given, scene unchanged")
}

func TestSkillLevelCapped(t *testing.T) {
	ctx := context.Background()
	progressRepo := new(mocks.MockProgressRepository)
	svc := services.NewProgressService(progressRepo, "gate")

	progressRepo.On("Get", mock.Anything, int64(7)).Return(&models.Progress{
		ProfileID:   7,
		SolvedCount: 98,
		SkillLevel:  10,
	}, nil)
	progressRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	progressRepo.On("BumpCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	got, err := svc.RecordCompletion(ctx, services.CompletionRecord{
		ProfileID: 7,
		Category:  models.CategoryScience,
		Outcome:   models.Outcome{Correct: true, Attempts: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, got.SkillLevel)
}
