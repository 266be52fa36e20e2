package services

import (
	"context"

	"github.com/lucasb/storyquest/internal/errors"
	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/models"
	"github.com/lucasb/storyquest/internal/repository"
)

// ProgressService owns the save system: aggregate counters, the current
// scene, and the difficulty tracker snapshot. In-progress puzzle attempts are
// never persisted.
type ProgressService interface {
	Load(ctx context.Context, profileID int64) (models.Progress, error)
	RecordCompletion(ctx context.Context, rec CompletionRecord) (models.Progress, error)
	MoveToScene(ctx context.Context, profileID int64, sceneID string) error
	Reset(ctx context.Context, profileID int64) error
}

// CompletionRecord carries everything a finished puzzle contributes to the
// save data.
type CompletionRecord struct {
	ProfileID  int64
	Category   models.Category
	Outcome    models.Outcome
	Difficulty models.DifficultyState
	// NextScene is the routed destination for scene-bound puzzles, empty for
	// free-play sessions.
	NextScene string
}

type progressService struct {
	progressRepo repository.ProgressRepository
	startScene   string
}

// NewProgressService creates a new ProgressService. startScene seeds fresh
// saves with the story entry point.
func NewProgressService(progressRepo repository.ProgressRepository, startScene string) ProgressService {
	return &progressService{progressRepo: progressRepo, startScene: startScene}
}

// Load returns the save data for a profile. A missing row is not an error:
// fresh profiles start at the entry scene with an empty tracker at easy.
func (s *progressService) Load(ctx context.Context, profileID int64) (models.Progress, error) {
	log := logger.FromContext(ctx)

	p, err := s.progressRepo.Get(ctx, profileID)
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return models.Progress{}, errors.NewInternalError(err)
	}
	if p == nil {
		log.Debug("fresh profile, starting new save: profile_id=%d", profileID)
		return models.Progress{
			ProfileID:    profileID,
			CurrentScene: s.startScene,
			SkillLevel:   1,
			Difficulty:   models.DifficultyState{Tier: models.TierEasy},
		}, nil
	}
	if p.CurrentScene == "" {
		p.CurrentScene = s.startScene
	}
	return *p, nil
}

func (s *progressService) RecordCompletion(ctx context.Context, rec CompletionRecord) (models.Progress, error) {
	log := logger.FromContext(ctx)

	progress, err := s.Load(ctx, rec.ProfileID)
	if err != nil {
		return models.Progress{}, err
	}

	progress.AttemptedCount++
	if rec.Outcome.Correct {
		progress.SolvedCount++
	}
	if rec.Outcome.Correct && rec.Outcome.Attempts == 1 && rec.Outcome.Hints == 0 {
		progress.FirstTryStreak++
	} else {
		progress.FirstTryStreak = 0
	}
	progress.SkillLevel = skillLevelFor(progress.SolvedCount)
	progress.Difficulty = rec.Difficulty
	if rec.NextScene != "" {
		progress.CurrentScene = rec.NextScene
	}

	if err := s.progressRepo.Save(ctx, progress); err != nil {
		log.Error("failed to save progress: %v", err)
		return models.Progress{}, errors.NewInternalError(err)
	}
	if err := s.progressRepo.BumpCategory(ctx, rec.ProfileID, rec.Category, rec.Outcome.Correct); err != nil {
		// Category counters are dashboard data; losing one bump must not fail
		// the submission.
		log.Warn("failed to bump category stats: %v", err)
	}

	log.Debug("completion recorded: profile_id=%d, solved=%d, attempted=%d, streak=%d",
		rec.ProfileID, progress.SolvedCount, progress.AttemptedCount, progress.FirstTryStreak)
	return progress, nil
}

func (s *progressService) MoveToScene(ctx context.Context, profileID int64, sceneID string) error {
	log := logger.FromContext(ctx)

	progress, err := s.Load(ctx, profileID)
	if err != nil {
		return err
	}
	progress.CurrentScene = sceneID
	if err := s.progressRepo.Save(ctx, progress); err != nil {
		log.Error("failed to save scene move: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *progressService) Reset(ctx context.Context, profileID int64) error {
	log := logger.FromContext(ctx)
	log.Info("resetting progress: profile_id=%d", profileID)

	if err := s.progressRepo.Reset(ctx, profileID); err != nil {
		log.Error("failed to reset progress: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

// skillLevelFor derives the 1..10 skill level shown on the dashboard from
// lifetime solves: a level every five solves.
func skillLevelFor(solved int) int {
	level := 1 + solved/5
	if level > 10 {
		return 10
	}
	return level
}
