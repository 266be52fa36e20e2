package services

import (
	"context"
	"time"

	"github.com/lucasb/storyquest/internal/errors"
	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/models"
	"github.com/lucasb/storyquest/internal/repository"
)

// BadgeService evaluates achievement rules after each completed puzzle and
// awards badges idempotently.
type BadgeService interface {
	List(ctx context.Context, profileID int64) ([]models.Badge, error)
	EvaluateAfterCompletion(ctx context.Context, profileID int64, progress models.Progress, outcome models.Outcome) ([]models.Badge, error)
}

type badgeService struct {
	badgeRepo    repository.BadgeRepository
	progressRepo repository.ProgressRepository
}

// NewBadgeService creates a new BadgeService
func NewBadgeService(badgeRepo repository.BadgeRepository, progressRepo repository.ProgressRepository) BadgeService {
	return &badgeService{badgeRepo: badgeRepo, progressRepo: progressRepo}
}

// speedSolveLimit is the slowest a first-attempt solve can be and still count
// as a speed solve.
const speedSolveLimit = 10 * time.Second

var categoryBadges = map[models.Category]models.Badge{
	models.CategoryMath:     {Code: "math_whiz", Title: "Math Whiz"},
	models.CategoryLanguage: {Code: "word_wizard", Title: "Word Wizard"},
	models.CategoryScience:  {Code: "science_star", Title: "Science Star"},
}

func (s *badgeService) List(ctx context.Context, profileID int64) ([]models.Badge, error) {
	badges, err := s.badgeRepo.List(ctx, profileID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return badges, nil
}

func (s *badgeService) EvaluateAfterCompletion(ctx context.Context, profileID int64, progress models.Progress, outcome models.Outcome) ([]models.Badge, error) {
	log := logger.FromContext(ctx)

	var candidates []models.Badge
	if progress.SolvedCount >= 1 {
		candidates = append(candidates, models.Badge{Code: "first_solve", Title: "First Spark"})
	}
	if progress.SolvedCount >= 10 {
		candidates = append(candidates, models.Badge{Code: "solver_10", Title: "Puzzle Apprentice"})
	}
	if progress.SolvedCount >= 25 {
		candidates = append(candidates, models.Badge{Code: "solver_25", Title: "Puzzle Master"})
	}
	if progress.FirstTryStreak >= 5 {
		candidates = append(candidates, models.Badge{Code: "streak_5", Title: "Hot Streak"})
	}
	if outcome.Correct && outcome.Attempts == 1 && outcome.Elapsed <= speedSolveLimit {
		candidates = append(candidates, models.Badge{Code: "quick_thinker", Title: "Quick Thinker"})
	}

	stats, err := s.progressRepo.CategoryStats(ctx, profileID)
	if err != nil {
		log.Warn("failed to load category stats for badge rules: %v", err)
	} else {
		for _, st := range stats {
			if badge, ok := categoryBadges[st.Category]; ok && st.Correct >= 10 {
				candidates = append(candidates, badge)
			}
		}
	}

	var earned []models.Badge
	for _, badge := range candidates {
		awarded, err := s.badgeRepo.Award(ctx, profileID, badge)
		if err != nil {
			log.Error("failed to award badge %s: %v", badge.Code, err)
			return earned, errors.NewInternalError(err)
		}
		if awarded {
			log.Info("badge earned: profile_id=%d, code=%s", profileID, badge.Code)
			earned = append(earned, badge)
		}
	}
	return earned, nil
}
