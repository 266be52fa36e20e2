package services

import (
	"context"
	"sync"

	"github.com/lucasb/storyquest/internal/errors"
	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/models"
	"github.com/lucasb/storyquest/internal/repository"
)

// StatsService aggregates the parent dashboard: headline summary, accuracy
// per category, and the recent activity feed.
type StatsService interface {
	Dashboard(ctx context.Context, profileID int64) (*models.DashboardSummary, error)
	CategoryBreakdown(ctx context.Context, profileID int64) ([]models.CategoryAccuracy, error)
	Activity(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	// RefreshProfileStats rebuilds the cached summary; called from the worker
	// pool after completions (implements worker.StatsRefresher).
	RefreshProfileStats(ctx context.Context, profileID int64) error
}

type statsService struct {
	profileRepo  repository.ProfileRepository
	progressRepo repository.ProgressRepository
	badgeRepo    repository.BadgeRepository
	eventRepo    repository.EventRepository

	mu    sync.RWMutex
	cache map[int64]models.DashboardSummary
}

// NewStatsService creates a new StatsService
func NewStatsService(profileRepo repository.ProfileRepository, progressRepo repository.ProgressRepository, badgeRepo repository.BadgeRepository, eventRepo repository.EventRepository) StatsService {
	return &statsService{
		profileRepo:  profileRepo,
		progressRepo: progressRepo,
		badgeRepo:    badgeRepo,
		eventRepo:    eventRepo,
		cache:        make(map[int64]models.DashboardSummary),
	}
}

func (s *statsService) Dashboard(ctx context.Context, profileID int64) (*models.DashboardSummary, error) {
	s.mu.RLock()
	cached, ok := s.cache[profileID]
	s.mu.RUnlock()
	if ok {
		return &cached, nil
	}

	summary, err := s.computeSummary(ctx, profileID)
	if err != nil {
		return nil, err
	}
	s.store(profileID, *summary)
	return summary, nil
}

func (s *statsService) RefreshProfileStats(ctx context.Context, profileID int64) error {
	log := logger.FromContext(ctx)

	summary, err := s.computeSummary(ctx, profileID)
	if err != nil {
		log.Warn("stats refresh failed for profile %d: %v", profileID, err)
		return err
	}
	s.store(profileID, *summary)
	log.Debug("dashboard cache refreshed: profile_id=%d", profileID)
	return nil
}

func (s *statsService) store(profileID int64, summary models.DashboardSummary) {
	s.mu.Lock()
	s.cache[profileID] = summary
	s.mu.Unlock()
}

func (s *statsService) computeSummary(ctx context.Context, profileID int64) (*models.DashboardSummary, error) {
	profile, err := s.profileRepo.Get(ctx, profileID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", profileID)
	}

	summary := models.DashboardSummary{
		ProfileName: profile.Name,
		SkillLevel:  1,
		CurrentTier: models.TierEasy,
	}

	progress, err := s.progressRepo.Get(ctx, profileID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if progress != nil {
		summary.SolvedCount = progress.SolvedCount
		summary.AttemptedCount = progress.AttemptedCount
		summary.SkillLevel = progress.SkillLevel
		summary.CurrentTier = progress.Difficulty.Tier
		if summary.AttemptedCount > 0 {
			summary.OverallAccuracy = float64(summary.SolvedCount) / float64(summary.AttemptedCount)
		}
	}

	badgeCount, err := s.badgeRepo.Count(ctx, profileID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	summary.BadgeCount = badgeCount
	return &summary, nil
}

func (s *statsService) CategoryBreakdown(ctx context.Context, profileID int64) ([]models.CategoryAccuracy, error) {
	stats, err := s.progressRepo.CategoryStats(ctx, profileID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	out := make([]models.CategoryAccuracy, 0, len(stats))
	for _, st := range stats {
		row := models.CategoryAccuracy{
			Category:  st.Category,
			Attempted: st.Attempted,
			Correct:   st.Correct,
		}
		if st.Attempted > 0 {
			row.Accuracy = float64(st.Correct) / float64(st.Attempted)
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *statsService) Activity(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return events, nil
}
