package worker

import (
	"context"

	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/models"
	"github.com/lucasb/storyquest/internal/repository"
)

// RecordEventJob writes one analytics event off the request path.
type RecordEventJob struct {
	EventRepo repository.EventRepository
	Event     models.Event
}

func (j *RecordEventJob) Name() string { return "record_event" }

func (j *RecordEventJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("type", j.Event.Type)
	id, err := j.EventRepo.Insert(ctx, j.Event)
	if err != nil {
		return err
	}
	log.Debug("event recorded: id=%d, profile_id=%d", id, j.Event.ProfileID)
	return nil
}

// StatsRefresher recomputes cached dashboard aggregates for one profile.
// Implemented by services.StatsService; defined here to avoid an import
// cycle.
type StatsRefresher interface {
	RefreshProfileStats(ctx context.Context, profileID int64) error
}

// RefreshStatsJob rebuilds the dashboard cache after a completed puzzle.
type RefreshStatsJob struct {
	Stats     StatsRefresher
	ProfileID int64
}

func (j *RefreshStatsJob) Name() string { return "refresh_stats" }

func (j *RefreshStatsJob) Run(ctx context.Context) error {
	return j.Stats.RefreshProfileStats(ctx, j.ProfileID)
}
