package repository

import (
	"context"

	"github.com/lucasb/storyquest/internal/models"
)

// ProfileRepository handles kid-profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Create(ctx context.Context, name string) (*models.Profile, error)
	Delete(ctx context.Context, id int64) error
}

// ProgressRepository handles the aggregate save data. Get returns (nil, nil)
// for a profile with no save yet; callers start from a fresh state.
type ProgressRepository interface {
	Get(ctx context.Context, profileID int64) (*models.Progress, error)
	Save(ctx context.Context, progress models.Progress) error
	CategoryStats(ctx context.Context, profileID int64) ([]models.CategoryStat, error)
	BumpCategory(ctx context.Context, profileID int64, category models.Category, correct bool) error
	Reset(ctx context.Context, profileID int64) error
}

// BadgeRepository handles earned achievements
type BadgeRepository interface {
	List(ctx context.Context, profileID int64) ([]models.Badge, error)
	// Award stores a badge; it reports false when the badge was already
	// earned, so awards stay idempotent.
	Award(ctx context.Context, profileID int64, badge models.Badge) (bool, error)
	Count(ctx context.Context, profileID int64) (int, error)
}

// EventRepository handles analytics event storage
type EventRepository interface {
	Insert(ctx context.Context, event models.Event) (int64, error)
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	CountByType(ctx context.Context, profileID int64) (map[string]int, error)
}
