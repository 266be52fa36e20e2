package api

import (
	"github.com/lucasb/storyquest/internal/db"
	"github.com/lucasb/storyquest/internal/services"
)

// Server holds the HTTP layer's dependencies. All endpoints speak JSON.
type Server struct {
	Profiles services.ProfileService
	Story    services.StoryService
	Puzzles  services.PuzzleService
	Progress services.ProgressService
	Badges   services.BadgeService
	Stats    services.StatsService
	DB       *db.DB
}
