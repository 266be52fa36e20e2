package models

import "time"

// Outcome is one completed puzzle's record, used by the adaptive difficulty
// tracker.
type Outcome struct {
	Correct  bool          `json:"correct"`
	Attempts int           `json:"attempts"`
	Hints    int           `json:"hints"`
	Elapsed  time.Duration `json:"elapsed"`
	Tier     Tier          `json:"tier"`
}

// DifficultyState is the tracker snapshot persisted with the save data.
type DifficultyState struct {
	Tier    Tier      `json:"tier"`
	History []Outcome `json:"history"`
}

// Progress holds the aggregate save data for one profile. Only summary
// counters are stored; in-progress puzzle attempts are never persisted.
type Progress struct {
	ProfileID      int64           `json:"profile_id"`
	CurrentScene   string          `json:"current_scene"`
	SolvedCount    int             `json:"solved_count"`
	AttemptedCount int             `json:"attempted_count"`
	SkillLevel     int             `json:"skill_level"`
	FirstTryStreak int             `json:"first_try_streak"`
	Difficulty     DifficultyState `json:"difficulty"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CategoryStat is the per-category attempted/correct counter pair.
type CategoryStat struct {
	Category  Category `json:"category"`
	Attempted int      `json:"attempted"`
	Correct   int      `json:"correct"`
}

// Badge is an earned achievement.
type Badge struct {
	Code     string    `json:"code"`
	Title    string    `json:"title"`
	EarnedAt time.Time `json:"earned_at"`
}

// Event is one analytics record.
type Event struct {
	ID        int64     `json:"id"`
	ProfileID int64     `json:"profile_id"`
	Type      string    `json:"type"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// EventFilter narrows event queries for the dashboard activity feed.
type EventFilter struct {
	ProfileID int64
	Type      string
	Since     *time.Time
	Limit     int
	Offset    int
}

// CategoryAccuracy is a dashboard row: accuracy within one category.
type CategoryAccuracy struct {
	Category  Category `json:"category"`
	Attempted int      `json:"attempted"`
	Correct   int      `json:"correct"`
	Accuracy  float64  `json:"accuracy"`
}

// DashboardSummary is the parent dashboard headline block.
type DashboardSummary struct {
	ProfileName     string  `json:"profile_name"`
	SolvedCount     int     `json:"solved_count"`
	AttemptedCount  int     `json:"attempted_count"`
	SkillLevel      int     `json:"skill_level"`
	CurrentTier     Tier    `json:"current_tier"`
	BadgeCount      int     `json:"badge_count"`
	OverallAccuracy float64 `json:"overall_accuracy"`
}
