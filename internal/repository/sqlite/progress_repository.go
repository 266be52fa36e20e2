package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/models"
	"github.com/lucasb/storyquest/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, profileID int64) (*models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: profile_id=%d", profileID)

	var (
		p        models.Progress
		diffJSON string
	)
	err := r.db.QueryRowContext(ctx, `
SELECT profile_id, current_scene, solved_count, attempted_count, skill_level, first_try_streak, difficulty_state, updated_at
FROM progress
WHERE profile_id = ?
`, profileID).Scan(&p.ProfileID, &p.CurrentScene, &p.SolvedCount, &p.AttemptedCount, &p.SkillLevel, &p.FirstTryStreak, &diffJSON, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no save data yet: profile_id=%d", profileID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}

	if diffJSON != "" && diffJSON != "{}" {
		if err := json.Unmarshal([]byte(diffJSON), &p.Difficulty); err != nil {
			// A corrupt snapshot must not brick the save. Start the tracker
			// fresh and keep the counters.
			log.Warn("corrupt difficulty state for profile %d, resetting: %v", profileID, err)
			p.Difficulty = models.DifficultyState{Tier: models.TierEasy}
		}
	}
	if p.Difficulty.Tier == "" {
		p.Difficulty.Tier = models.TierEasy
	}
	return &p, nil
}

func (r *progressRepository) Save(ctx context.Context, progress models.Progress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("saving progress: profile_id=%d, solved=%d, attempted=%d",
		progress.ProfileID, progress.SolvedCount, progress.AttemptedCount)

	diffJSON, err := json.Marshal(progress.Difficulty)
	if err != nil {
		log.Error("failed to marshal difficulty state: %v", err)
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO progress (profile_id, current_scene, solved_count, attempted_count, skill_level, first_try_streak, difficulty_state, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(profile_id) DO UPDATE SET
    current_scene = excluded.current_scene,
    solved_count = excluded.solved_count,
    attempted_count = excluded.attempted_count,
    skill_level = excluded.skill_level,
    first_try_streak = excluded.first_try_streak,
    difficulty_state = excluded.difficulty_state,
    updated_at = excluded.updated_at
`, progress.ProfileID, progress.CurrentScene, progress.SolvedCount, progress.AttemptedCount,
		progress.SkillLevel, progress.FirstTryStreak, string(diffJSON), time.Now().UTC())
	if err != nil {
		log.Error("failed to save progress: %v", err)
	}
	return err
}

func (r *progressRepository) CategoryStats(ctx context.Context, profileID int64) ([]models.CategoryStat, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting category stats: profile_id=%d", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT category, attempted, correct
FROM category_stats
WHERE profile_id = ?
ORDER BY category ASC
`, profileID)
	if err != nil {
		log.Error("failed to get category stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.CategoryStat
	for rows.Next() {
		var s models.CategoryStat
		if err := rows.Scan(&s.Category, &s.Attempted, &s.Correct); err != nil {
			log.Error("failed to scan category stat row: %v", err)
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *progressRepository) BumpCategory(ctx context.Context, profileID int64, category models.Category, correct bool) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("bumping category stats: profile_id=%d, category=%s, correct=%v", profileID, category, correct)

	correctDelta := 0
	if correct {
		correctDelta = 1
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO category_stats (profile_id, category, attempted, correct)
VALUES (?, ?, 1, ?)
ON CONFLICT(profile_id, category) DO UPDATE SET
    attempted = attempted + 1,
    correct = correct + excluded.correct
`, profileID, category, correctDelta)
	if err != nil {
		log.Error("failed to bump category stats: %v", err)
	}
	return err
}

func (r *progressRepository) Reset(ctx context.Context, profileID int64) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Info("resetting save data: profile_id=%d", profileID)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM progress WHERE profile_id = ?`,
			`DELETE FROM category_stats WHERE profile_id = ?`,
			`DELETE FROM badges WHERE profile_id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, profileID); err != nil {
				log.Error("failed to reset data for profile %d: %v", profileID, err)
				return err
			}
		}
		return nil
	})
}
