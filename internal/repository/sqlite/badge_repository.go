package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/models"
	"github.com/lucasb/storyquest/internal/repository"
)

type badgeRepository struct {
	db *sql.DB
}

// NewBadgeRepository creates a new BadgeRepository implementation
func NewBadgeRepository(db *sql.DB) repository.BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) List(ctx context.Context, profileID int64) ([]models.Badge, error) {
	log := logger.FromContext(ctx).WithPrefix("badge_repo")
	log.Debug("listing badges: profile_id=%d", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT code, title, earned_at
FROM badges
WHERE profile_id = ?
ORDER BY earned_at ASC
`, profileID)
	if err != nil {
		log.Error("failed to list badges: %v", err)
		return nil, err
	}
	defer rows.Close()

	var badges []models.Badge
	for rows.Next() {
		var b models.Badge
		if err := rows.Scan(&b.Code, &b.Title, &b.EarnedAt); err != nil {
			log.Error("failed to scan badge row: %v", err)
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

func (r *badgeRepository) Award(ctx context.Context, profileID int64, badge models.Badge) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("badge_repo")
	log.Debug("awarding badge: profile_id=%d, code=%s", profileID, badge.Code)

	earnedAt := badge.EarnedAt
	if earnedAt.IsZero() {
		earnedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO badges (profile_id, code, title, earned_at)
VALUES (?, ?, ?, ?)
`, profileID, badge.Code, badge.Title, earnedAt)
	if err != nil {
		log.Error("failed to award badge: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		log.Info("badge earned: profile_id=%d, code=%s", profileID, badge.Code)
	}
	return n > 0, nil
}

func (r *badgeRepository) Count(ctx context.Context, profileID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("badge_repo")

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM badges WHERE profile_id = ?`, profileID).Scan(&n)
	if err != nil {
		log.Error("failed to count badges: %v", err)
		return 0, err
	}
	return n, nil
}
