package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/models"
	"github.com/lucasb/storyquest/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, name string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("creating profile: name=%s", name)

	var p models.Profile
	err := r.db.QueryRowContext(ctx, `
INSERT INTO profiles (name)
VALUES (?)
ON CONFLICT(name) DO UPDATE SET name = excluded.name
RETURNING id, name, created_at
`, name).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		log.Error("failed to create profile: %v", err)
		return nil, err
	}
	log.Debug("profile ready: id=%d", p.ID)
	return &p, nil
}

func (r *profileRepository) Get(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: id=%d", id)

	var p models.Profile
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, created_at
FROM profiles
WHERE id = ?
`, id).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("listing profiles")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, created_at
FROM profiles
ORDER BY created_at ASC
`)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			log.Error("failed to scan profile row: %v", err)
			return nil, err
		}
		profiles = append(profiles, p)
	}

	log.Debug("found %d profiles", len(profiles))
	return profiles, rows.Err()
}

func (r *profileRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("deleting profile and related data: id=%d", id)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		// Delete dependents first so the delete works even with FKs off.
		for _, stmt := range []string{
			`DELETE FROM events WHERE profile_id = ?`,
			`DELETE FROM badges WHERE profile_id = ?`,
			`DELETE FROM category_stats WHERE profile_id = ?`,
			`DELETE FROM progress WHERE profile_id = ?`,
			`DELETE FROM profiles WHERE id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				log.Error("failed to delete profile %d data: %v", id, err)
				return err
			}
		}
		log.Debug("profile %d deleted with cascading data", id)
		return nil
	})
}
