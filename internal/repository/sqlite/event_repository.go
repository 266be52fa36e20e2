package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/models"
	"github.com/lucasb/storyquest/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository implementation
func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Insert(ctx context.Context, event models.Event) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("event_repo")
	log.Debug("inserting event: profile_id=%d, type=%s", event.ProfileID, event.Type)

	payload := event.Payload
	if payload == "" {
		payload = "{}"
	}
	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO events (profile_id, type, payload, created_at)
VALUES (?, ?, ?, ?)
`, event.ProfileID, event.Type, payload, createdAt)
	if err != nil {
		log.Error("failed to insert event: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *eventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	log := logger.FromContext(ctx).WithPrefix("event_repo")
	log.Debug("listing events: profile_id=%d, type=%s", filter.ProfileID, filter.Type)

	query := sqlBuilder.Select("id", "profile_id", "type", "payload", "created_at").From("events")

	// Dynamic WHERE clauses
	if filter.ProfileID != 0 {
		query = query.Where(squirrel.Eq{"profile_id": filter.ProfileID})
	}
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"created_at": *filter.Since})
	}
	query = query.OrderBy("created_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build event query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list events: %v", err)
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Type, &e.Payload, &e.CreatedAt); err != nil {
			log.Error("failed to scan event row: %v", err)
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) CountByType(ctx context.Context, profileID int64) (map[string]int, error) {
	log := logger.FromContext(ctx).WithPrefix("event_repo")
	log.Debug("counting events by type: profile_id=%d", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT type, COUNT(*)
FROM events
WHERE profile_id = ?
GROUP BY type
`, profileID)
	if err != nil {
		log.Error("failed to count events: %v", err)
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			typ string
			n   int
		)
		if err := rows.Scan(&typ, &n); err != nil {
			log.Error("failed to scan event count row: %v", err)
			return nil, err
		}
		counts[typ] = n
	}
	return counts, rows.Err()
}
