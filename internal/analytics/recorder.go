package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/models"
	"github.com/lucasb/storyquest/internal/repository"
	"github.com/lucasb/storyquest/internal/worker"
)

// Event types emitted by gameplay.
const (
	EventSceneEntered    = "scene_entered"
	EventPuzzleStarted   = "puzzle_started"
	EventAnswerSubmitted = "answer_submitted"
	EventHintUsed        = "hint_used"
	EventPuzzleSolved    = "puzzle_solved"
	EventPuzzleExhausted = "puzzle_exhausted"
	EventTierChanged     = "tier_changed"
	EventBadgeEarned     = "badge_earned"
)

// Recorder accepts gameplay events. Implementations must be safe to call
// from request handlers and must not block on storage.
type Recorder interface {
	Record(ctx context.Context, profileID int64, eventType string, payload any)
}

type poolRecorder struct {
	pool      *worker.Pool
	eventRepo repository.EventRepository
	log       *logger.Logger
}

// NewRecorder returns a Recorder that persists events through the worker pool.
func NewRecorder(pool *worker.Pool, eventRepo repository.EventRepository) Recorder {
	return &poolRecorder{
		pool:      pool,
		eventRepo: eventRepo,
		log:       logger.Default().WithPrefix("analytics"),
	}
}

func (r *poolRecorder) Record(ctx context.Context, profileID int64, eventType string, payload any) {
	body := "{}"
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			r.log.Warn("failed to marshal %s payload, recording empty: %v", eventType, err)
		} else {
			body = string(raw)
		}
	}

	r.pool.Submit(&worker.RecordEventJob{
		EventRepo: r.eventRepo,
		Event: models.Event{
			ProfileID: profileID,
			Type:      eventType,
			Payload:   body,
			CreatedAt: time.Now().UTC(),
		},
	})
}

type noopRecorder struct{}

// NewNoopRecorder returns a Recorder that discards everything. Used in tests
// and when analytics is disabled.
func NewNoopRecorder() Recorder { return noopRecorder{} }

func (noopRecorder) Record(context.Context, int64, string, any) {}
