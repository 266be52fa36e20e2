package services

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"github.com/lucasb/storyquest/internal/analytics"
	"github.com/lucasb/storyquest/internal/content"
	"github.com/lucasb/storyquest/internal/difficulty"
	"github.com/lucasb/storyquest/internal/errors"
	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/models"
	"github.com/lucasb/storyquest/internal/puzzle"
	"github.com/lucasb/storyquest/internal/worker"
)

// PuzzleService orchestrates puzzle play: starting attempts, running
// submissions through the state machine and scoring, feeding outcomes to the
// adaptive difficulty tracker, and routing back into the story.
type PuzzleService interface {
	LoadPuzzle(ctx context.Context, id string) (models.Puzzle, error)
	StartPuzzle(ctx context.Context, profileID int64, sceneID string) (*PuzzleView, error)
	NextPuzzle(ctx context.Context, profileID int64, category models.Category) (*PuzzleView, error)
	SubmitAnswer(ctx context.Context, sessionID string, answer models.Answer) (*SubmitView, error)
	RequestHint(ctx context.Context, sessionID string) (*HintView, error)
	Abandon(ctx context.Context, profileID int64)
}

// PuzzleView is what the player sees when a puzzle starts. The correct
// answer never leaves the server while the attempt is live.
type PuzzleView struct {
	SessionID         string          `json:"session_id"`
	PuzzleID          string          `json:"puzzle_id"`
	Category          models.Category `json:"category"`
	Tier              models.Tier     `json:"tier"`
	Question          string          `json:"question"`
	Options           []string        `json:"options,omitempty"`
	AttemptsRemaining int             `json:"attempts_remaining"`
	HintsAvailable    int             `json:"hints_available"`
}

// SubmitView is the outcome of one answer submission.
type SubmitView struct {
	Correct           bool               `json:"correct"`
	Status            string             `json:"status"`
	AttemptsRemaining int                `json:"attempts_remaining"`
	Score             int                `json:"score,omitempty"`
	Explanation       string             `json:"explanation,omitempty"`
	CorrectAnswer     string             `json:"correct_answer,omitempty"`
	NextScene         string             `json:"next_scene,omitempty"`
	TierChange        *difficulty.Change `json:"tier_change,omitempty"`
	Badges            []models.Badge     `json:"badges,omitempty"`
}

// HintView is the result of a hint request. Revealed is false once the
// graduated hint list is exhausted; that is not an error.
type HintView struct {
	Hint       string `json:"hint,omitempty"`
	Revealed   bool   `json:"revealed"`
	HintsShown int    `json:"hints_shown"`
}

// PuzzleServiceDeps wires the orchestrator's collaborators.
type PuzzleServiceDeps struct {
	Catalog     *content.Catalog
	Progress    ProgressService
	Badges      BadgeService
	Recorder    analytics.Recorder
	Pool        *worker.Pool
	Stats       worker.StatsRefresher
	MaxAttempts int
}

type puzzleService struct {
	catalog     *content.Catalog
	progress    ProgressService
	badges      BadgeService
	recorder    analytics.Recorder
	pool        *worker.Pool
	stats       worker.StatsRefresher
	maxAttempts int
	sessions    *sessionStore
}

// NewPuzzleService creates a new PuzzleService
func NewPuzzleService(deps PuzzleServiceDeps) PuzzleService {
	recorder := deps.Recorder
	if recorder == nil {
		recorder = analytics.NewNoopRecorder()
	}
	return &puzzleService{
		catalog:     deps.Catalog,
		progress:    deps.Progress,
		badges:      deps.Badges,
		recorder:    recorder,
		pool:        deps.Pool,
		stats:       deps.Stats,
		maxAttempts: deps.MaxAttempts,
		sessions:    newSessionStore(),
	}
}

// LoadPuzzle returns a validated puzzle definition. Definitions dropped at
// content load surface their validation error here.
func (s *puzzleService) LoadPuzzle(ctx context.Context, id string) (models.Puzzle, error) {
	return s.catalog.Puzzle(id)
}

func (s *puzzleService) StartPuzzle(ctx context.Context, profileID int64, sceneID string) (*PuzzleView, error) {
	log := logger.FromContext(ctx)

	scene, ok := s.catalog.Scene(sceneID)
	if !ok {
		return nil, errors.NewNotFoundError("scene", sceneID)
	}
	if scene.PuzzleID == "" {
		return nil, errors.NewBadRequestError("scene has no puzzle")
	}
	p, err := s.catalog.Puzzle(scene.PuzzleID)
	if err != nil {
		log.Warn("cannot start puzzle %s: %v", scene.PuzzleID, err)
		return nil, err
	}
	return s.begin(ctx, profileID, sceneID, p), nil
}

// NextPuzzle serves a free-play puzzle from a category at the tier the
// difficulty tracker currently recommends.
func (s *puzzleService) NextPuzzle(ctx context.Context, profileID int64, category models.Category) (*PuzzleView, error) {
	log := logger.FromContext(ctx)

	progress, err := s.progress.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	tracker := difficulty.Restore(progress.Difficulty, nil)
	tier := tracker.RecommendedTier()

	pool := s.catalog.PuzzlesFor(category, tier)
	if len(pool) == 0 {
		return nil, errors.NewNotFoundError("puzzle for category", category)
	}
	p := pool[rand.Intn(len(pool))]
	log.Debug("serving puzzle %s at tier %s (recommended %s)", p.ID, p.Tier, tier)
	return s.begin(ctx, profileID, "", p), nil
}

func (s *puzzleService) begin(ctx context.Context, profileID int64, sceneID string, p models.Puzzle) *PuzzleView {
	attempt := puzzle.NewAttempt(p, s.maxAttempts)
	attempt.Begin()

	sess := &session{
		id:        uuid.NewString(),
		profileID: profileID,
		sceneID:   sceneID,
		attempt:   attempt,
	}
	s.sessions.put(sess)

	s.recorder.Record(ctx, profileID, analytics.EventPuzzleStarted, map[string]any{
		"puzzle_id": p.ID,
		"tier":      p.Tier,
		"scene_id":  sceneID,
	})

	return &PuzzleView{
		SessionID:         sess.id,
		PuzzleID:          p.ID,
		Category:          p.Category,
		Tier:              p.Tier,
		Question:          p.Question,
		Options:           p.Options,
		AttemptsRemaining: attempt.AttemptsRemaining(),
		HintsAvailable:    len(p.Hints),
	}
}

func (s *puzzleService) SubmitAnswer(ctx context.Context, sessionID string, answer models.Answer) (*SubmitView, error) {
	log := logger.FromContext(ctx)

	sess, ok := s.sessions.get(sessionID)
	if !ok {
		// Finished sessions are removed, so a repeat submission after a
		// terminal state lands here.
		return nil, errors.NewNotFoundError("session", sessionID)
	}

	res, err := sess.attempt.Submit(answer)
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	s.recorder.Record(ctx, sess.profileID, analytics.EventAnswerSubmitted, map[string]any{
		"puzzle_id": sess.attempt.Puzzle().ID,
		"correct":   res.Correct,
		"attempt":   sess.attempt.Attempts(),
	})

	view := &SubmitView{
		Correct:           res.Correct,
		Status:            sess.attempt.Status().String(),
		AttemptsRemaining: res.AttemptsRemaining,
	}
	if !sess.attempt.Finished() {
		return view, nil
	}

	s.sessions.remove(sessionID)
	p := sess.attempt.Puzzle()
	outcome := sess.attempt.Outcome()

	view.Score = puzzle.Score(outcome.Attempts, outcome.Hints, outcome.Elapsed, outcome.Tier, outcome.Correct)
	view.Explanation = p.Explanation
	if !outcome.Correct {
		// Exhausted: reveal the canonical answer so the player can learn.
		view.CorrectAnswer = p.Answer.Display()
	}

	progress, err := s.progress.Load(ctx, sess.profileID)
	if err != nil {
		return nil, err
	}
	tracker := difficulty.Restore(progress.Difficulty, nil)
	tracker.Record(outcome)
	change, changed := tracker.Evaluate()
	if changed {
		view.TierChange = &change
		log.Info("difficulty %s: %s -> %s (profile_id=%d)", change.Direction, change.From, change.To, sess.profileID)
	}

	if sess.sceneID != "" {
		if scene, ok := s.catalog.Scene(sess.sceneID); ok {
			if outcome.Correct {
				view.NextScene = scene.OnSolved
			} else {
				view.NextScene = scene.OnExhausted
			}
		}
	}

	updated, err := s.progress.RecordCompletion(ctx, CompletionRecord{
		ProfileID:  sess.profileID,
		Category:   p.Category,
		Outcome:    outcome,
		Difficulty: tracker.Snapshot(),
		NextScene:  view.NextScene,
	})
	if err != nil {
		return nil, err
	}

	earned, err := s.badges.EvaluateAfterCompletion(ctx, sess.profileID, updated, outcome)
	if err != nil {
		log.Warn("badge evaluation failed: %v", err)
	}
	view.Badges = earned

	completionEvent := analytics.EventPuzzleExhausted
	if outcome.Correct {
		completionEvent = analytics.EventPuzzleSolved
	}
	s.recorder.Record(ctx, sess.profileID, completionEvent, map[string]any{
		"puzzle_id": p.ID,
		"tier":      outcome.Tier,
		"attempts":  outcome.Attempts,
		"hints":     outcome.Hints,
		"score":     view.Score,
	})
	if changed {
		s.recorder.Record(ctx, sess.profileID, analytics.EventTierChanged, map[string]any{
			"direction": change.Direction,
			"from":      change.From,
			"to":        change.To,
		})
	}
	for _, badge := range earned {
		s.recorder.Record(ctx, sess.profileID, analytics.EventBadgeEarned, map[string]any{
			"code": badge.Code,
		})
	}

	if s.pool != nil && s.stats != nil {
		s.pool.Submit(&worker.RefreshStatsJob{Stats: s.stats, ProfileID: sess.profileID})
	}
	return view, nil
}

func (s *puzzleService) RequestHint(ctx context.Context, sessionID string) (*HintView, error) {
	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return nil, errors.NewNotFoundError("session", sessionID)
	}

	hint, revealed := sess.attempt.NextHint()
	if revealed {
		s.recorder.Record(ctx, sess.profileID, analytics.EventHintUsed, map[string]any{
			"puzzle_id": sess.attempt.Puzzle().ID,
			"hint":      sess.attempt.HintsShown(),
		})
	}
	return &HintView{Hint: hint, Revealed: revealed, HintsShown: sess.attempt.HintsShown()}, nil
}

// Abandon discards a profile's live session, if any. Navigating away from a
// puzzle never persists partial attempts.
func (s *puzzleService) Abandon(ctx context.Context, profileID int64) {
	s.sessions.removeProfile(profileID)
}
