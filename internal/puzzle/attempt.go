package puzzle

import (
	"errors"
	"time"

	"github.com/lucasb/storyquest/internal/models"
)

// Status is the lifecycle state of one puzzle-solving session.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusSolved
	StatusExhausted
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusInProgress:
		return "in_progress"
	case StatusSolved:
		return "solved"
	case StatusExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

var (
	// ErrNotStarted is returned when an answer is submitted before Begin.
	ErrNotStarted = errors.New("puzzle attempt not started")
	// ErrFinished is returned when an answer is submitted to a terminal attempt.
	ErrFinished = errors.New("puzzle attempt already finished")
)

// Attempt tracks one play-through of one puzzle: attempt count, hints
// revealed, timing and completion. It is discarded when the player navigates
// away; only aggregate stats outlive it.
type Attempt struct {
	puzzle      models.Puzzle
	maxAttempts int
	attempts    int
	hintsShown  int
	startedAt   time.Time
	finishedAt  time.Time
	status      Status
	correct     bool

	now func() time.Time
}

// SubmitResult is the outcome of one answer submission.
type SubmitResult struct {
	Correct           bool
	AttemptsRemaining int
	Exhausted         bool
}

// NewAttempt creates an Attempt in the NotStarted state.
func NewAttempt(p models.Puzzle, maxAttempts int) *Attempt {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Attempt{
		puzzle:      p,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// SetClock overrides the time source. Tests use this to make elapsed time
// deterministic.
func (a *Attempt) SetClock(now func() time.Time) {
	a.now = now
}

// Begin resets counters, records the start time and moves to InProgress.
func (a *Attempt) Begin() {
	a.attempts = 0
	a.hintsShown = 0
	a.correct = false
	a.startedAt = a.now()
	a.finishedAt = time.Time{}
	a.status = StatusInProgress
}

// Submit records one answer submission. Correct answers move the attempt to
// Solved; a wrong answer on the last allowed attempt moves it to Exhausted.
// Submitting to a terminal attempt is an error, never a silent retry.
func (a *Attempt) Submit(submitted models.Answer) (SubmitResult, error) {
	switch a.status {
	case StatusNotStarted:
		return SubmitResult{}, ErrNotStarted
	case StatusSolved, StatusExhausted:
		return SubmitResult{}, ErrFinished
	}

	a.attempts++
	correct := Matches(a.puzzle.Answer, submitted)
	remaining := a.maxAttempts - a.attempts

	if correct {
		a.status = StatusSolved
		a.correct = true
		a.finishedAt = a.now()
		return SubmitResult{Correct: true, AttemptsRemaining: remaining}, nil
	}

	if remaining <= 0 {
		a.status = StatusExhausted
		a.finishedAt = a.now()
		return SubmitResult{AttemptsRemaining: 0, Exhausted: true}, nil
	}
	return SubmitResult{AttemptsRemaining: remaining}, nil
}

// NextHint reveals the next graduated hint. Once all hints are consumed it
// returns false with no error and no counter movement.
func (a *Attempt) NextHint() (string, bool) {
	if a.status != StatusInProgress {
		return "", false
	}
	if a.hintsShown >= len(a.puzzle.Hints) {
		return "", false
	}
	hint := a.puzzle.Hints[a.hintsShown]
	a.hintsShown++
	return hint, true
}

// Status returns the current lifecycle state.
func (a *Attempt) Status() Status { return a.status }

// Finished reports whether the attempt reached a terminal state.
func (a *Attempt) Finished() bool {
	return a.status == StatusSolved || a.status == StatusExhausted
}

// Correct reports whether the attempt ended with a correct answer.
func (a *Attempt) Correct() bool { return a.correct }

// Attempts returns the number of submissions made so far.
func (a *Attempt) Attempts() int { return a.attempts }

// AttemptsRemaining returns how many submissions are still allowed.
func (a *Attempt) AttemptsRemaining() int {
	r := a.maxAttempts - a.attempts
	if r < 0 {
		return 0
	}
	return r
}

// HintsShown returns how many hints have been revealed.
func (a *Attempt) HintsShown() int { return a.hintsShown }

// Puzzle returns the definition this attempt plays.
func (a *Attempt) Puzzle() models.Puzzle { return a.puzzle }

// Elapsed returns the time spent on the attempt. For finished attempts this
// is fixed at completion time.
func (a *Attempt) Elapsed() time.Duration {
	if a.startedAt.IsZero() {
		return 0
	}
	if !a.finishedAt.IsZero() {
		return a.finishedAt.Sub(a.startedAt)
	}
	return a.now().Sub(a.startedAt)
}

// Outcome converts a finished attempt into the record consumed by the
// adaptive difficulty tracker. The tier recorded is the tier the puzzle was
// played at.
func (a *Attempt) Outcome() models.Outcome {
	return models.Outcome{
		Correct:  a.correct,
		Attempts: a.attempts,
		Hints:    a.hintsShown,
		Elapsed:  a.Elapsed(),
		Tier:     a.puzzle.Tier,
	}
}
