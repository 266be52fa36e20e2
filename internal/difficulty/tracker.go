package difficulty

import (
	"github.com/lucasb/storyquest/internal/models"
)

const (
	// HistoryCap bounds the outcome ring buffer.
	HistoryCap = 20

	// minSamples is how many outcomes must exist before evaluation acts; it
	// is also the size of the window evaluation looks at.
	minSamples = 3

	raiseSuccessRate = 0.8
	raiseEfficiency  = 0.6
	lowerSuccessRate = 0.4
	lowerEfficiency  = 0.3
)

// Direction of a tier change.
type Direction string

const (
	Raised  Direction = "raised"
	Lowered Direction = "lowered"
)

// Change is the tier-change notification emitted to the presentation layer.
type Change struct {
	Direction Direction   `json:"direction"`
	From      models.Tier `json:"from"`
	To        models.Tier `json:"to"`
}

// Tracker keeps a rolling window of puzzle outcomes and nudges the
// difficulty tier one step at a time based on recent performance.
type Tracker struct {
	tier    models.Tier
	history []models.Outcome
	notify  func(Change)

	// pending is set when an outcome arrives and cleared by Evaluate, so the
	// same window is never acted on twice.
	pending bool
}

// New creates a Tracker starting at the given tier with an empty history.
// notify may be nil.
func New(start models.Tier, notify func(Change)) *Tracker {
	if _, ok := models.ParseTier(string(start)); !ok {
		start = models.TierEasy
	}
	return &Tracker{tier: start, notify: notify}
}

// Restore rebuilds a Tracker from a persisted snapshot. An empty snapshot
// (fresh profile, failed prior save) yields a valid tracker at easy.
func Restore(state models.DifficultyState, notify func(Change)) *Tracker {
	t := New(state.Tier, notify)
	for _, o := range state.History {
		t.Record(o)
	}
	t.pending = false
	return t
}

// Record appends an outcome to the history. Append-then-trim: the newest
// entry is always retained, the oldest evicted past capacity.
func (t *Tracker) Record(o models.Outcome) {
	t.history = append(t.history, o)
	if len(t.history) > HistoryCap {
		t.history = t.history[len(t.history)-HistoryCap:]
	}
	t.pending = true
}

// Evaluate inspects the most recent outcomes and moves the tier at most one
// step. It acts only when enough outcomes exist and at least one outcome was
// recorded since the previous evaluation; repeated strong performance needs
// repeated record/evaluate rounds to climb multiple steps.
func (t *Tracker) Evaluate() (Change, bool) {
	if !t.pending || len(t.history) < minSamples {
		return Change{}, false
	}
	t.pending = false

	window := t.history[len(t.history)-minSamples:]

	correct := 0
	effSum := 0.0
	for _, o := range window {
		if o.Correct {
			correct++
		}
		effSum += efficiency(o)
	}
	successRate := float64(correct) / float64(len(window))
	eff := effSum / float64(len(window))

	switch {
	case successRate > raiseSuccessRate && eff > raiseEfficiency:
		next := t.tier.Raise()
		if next == t.tier {
			return Change{}, false
		}
		change := Change{Direction: Raised, From: t.tier, To: next}
		t.tier = next
		t.emit(change)
		return change, true

	case successRate < lowerSuccessRate || eff < lowerEfficiency:
		next := t.tier.Lower()
		if next == t.tier {
			return Change{}, false
		}
		change := Change{Direction: Lowered, From: t.tier, To: next}
		t.tier = next
		t.emit(change)
		return change, true
	}
	return Change{}, false
}

// efficiency scores one outcome: a first-attempt no-hint solve is 1.0,
// extra attempts and hints pull it down, clamped at 0.
func efficiency(o models.Outcome) float64 {
	attempts := o.Attempts
	if attempts < 1 {
		attempts = 1
	}
	e := (1.0 / float64(attempts)) * (1.0 - 0.1*float64(o.Hints))
	if e < 0 {
		return 0
	}
	return e
}

func (t *Tracker) emit(c Change) {
	if t.notify != nil {
		t.notify(c)
	}
}

// RecommendedTier returns the tier the next puzzle should be served at.
func (t *Tracker) RecommendedTier() models.Tier { return t.tier }

// HistoryLen returns the number of outcomes currently retained.
func (t *Tracker) HistoryLen() int { return len(t.history) }

// Snapshot captures the tracker for the save system.
func (t *Tracker) Snapshot() models.DifficultyState {
	history := make([]models.Outcome, len(t.history))
	copy(history, t.history)
	return models.DifficultyState{Tier: t.tier, History: history}
}
