package difficulty_test

import (
	"testing"
	"time"

	"github.com/lucasb/storyquest/internal/difficulty"
	"github.com/lucasb/storyquest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perfectOutcome(tier models.Tier) models.Outcome {
	return models.Outcome{
		Correct:  true,
		Attempts: 1,
		Hints:    0,
		Elapsed:  8 * time.Second,
		Tier:     tier,
	}
}

func failedOutcome(tier models.Tier) models.Outcome {
	return models.Outcome{
		Correct:  false,
		Attempts: 3,
		Hints:    2,
		Elapsed:  90 * time.Second,
		Tier:     tier,
	}
}

func TestTracker_RaisesAfterStrongWindow(t *testing.T) {
	var changes []difficulty.Change
	tr := difficulty.New(models.TierMedium, func(c difficulty.Change) {
		changes = append(changes, c)
	})

	for i := 0; i < 3; i++ {
		tr.Record(perfectOutcome(models.TierMedium))
	}

	change, moved := tr.Evaluate()
	require.True(t, moved)
	assert.Equal(t, difficulty.Raised, change.Direction)
	assert.Equal(t, models.TierMedium, change.From)
	assert.Equal(t, models.TierHard, change.To)
	assert.Equal(t, models.TierHard, tr.RecommendedTier())

	require.Len(t, changes, 1, "notification must fire once")
	assert.Equal(t, models.TierHard, changes[0].To)
}

func TestTracker_NoRepeatedRaiseWithoutNewOutcomes(t *testing.T) {
	tr := difficulty.New(models.TierMedium, nil)
	for i := 0; i < 3; i++ {
		tr.Record(perfectOutcome(models.TierMedium))
	}

	_, moved := tr.Evaluate()
	require.True(t, moved)

	_, moved = tr.Evaluate()
	assert.False(t, moved, "same window must not be acted on twice")
	assert.Equal(t, models.TierHard, tr.RecommendedTier())
}

func TestTracker_NoActionBelowMinimumSamples(t *testing.T) {
	tr := difficulty.New(models.TierMedium, nil)
	tr.Record(perfectOutcome(models.TierMedium))
	tr.Record(perfectOutcome(models.TierMedium))

	_, moved := tr.Evaluate()
	assert.False(t, moved)
	assert.Equal(t, models.TierMedium, tr.RecommendedTier())
}

func TestTracker_LowersAfterWeakWindow(t *testing.T) {
	tr := difficulty.New(models.TierHard, nil)
	for i := 0; i < 3; i++ {
		tr.Record(failedOutcome(models.TierHard))
	}

	change, moved := tr.Evaluate()
	require.True(t, moved)
	assert.Equal(t, difficulty.Lowered, change.Direction)
	assert.Equal(t, models.TierMedium, change.To)
}

func TestTracker_LowEfficiencyAloneLowers(t *testing.T) {
	tr := difficulty.New(models.TierMedium, nil)
	// Correct every time, but only on the last attempt with all hints:
	// success rate 1.0, efficiency ~ (1/3)*(0.8) = 0.27 < 0.3.
	for i := 0; i < 3; i++ {
		tr.Record(models.Outcome{
			Correct:  true,
			Attempts: 3,
			Hints:    2,
			Elapsed:  time.Minute,
			Tier:     models.TierMedium,
		})
	}

	change, moved := tr.Evaluate()
	require.True(t, moved)
	assert.Equal(t, difficulty.Lowered, change.Direction)
}

func TestTracker_SteadyPerformanceHolds(t *testing.T) {
	tr := difficulty.New(models.TierMedium, nil)
	// Success rate 2/3 with decent efficiency: inside the dead band.
	tr.Record(perfectOutcome(models.TierMedium))
	tr.Record(perfectOutcome(models.TierMedium))
	tr.Record(failedOutcome(models.TierMedium))

	_, moved := tr.Evaluate()
	assert.False(t, moved)
	assert.Equal(t, models.TierMedium, tr.RecommendedTier())
}

func TestTracker_ClampedAtExpert(t *testing.T) {
	tr := difficulty.New(models.TierExpert, nil)
	for i := 0; i < 3; i++ {
		tr.Record(perfectOutcome(models.TierExpert))
	}

	_, moved := tr.Evaluate()
	assert.False(t, moved)
	assert.Equal(t, models.TierExpert, tr.RecommendedTier())
}

func TestTracker_ClampedAtEasy(t *testing.T) {
	tr := difficulty.New(models.TierEasy, nil)
	for i := 0; i < 3; i++ {
		tr.Record(failedOutcome(models.TierEasy))
	}

	_, moved := tr.Evaluate()
	assert.False(t, moved)
	assert.Equal(t, models.TierEasy, tr.RecommendedTier())
}

func TestTracker_OneStepPerEvaluation(t *testing.T) {
	tr := difficulty.New(models.TierEasy, nil)

	for step, want := range []models.Tier{models.TierMedium, models.TierHard, models.TierExpert} {
		for i := 0; i < 3; i++ {
			tr.Record(perfectOutcome(tr.RecommendedTier()))
		}
		_, moved := tr.Evaluate()
		require.True(t, moved, "step %d", step)
		assert.Equal(t, want, tr.RecommendedTier())
	}
}

func TestTracker_HistoryRingBuffer(t *testing.T) {
	tr := difficulty.New(models.TierMedium, nil)

	for i := 0; i < 25; i++ {
		tr.Record(perfectOutcome(models.TierMedium))
	}
	assert.Equal(t, difficulty.HistoryCap, tr.HistoryLen())

	// The newest entry must be retained: record a distinctive failure and
	// check it dominates the evaluation window.
	tr.Record(failedOutcome(models.TierMedium))
	tr.Record(failedOutcome(models.TierMedium))
	tr.Record(failedOutcome(models.TierMedium))
	assert.Equal(t, difficulty.HistoryCap, tr.HistoryLen())

	change, moved := tr.Evaluate()
	require.True(t, moved)
	assert.Equal(t, difficulty.Lowered, change.Direction)
}

func TestTracker_SnapshotRestoreRoundTrip(t *testing.T) {
	tr := difficulty.New(models.TierMedium, nil)
	for i := 0; i < 3; i++ {
		tr.Record(perfectOutcome(models.TierMedium))
	}
	_, moved := tr.Evaluate()
	require.True(t, moved)

	snap := tr.Snapshot()
	restored := difficulty.Restore(snap, nil)

	assert.Equal(t, models.TierHard, restored.RecommendedTier())
	assert.Equal(t, tr.HistoryLen(), restored.HistoryLen())

	// A restored tracker must not re-fire on the old window.
	_, moved = restored.Evaluate()
	assert.False(t, moved)
}

func TestTracker_RestoreEmptyState(t *testing.T) {
	tr := difficulty.Restore(models.DifficultyState{}, nil)

	assert.Equal(t, models.TierEasy, tr.RecommendedTier())
	assert.Equal(t, 0, tr.HistoryLen())

	_, moved := tr.Evaluate()
	assert.False(t, moved)
}
