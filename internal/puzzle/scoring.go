package puzzle

import (
	"math"
	"time"

	"github.com/lucasb/storyquest/internal/models"
)

const (
	baseReward    = 2
	firstTryBonus = 1
	speedBonus    = 1

	// speedThreshold is how fast a first-attempt solve must be to earn the
	// speed bonus.
	speedThreshold = 30 * time.Second
)

// tierMultiplier scales rewards by difficulty. Monotonically non-decreasing
// with tier.
var tierMultiplier = map[models.Tier]float64{
	models.TierEasy:   1.0,
	models.TierMedium: 1.2,
	models.TierHard:   1.5,
	models.TierExpert: 1.8,
}

// Score maps a finished attempt to a star reward. Incorrect (exhausted)
// attempts score 0; any correct solve scores at least 1.
func Score(attempts, hints int, elapsed time.Duration, tier models.Tier, correct bool) int {
	if !correct {
		return 0
	}

	reward := float64(baseReward)
	if attempts == 1 && hints == 0 {
		reward += firstTryBonus
	}
	if attempts == 1 && elapsed <= speedThreshold {
		reward += speedBonus
	}

	mult, ok := tierMultiplier[tier]
	if !ok {
		mult = 1.0
	}

	stars := int(math.Round(reward * mult))
	if stars < 1 {
		stars = 1
	}
	return stars
}
