package models

import "time"

type Profile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Category is the subject area of a puzzle.
type Category string

const (
	CategoryMath     Category = "math"
	CategoryLanguage Category = "language"
	CategoryScience  Category = "science"
)

// ParseCategory returns the Category for s, or false if unknown.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryMath, CategoryLanguage, CategoryScience:
		return Category(s), true
	}
	return "", false
}

// Tier is one of the four ordered difficulty levels.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
	TierExpert Tier = "expert"
)

var tierOrder = []Tier{TierEasy, TierMedium, TierHard, TierExpert}

// ParseTier returns the Tier for s, or false if unknown.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierEasy, TierMedium, TierHard, TierExpert:
		return Tier(s), true
	}
	return "", false
}

func (t Tier) index() int {
	for i, v := range tierOrder {
		if v == t {
			return i
		}
	}
	return 0
}

// Raise returns the next tier up, clamped at expert.
func (t Tier) Raise() Tier {
	i := t.index()
	if i >= len(tierOrder)-1 {
		return TierExpert
	}
	return tierOrder[i+1]
}

// Lower returns the next tier down, clamped at easy.
func (t Tier) Lower() Tier {
	i := t.index()
	if i <= 0 {
		return TierEasy
	}
	return tierOrder[i-1]
}
