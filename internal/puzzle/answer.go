package puzzle

import (
	"strconv"
	"strings"

	"github.com/lucasb/storyquest/internal/models"
)

// Normalize canonicalizes a scalar answer value for comparison: surrounding
// whitespace is trimmed and case is folded.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// scalarsEqual compares two scalar values after normalization. Values that
// both parse as numbers compare by numeric value, so "23" matches "23.0".
// A non-numeric submission against a numeric answer is simply unequal.
func scalarsEqual(expected, submitted string) bool {
	e, s := Normalize(expected), Normalize(submitted)
	if e == s {
		return true
	}
	ef, eerr := strconv.ParseFloat(e, 64)
	sf, serr := strconv.ParseFloat(s, 64)
	return eerr == nil && serr == nil && ef == sf
}

// Matches reports whether submitted matches expected under expected's shape.
// Comparing across shapes fails closed: it returns false, never panics.
func Matches(expected, submitted models.Answer) bool {
	if expected.Kind != submitted.Kind {
		return false
	}

	switch expected.Kind {
	case models.AnswerScalar:
		return scalarsEqual(expected.Scalar, submitted.Scalar)

	case models.AnswerSequence:
		// Position matters: no reordering, lengths must match.
		if len(expected.Sequence) != len(submitted.Sequence) {
			return false
		}
		for i, want := range expected.Sequence {
			if !scalarsEqual(want, submitted.Sequence[i]) {
				return false
			}
		}
		return true

	case models.AnswerMapping:
		// Exact key set: no extra or missing keys tolerated.
		if len(expected.Mapping) != len(submitted.Mapping) {
			return false
		}
		for key, want := range expected.Mapping {
			got, ok := submitted.Mapping[key]
			if !ok || !scalarsEqual(want, got) {
				return false
			}
		}
		return true
	}
	return false
}
