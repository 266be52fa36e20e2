package puzzle_test

import (
	"encoding/json"
	"testing"

	"github.com/lucasb/storyquest/internal/models"
	"github.com/lucasb/storyquest/internal/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches_ScalarCaseAndWhitespace(t *testing.T) {
	expected := models.ScalarAnswer("hat")

	assert.True(t, puzzle.Matches(expected, models.ScalarAnswer("Hat ")))
	assert.True(t, puzzle.Matches(expected, models.ScalarAnswer("  HAT")))
	assert.False(t, puzzle.Matches(expected, models.ScalarAnswer("cap")))
}

func TestMatches_ScalarNumeric(t *testing.T) {
	expected := models.ScalarAnswer("23")

	assert.True(t, puzzle.Matches(expected, models.ScalarAnswer("23")))
	assert.True(t, puzzle.Matches(expected, models.ScalarAnswer(" 23.0 ")))
	assert.False(t, puzzle.Matches(expected, models.ScalarAnswer("25")))
	// Non-numeric input against a numeric answer is incorrect, not an error.
	assert.False(t, puzzle.Matches(expected, models.ScalarAnswer("twenty-three")))
}

func TestMatches_SequenceOrderMatters(t *testing.T) {
	expected := models.SequenceAnswer("The", "wizard", "reads", "magic", "book")

	assert.True(t, puzzle.Matches(expected, models.SequenceAnswer("the", "Wizard", "reads", "magic", "book")))
	assert.False(t, puzzle.Matches(expected, models.SequenceAnswer("wizard", "The", "reads", "magic", "book")),
		"reordered sequence must not match")
	assert.False(t, puzzle.Matches(expected, models.SequenceAnswer("The", "wizard", "reads", "magic")),
		"shorter sequence must not match")
	assert.False(t, puzzle.Matches(expected, models.SequenceAnswer("The", "wizard", "reads", "magic", "book", "now")),
		"longer sequence must not match")
}

func TestMatches_MappingExactKeySet(t *testing.T) {
	expected := models.MappingAnswer(map[string]string{
		"sun":  "star",
		"moon": "satellite",
	})

	assert.True(t, puzzle.Matches(expected, models.MappingAnswer(map[string]string{
		"sun":  "Star ",
		"moon": "SATELLITE",
	})))

	assert.False(t, puzzle.Matches(expected, models.MappingAnswer(map[string]string{
		"sun": "star",
	})), "missing key must be rejected even when present keys match")

	assert.False(t, puzzle.Matches(expected, models.MappingAnswer(map[string]string{
		"sun":   "star",
		"moon":  "satellite",
		"earth": "planet",
	})), "extra key must be rejected")

	assert.False(t, puzzle.Matches(expected, models.MappingAnswer(map[string]string{
		"sun":  "star",
		"mars": "satellite",
	})), "wrong key must be rejected")
}

func TestMatches_CrossShapeFailsClosed(t *testing.T) {
	scalar := models.ScalarAnswer("hat")
	seq := models.SequenceAnswer("hat")
	mapping := models.MappingAnswer(map[string]string{"a": "hat"})

	assert.False(t, puzzle.Matches(scalar, seq))
	assert.False(t, puzzle.Matches(scalar, mapping))
	assert.False(t, puzzle.Matches(seq, scalar))
	assert.False(t, puzzle.Matches(seq, mapping))
	assert.False(t, puzzle.Matches(mapping, scalar))
	assert.False(t, puzzle.Matches(mapping, seq))
}

func TestAnswer_UnmarshalShapes(t *testing.T) {
	tests := []struct {
		name string
		json string
		want models.Answer
	}{
		{
			name: "number",
			json: `23`,
			want: models.ScalarAnswer("23"),
		},
		{
			name: "string",
			json: `"hat"`,
			want: models.ScalarAnswer("hat"),
		},
		{
			name: "sequence",
			json: `["The", "wizard", 3]`,
			want: models.SequenceAnswer("The", "wizard", "3"),
		},
		{
			name: "mapping",
			json: `{"sun": "star", "count": 4}`,
			want: models.MappingAnswer(map[string]string{"sun": "star", "count": "4"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.Answer
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswer_UnmarshalNestedShapeRejected(t *testing.T) {
	var got models.Answer
	err := json.Unmarshal([]byte(`[["nested"]]`), &got)
	assert.Error(t, err)
}

func TestAnswer_Display(t *testing.T) {
	assert.Equal(t, "23", models.ScalarAnswer("23").Display())
	assert.Equal(t, "The wizard reads", models.SequenceAnswer("The", "wizard", "reads").Display())
	assert.Equal(t, "moon = satellite, sun = star", models.MappingAnswer(map[string]string{
		"sun":  "star",
		"moon": "satellite",
	}).Display())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hat", puzzle.Normalize("  HaT "))
	assert.Equal(t, "", puzzle.Normalize("   "))
}
