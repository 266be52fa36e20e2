package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// AnswerKind tags the shape of an Answer.
type AnswerKind int

const (
	AnswerScalar AnswerKind = iota
	AnswerSequence
	AnswerMapping
)

func (k AnswerKind) String() string {
	switch k {
	case AnswerScalar:
		return "scalar"
	case AnswerSequence:
		return "sequence"
	case AnswerMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Answer is a tagged union over the three answer shapes a puzzle can carry:
// a scalar (number or word), an ordered sequence, or a key/value mapping.
// Content packs and submissions both decode into this type; which variant
// is populated is determined by the JSON shape, not by the caller.
type Answer struct {
	Kind     AnswerKind
	Scalar   string
	Sequence []string
	Mapping  map[string]string
}

// ScalarAnswer builds a scalar Answer.
func ScalarAnswer(v string) Answer {
	return Answer{Kind: AnswerScalar, Scalar: v}
}

// SequenceAnswer builds an ordered-sequence Answer.
func SequenceAnswer(vs ...string) Answer {
	return Answer{Kind: AnswerSequence, Sequence: vs}
}

// MappingAnswer builds a mapping Answer.
func MappingAnswer(m map[string]string) Answer {
	return Answer{Kind: AnswerMapping, Mapping: m}
}

// IsZero reports whether the answer was never set (no JSON value decoded).
func (a Answer) IsZero() bool {
	return a.Kind == AnswerScalar && a.Scalar == "" && a.Sequence == nil && a.Mapping == nil
}

// UnmarshalJSON decodes any of the three supported JSON shapes. Numbers keep
// their decimal text form so 23 and 23.0 compare by value later.
func (a *Answer) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	return a.fromValue(raw)
}

func (a *Answer) fromValue(raw any) error {
	switch v := raw.(type) {
	case string:
		*a = ScalarAnswer(v)
	case json.Number:
		*a = ScalarAnswer(v.String())
	case bool:
		*a = ScalarAnswer(fmt.Sprintf("%t", v))
	case []any:
		seq := make([]string, 0, len(v))
		for _, el := range v {
			s, err := scalarText(el)
			if err != nil {
				return fmt.Errorf("sequence element: %w", err)
			}
			seq = append(seq, s)
		}
		*a = SequenceAnswer(seq...)
	case map[string]any:
		m := make(map[string]string, len(v))
		for k, el := range v {
			s, err := scalarText(el)
			if err != nil {
				return fmt.Errorf("mapping value for %q: %w", k, err)
			}
			m[k] = s
		}
		*a = MappingAnswer(m)
	case nil:
		*a = Answer{}
	default:
		return fmt.Errorf("unsupported answer shape %T", raw)
	}
	return nil
}

func scalarText(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return fmt.Sprintf("%t", v), nil
	default:
		return "", fmt.Errorf("expected string or number, got %T", raw)
	}
}

// MarshalJSON encodes the populated variant back into its natural JSON shape.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerSequence:
		return json.Marshal(a.Sequence)
	case AnswerMapping:
		return json.Marshal(a.Mapping)
	default:
		return json.Marshal(a.Scalar)
	}
}

// Display renders the answer for user-facing feedback, e.g. the reveal shown
// after an exhausted puzzle.
func (a Answer) Display() string {
	switch a.Kind {
	case AnswerSequence:
		return strings.Join(a.Sequence, " ")
	case AnswerMapping:
		keys := make([]string, 0, len(a.Mapping))
		for k := range a.Mapping {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+" = "+a.Mapping[k])
		}
		return strings.Join(parts, ", ")
	default:
		return a.Scalar
	}
}
