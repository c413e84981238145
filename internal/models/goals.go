package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// GoalValue is the target for one lift. goals.json accepts either a bare
// number or an object {"target": N, "short": "Bench"}.
type GoalValue struct {
	Target float64 `json:"target"`
	Short  string  `json:"short,omitempty"`
}

// UnmarshalJSON accepts both the bare-number and the structured form.
func (g *GoalValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*g = GoalValue{Target: n}
		return nil
	}
	type alias GoalValue
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("goal value must be a number or an object: %w", err)
	}
	*g = GoalValue(a)
	return nil
}

// MarshalJSON writes the bare-number form when no short name is set,
// round-tripping legacy files unchanged.
func (g GoalValue) MarshalJSON() ([]byte, error) {
	if g.Short == "" {
		return json.Marshal(g.Target)
	}
	type alias GoalValue
	return json.Marshal(alias(g))
}

// ShortName returns the display short name, falling back to the lift name.
func (g GoalValue) ShortName(liftName string) string {
	if g.Short != "" {
		return g.Short
	}
	return liftName
}

// GoalMap is an exercise-name → GoalValue mapping that preserves the key
// order of the source document. Order drives chart series and legend
// ordering, so losing it to map iteration is not acceptable.
type GoalMap struct {
	names  []string
	values map[string]GoalValue
}

// NewGoalMap builds a GoalMap from ordered (name, value) pairs.
func NewGoalMap(names []string, values map[string]GoalValue) GoalMap {
	return GoalMap{names: names, values: values}
}

// Names returns the lift names in document order. The returned slice is a copy.
func (m GoalMap) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Get returns the goal value for a lift.
func (m GoalMap) Get(name string) (GoalValue, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Len returns the number of tracked lifts.
func (m GoalMap) Len() int { return len(m.names) }

// UnmarshalJSON decodes an object while recording key order.
func (m *GoalMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("goals must be an object")
	}
	m.names = nil
	m.values = make(map[string]GoalValue)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var val GoalValue
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("goal %q: %w", key, err)
		}
		if _, dup := m.values[key]; !dup {
			m.names = append(m.names, key)
		}
		m.values[key] = val
	}
	_, err = dec.Token() // closing brace
	return err
}

// MarshalJSON writes the object with keys in document order.
func (m GoalMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// GoalEntry is one record in goals.json. The file is an ordered array; the
// last entry is the current goal set, earlier ones are history.
type GoalEntry struct {
	ID         string  `json:"id,omitempty"`
	DateSet    string  `json:"date_set"`
	TargetDate string  `json:"target_date"`
	Note       string  `json:"note,omitempty"`
	Goals      GoalMap `json:"goals"`
}

// Validate checks the fields required when appending a new goal entry.
func (e *GoalEntry) Validate() error {
	if e.Goals.Len() == 0 {
		return fmt.Errorf("%w: missing 'goals' field", ErrValidation)
	}
	if e.TargetDate == "" {
		return fmt.Errorf("%w: missing 'target_date' field", ErrValidation)
	}
	return nil
}

// ProgramDay is the prescription for one day label in a training program.
type ProgramDay struct {
	Exercises []Exercise `json:"exercises"`
}

// Program maps day labels (e.g. "A", "PUSH") to their prescriptions.
type Program struct {
	Days map[string]ProgramDay `json:"days"`
}
