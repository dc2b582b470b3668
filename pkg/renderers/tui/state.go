package tui

import "strings"

// State tracks collected answers keyed by field id, remembering the order in
// which fields were answered so text output follows the schema.
type State struct {
	values map[string]any
	order  []string
}

// NewState seeds the state with prefilled values.
func NewState(prefill map[string]any) *State {
	return &State{values: cloneValues(prefill)}
}

// Values returns a copy of the collected answers.
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return cloneValues(s.values)
}

// Order lists answered field ids in prompt order.
func (s *State) Order() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Get returns the answer recorded for id.
func (s *State) Get(id string) (any, bool) {
	if s == nil {
		return nil, false
	}
	value, ok := s.values[id]
	return value, ok
}

// Set records an answer. Duplicate ids (possible after a manual JSON edit)
// keep their first position and the last answer.
func (s *State) Set(id string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if !s.answered(id) {
		s.order = append(s.order, id)
	}
	s.values[id] = value
}

// Unset drops an answer, used when an optional prompt is left blank.
func (s *State) Unset(id string) {
	delete(s.values, id)
	for i, candidate := range s.order {
		if candidate == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// DefaultString renders the current answer as a prompt default.
func (s *State) DefaultString(id string) string {
	value, ok := s.Get(id)
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		return formatNumber(typed)
	default:
		return strings.TrimSpace(toString(typed))
	}
}

func (s *State) answered(id string) bool {
	for _, candidate := range s.order {
		if candidate == id {
			return true
		}
	}
	return false
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
