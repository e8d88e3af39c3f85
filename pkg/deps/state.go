package deps

import "slices"

// State tracks which assemblies have been handled and which are waiting.
//
// Every assembly full name is in at most one of the two collections: parsed
// (analyzed or given up on) or pending (observed, not handled yet). Pending
// names are handed out in the order they were first observed.
//
// A State is owned by one Builder and is not safe for concurrent use.
type State struct {
	parsed  map[string]bool
	order   []string
	pending []string
	queued  map[string]bool
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		parsed: make(map[string]bool),
		queued: make(map[string]bool),
	}
}

// IsParsed reports whether fullName has been handled.
func (s *State) IsParsed(fullName string) bool { return s.parsed[fullName] }

// IsPending reports whether fullName is waiting to be handled.
func (s *State) IsPending(fullName string) bool { return s.queued[fullName] }

// IsKnown reports whether fullName is parsed or pending.
func (s *State) IsKnown(fullName string) bool {
	return s.parsed[fullName] || s.queued[fullName]
}

// Enqueue adds fullName to the pending queue unless it is already known.
// It reports whether the name was added.
func (s *State) Enqueue(fullName string) bool {
	if s.IsKnown(fullName) {
		return false
	}
	s.queued[fullName] = true
	s.pending = append(s.pending, fullName)
	return true
}

// Next returns the oldest pending name without removing it.
func (s *State) Next() (string, bool) {
	if len(s.pending) == 0 {
		return "", false
	}
	return s.pending[0], true
}

// MarkParsed moves fullName to the parsed set, removing it from the pending
// queue if present. Marking a name twice has no further effect.
func (s *State) MarkParsed(fullName string) {
	if s.queued[fullName] {
		delete(s.queued, fullName)
		s.pending = slices.DeleteFunc(s.pending, func(p string) bool { return p == fullName })
	}
	if s.parsed[fullName] {
		return
	}
	s.parsed[fullName] = true
	s.order = append(s.order, fullName)
}

// Pending returns a copy of the pending queue, oldest first.
func (s *State) Pending() []string { return slices.Clone(s.pending) }

// Parsed returns the parsed names in the order they were marked.
func (s *State) Parsed() []string { return slices.Clone(s.order) }
