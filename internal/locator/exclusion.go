package locator

import "sync"

// ExclusionSet tracks place ids already anchored to a zone so one venue is
// never assigned twice within a run. Safe for concurrent use.
type ExclusionSet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewExclusionSet returns an empty set.
func NewExclusionSet() *ExclusionSet {
	return &ExclusionSet{ids: make(map[string]struct{})}
}

// Add marks a place id as used. Returns false if it was already present.
func (s *ExclusionSet) Add(placeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[placeID]; ok {
		return false
	}
	s.ids[placeID] = struct{}{}
	return true
}

// Contains reports whether the place id is already used.
func (s *ExclusionSet) Contains(placeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[placeID]
	return ok
}

// Len returns the number of excluded ids.
func (s *ExclusionSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
