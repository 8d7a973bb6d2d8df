// Package session tracks the flow the user is currently working with.
// The flow list view writes it; deploy triggers only read it.
package session

import (
	"strings"
	"sync"
)

// Flow identifies a flow in the host application. ID is opaque; Name is
// only used for display.
type Flow struct {
	ID   string
	Name string
}

// IsZero reports whether no flow is identified.
func (f Flow) IsZero() bool {
	return strings.TrimSpace(f.ID) == ""
}

// DisplayName returns the name, falling back to the id.
func (f Flow) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.ID
}

// Store holds the currently selected flow. Last write wins.
type Store struct {
	mu      sync.RWMutex
	current Flow
}

// NewStore creates an empty flow store.
func NewStore() *Store {
	return &Store{}
}

// Current returns the selected flow. The zero Flow means none selected.
func (s *Store) Current() Flow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetCurrent records the selected flow.
func (s *Store) SetCurrent(f Flow) {
	s.mu.Lock()
	s.current = f
	s.mu.Unlock()
}

// Clear forgets the selection.
func (s *Store) Clear() {
	s.mu.Lock()
	s.current = Flow{}
	s.mu.Unlock()
}
