// Package notify holds the process-wide alert banner state.
// Any component may write a success or error notice; a single renderer
// (the status banner in the TUI) reads the current one. Writes are
// last-write-wins; there is no queue.
package notify

import (
	"sync"
	"time"
)

// Kind distinguishes success from error notices.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is a single banner: a title plus optional detail lines.
type Notification struct {
	Kind    Kind
	Title   string
	Details []string
	At      time.Time
}

// Store is the shared alert register.
type Store struct {
	mu       sync.Mutex
	current  *Notification
	onChange func()
	now      func() time.Time // swapped in tests
}

// NewStore creates an empty alert store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// SetSuccess replaces the current notification with a success notice.
func (s *Store) SetSuccess(title string, details ...string) {
	s.set(Notification{Kind: KindSuccess, Title: title, Details: details})
}

// SetError replaces the current notification with an error notice.
func (s *Store) SetError(title string, details ...string) {
	s.set(Notification{Kind: KindError, Title: title, Details: details})
}

func (s *Store) set(n Notification) {
	s.mu.Lock()
	n.At = s.now()
	s.current = &n
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Current returns the displayed notification, or nil when the banner is empty.
func (s *Store) Current() *Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	n := *s.current
	return &n
}

// Clear removes the current notification. Called by the banner renderer
// when the user dismisses it.
func (s *Store) Clear() {
	s.mu.Lock()
	s.current = nil
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SetOnChange sets a callback invoked after every write. Used to trigger
// a re-render without the renderer polling.
func (s *Store) SetOnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}
