package notify

import (
	"testing"
	"time"
)

func TestStore_LastWriteWins(t *testing.T) {
	s := NewStore()
	s.SetSuccess("Flow deployed", "http://localhost:8001")
	s.SetError("Deploy failed", "connection refused")

	n := s.Current()
	if n == nil {
		t.Fatal("expected a current notification")
	}
	if n.Kind != KindError {
		t.Errorf("expected KindError, got %v", n.Kind)
	}
	if n.Title != "Deploy failed" {
		t.Errorf("expected last write to win, got title %q", n.Title)
	}
	if len(n.Details) != 1 || n.Details[0] != "connection refused" {
		t.Errorf("unexpected details: %v", n.Details)
	}
}

func TestStore_CurrentReturnsCopy(t *testing.T) {
	s := NewStore()
	s.SetSuccess("Copied to clipboard")

	n := s.Current()
	n.Title = "mutated"

	if got := s.Current().Title; got != "Copied to clipboard" {
		t.Errorf("store state mutated through Current copy: %q", got)
	}
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.SetError("Cannot deploy flow", "No flow is currently selected")
	s.Clear()
	if s.Current() != nil {
		t.Error("expected nil after Clear")
	}
}

func TestStore_OnChange(t *testing.T) {
	s := NewStore()
	calls := 0
	s.SetOnChange(func() { calls++ })

	s.SetSuccess("one")
	s.SetError("two")
	s.Clear()

	if calls != 3 {
		t.Errorf("expected 3 onChange calls, got %d", calls)
	}
}

func TestStore_Timestamp(t *testing.T) {
	s := NewStore()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	s.SetSuccess("Flow deployed")
	if got := s.Current().At; !got.Equal(fixed) {
		t.Errorf("expected At %v, got %v", fixed, got)
	}
}
