package session

import "testing"

func TestFlow_IsZero(t *testing.T) {
	tests := []struct {
		name string
		flow Flow
		want bool
	}{
		{"empty", Flow{}, true},
		{"whitespace id", Flow{ID: "   "}, true},
		{"name without id", Flow{Name: "My Flow"}, true},
		{"selected", Flow{ID: "abc123", Name: "My Flow"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.flow.IsZero(); got != tt.want {
				t.Errorf("IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStore_SetCurrentAndClear(t *testing.T) {
	s := NewStore()
	if !s.Current().IsZero() {
		t.Fatal("new store should have no selection")
	}

	s.SetCurrent(Flow{ID: "abc123", Name: "Basic Prompting"})
	got := s.Current()
	if got.ID != "abc123" || got.Name != "Basic Prompting" {
		t.Errorf("unexpected current flow: %+v", got)
	}

	s.Clear()
	if !s.Current().IsZero() {
		t.Error("expected no selection after Clear")
	}
}

func TestFlow_DisplayName(t *testing.T) {
	if got := (Flow{ID: "abc123"}).DisplayName(); got != "abc123" {
		t.Errorf("expected id fallback, got %q", got)
	}
	if got := (Flow{ID: "abc123", Name: "Basic Prompting"}).DisplayName(); got != "Basic Prompting" {
		t.Errorf("expected name, got %q", got)
	}
}
