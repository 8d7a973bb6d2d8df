package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a failed API request. Detail carries the server's embedded
// message when the body had one; otherwise it is empty and Message falls
// back to the status text.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("deployment API: %s (status %d)", e.Detail, e.Status)
	}
	return fmt.Sprintf("deployment API: %s", http.StatusText(e.Status))
}

// Message returns the user-facing text for this failure.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return http.StatusText(e.Status)
}

// MentionsDocker reports whether s looks like a container-tooling
// availability complaint. Servers phrase this inconsistently ("Docker is
// not installed", "docker daemon not running"), so a substring match on
// the tool name is the contract.
func MentionsDocker(s string) bool {
	return strings.Contains(strings.ToLower(s), "docker")
}

// IsDockerUnavailable reports whether err is an API failure caused by the
// container runtime being unavailable on the server. Callers surface a
// dedicated message for this rather than the generic failure text.
func IsDockerUnavailable(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return MentionsDocker(apiErr.Detail)
}
