package locate

import (
	"errors"

	"mosque/internal/presentation"
)

var (
	ErrPermissionDenied    = errors.New("permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("request timeout")
	ErrUnknown             = errors.New("unknown error")

	ErrNotFound   = errors.New("location not found")
	ErrNetwork    = errors.New("geocoding request failed")
	ErrEmptyQuery = errors.New("empty query")
	// ErrSuperseded is returned when a newer request was issued while this
	// one was in flight. Its result is dropped.
	ErrSuperseded = errors.New("superseded by a newer request")
)

var messages = []struct {
	err error
	msg string
}{
	{ErrPermissionDenied, "Unable to get location. Permission denied. Please allow location access."},
	{ErrPositionUnavailable, "Unable to get location. Position unavailable."},
	{ErrTimeout, "Unable to get location. Request timeout."},
	{ErrUnknown, "Unable to get location. Unknown error."},
	{ErrNotFound, "Location not found. Please try a different search term."},
	{ErrNetwork, "Error searching location. Please try again."},
	{ErrEmptyQuery, "Please enter a location to search"},
	{presentation.ErrMapNotReady, "Map is still loading, please try again in a moment"},
}

// Message returns the text shown to the user for err, or "" when err has no
// user facing form.
func Message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return ""
}

// ParseFailure maps a reported geolocation failure kind to its error.
func ParseFailure(kind string) error {
	switch kind {
	case "permission_denied":
		return ErrPermissionDenied
	case "position_unavailable":
		return ErrPositionUnavailable
	case "timeout":
		return ErrTimeout
	default:
		return ErrUnknown
	}
}
