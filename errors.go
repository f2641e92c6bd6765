package skydome

import (
	"errors"
	"fmt"

	"github.com/thurmanmarka/skydome/internal/timeutil"
)

// FormatError reports a local time string that is not exactly
// "YYYY-MM-DDTHH:mm". Its Input field holds the rejected string.
type FormatError = timeutil.FormatError

// DomainError reports an observer location outside the valid range.
type DomainError struct {
	Field string  // "latitude" or "longitude"
	Value float64 // rejected value
}

func (e *DomainError) Error() string {
	switch e.Field {
	case "latitude":
		return fmt.Sprintf("latitude %v outside [-90, 90]", e.Value)
	default:
		return fmt.Sprintf("%s %v is not a finite number", e.Field, e.Value)
	}
}

// ComputationError wraps any failure of Engine.Compute.
type ComputationError struct {
	Op  string
	Err error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("skydome: %s: %v", e.Op, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

var (
	// ErrNoRiseNoSet is returned when the Sun neither rises nor sets (or
	// never reaches the requested altitude) on that date at that location.
	ErrNoRiseNoSet = errors.New("sun does not cross the target altitude on this date")

	// ErrUnknownTwilight is returned by TwilightFor for an undefined kind.
	ErrUnknownTwilight = errors.New("unknown twilight kind")
)
