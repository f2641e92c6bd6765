package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"time"
)

// LocalLayout is the only accepted local civil time layout.
const LocalLayout = "2006-01-02T15:04"

var localPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}$`)

// FormatError reports a local civil time string that does not match
// LocalLayout exactly.
type FormatError struct {
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid local time %q (want YYYY-MM-DDTHH:mm): %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid local time %q (want YYYY-MM-DDTHH:mm)", e.Input)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ZoneOffsetHours returns the whole-hour offset implied by a longitude:
// round(lon / 15). Half hours round away from zero.
func ZoneOffsetHours(lonDeg float64) int {
	return int(math.Round(lonDeg / 15.0))
}

// LocalToUTC interprets s as civil time in the whole-hour zone of lonDeg and
// returns the matching UTC instant.
//
// The fields are read as if they were UTC and then shifted, so the result
// never depends on the process time zone.
func LocalToUTC(s string, lonDeg float64) (time.Time, error) {
	if !localPattern.MatchString(s) {
		return time.Time{}, &FormatError{Input: s}
	}

	// ParseInLocation rejects out-of-range fields such as 2024-02-30.
	wall, err := time.ParseInLocation(LocalLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, &FormatError{Input: s, Err: err}
	}

	offset := ZoneOffsetHours(lonDeg)
	return wall.Add(-time.Duration(offset) * time.Hour), nil
}
