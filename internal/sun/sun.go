package sun

import (
	"time"

	"github.com/thurmanmarka/skydome/internal/solver"
	"github.com/thurmanmarka/skydome/internal/timeutil"
)

// StandardZenith is the commonly used zenith angle (in degrees) for sunrise/sunset:
// 90°50' ≈ 90.833°, accounting for refraction + Sun's apparent radius.
const StandardZenith = 90.833

// Altitudes (degrees) of the Sun's center that bound the daylight phases.
const (
	AltitudeCivil        = -6.0
	AltitudeNautical     = -12.0
	AltitudeAstronomical = -18.0
	AltitudeGoldenLow    = -4.0
	AltitudeGoldenHigh   = 6.0
)

// Events holds the UTC instants of the upward and downward crossings of one
// altitude during a local calendar day.
type Events struct {
	Rise, Set     time.Time
	OKRise, OKSet bool
}

// Altitude returns the Sun's analytic geometric altitude in degrees at t.
// With refraction set, the Saemundsson approximation is added.
func Altitude(t time.Time, latDeg, lonDeg float64, refraction bool) float64 {
	jd := timeutil.JulianDay(t)
	h := ToHorizontal(AnalyticEquatorial(jd), latDeg, LocalSidereal(jd, lonDeg))
	if refraction {
		return h.Altitude + timeutil.ApproxRefraction(h.Altitude)
	}
	return h.Altitude
}

// EventsForDate finds when the Sun's center crosses targetAlt during the
// local calendar day of date (its Location defines midnight). Returned
// times are UTC.
func EventsForDate(latDeg, lonDeg float64, date time.Time, targetAlt float64) Events {
	f := func(t time.Time) float64 {
		return Altitude(t, latDeg, lonDeg, false)
	}

	rise, set := solver.Crossings(f, solver.DayWindow(date), targetAlt)

	var ev Events
	if rise.OK {
		ev.Rise, ev.OKRise = rise.Time.UTC(), true
	}
	if set.OK {
		ev.Set, ev.OKSet = set.Time.UTC(), true
	}
	return ev
}

// RiseSetForDate computes sunrise and sunset for zenith (degrees); use
// StandardZenith for the conventional definition.
func RiseSetForDate(latDeg, lonDeg float64, date time.Time, zenith float64) Events {
	return EventsForDate(latDeg, lonDeg, date, 90.0-zenith)
}
