package skydome

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/thurmanmarka/skydome/internal/moon"
	"github.com/thurmanmarka/skydome/internal/sun"
	"github.com/thurmanmarka/skydome/internal/timeutil"
)

// MoonPhase describes the illuminated fraction and qualitative phase of the
// Moon at an instant. It does not depend on the observer.
type MoonPhase struct {
	Time       time.Time // the instant evaluated, as passed in
	Fraction   float64   // illuminated fraction [0..1], 0=new, 1=full
	Elongation float64   // Sun-Moon angular separation in degrees [0..180]
	Waxing     bool      // true if illumination is increasing
	Name       string    // e.g. "New Moon", "Waxing Crescent", "First Quarter", ...
}

// MoonPhaseAt computes the geocentric Moon phase at t from the lunar series
// and the analytic Sun.
func MoonPhaseAt(t time.Time) MoonPhase {
	jd := timeutil.JulianDay(t.UTC())
	s := equatorialVec(sun.AnalyticEquatorial(jd))
	m := equatorialVec(moon.GeocentricEquatorial(jd))

	elong := moon.Elongation(s, m)
	k := moon.IlluminatedFraction(elong)
	waxing := moon.Waxing(s, m)

	return MoonPhase{
		Time:       t,
		Fraction:   k,
		Elongation: elong,
		Waxing:     waxing,
		Name:       moon.PhaseName(k, waxing),
	}
}

// equatorialVec is the unit vector for RA/Dec in the true-of-date
// equatorial frame.
func equatorialVec(eq sun.Equatorial) r3.Vec {
	ra, dec := timeutil.Deg2Rad(eq.RA), timeutil.Deg2Rad(eq.Dec)
	return r3.Vec{
		X: math.Cos(dec) * math.Cos(ra),
		Y: math.Cos(dec) * math.Sin(ra),
		Z: math.Sin(dec),
	}
}
