package moon

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/thurmanmarka/skydome/internal/timeutil"
)

// HeuristicLagDeg is how far the heuristic Moon trails the Sun, as a
// rotation about the Earth's polar axis.
const HeuristicLagDeg = 120.0

// Phase is a Moon direction plus its illuminated fraction.
type Phase struct {
	Direction    r3.Vec  // unit vector, same frame as the input Sun vector
	Illumination float64 // [0, 1]
}

// FromSun derives an approximate Moon direction from the Sun direction
// alone and computes illumination from their separation.
//
// This is not a lunar ephemeris: the Moon is the Sun vector rotated about
// the ECEF Z axis by HeuristicLagDeg. Use GeocentricEquatorial for a real
// position.
func FromSun(sun r3.Vec) Phase {
	s := unitOr(sun, r3.Vec{Z: 1})

	lag := timeutil.Deg2Rad(HeuristicLagDeg)
	sinL, cosL := math.Sin(lag), math.Cos(lag)
	m := r3.Vec{
		X: s.X*cosL - s.Y*sinL,
		Y: s.X*sinL + s.Y*cosL,
		Z: s.Z,
	}
	m = unitOr(m, s)

	return Phase{
		Direction:    m,
		Illumination: Illumination(s, m),
	}
}

// Illumination returns (1 + cos φ) / 2 where φ is the angle between the
// two unit vectors. The cosine is clamped before acos.
func Illumination(a, b r3.Vec) float64 {
	φ := math.Acos(timeutil.Clamp(r3.Dot(a, b), -1, 1))
	return timeutil.Clamp((1+math.Cos(φ))/2, 0, 1)
}

// Elongation returns the Sun-Moon angular separation in degrees [0, 180].
func Elongation(sun, moon r3.Vec) float64 {
	return timeutil.Rad2Deg(math.Acos(timeutil.Clamp(r3.Dot(unitOr(sun, sun), unitOr(moon, moon)), -1, 1)))
}

// IlluminatedFraction returns the physical illuminated fraction for a
// geocentric elongation (degrees): with phase angle i ≈ 180° - elongation,
// k = (1 + cos i) / 2.
func IlluminatedFraction(elongationDeg float64) float64 {
	i := timeutil.Deg2Rad(180 - elongationDeg)
	return timeutil.Clamp((1+math.Cos(i))/2, 0, 1)
}

// Waxing reports whether the Moon is east of the Sun, i.e. moving away from
// it. Directions are ECEF (or any frame with Z toward the north celestial
// pole).
func Waxing(sun, moon r3.Vec) bool {
	return r3.Cross(sun, moon).Z > 0
}

// PhaseName classifies an illuminated fraction into the usual eight names.
func PhaseName(f float64, waxing bool) string {
	const (
		eps        = 0.01 // near 0 or 1
		quarterTol = 0.05 // fraction window around 0.5
	)

	switch {
	case f < eps:
		return "New Moon"
	case f > 1-eps:
		return "Full Moon"
	case math.Abs(f-0.5) < quarterTol:
		if waxing {
			return "First Quarter"
		}
		return "Last Quarter"
	case f < 0.5:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}

func unitOr(v, fallback r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return r3.Scale(1/n, v)
}
