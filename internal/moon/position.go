package moon

import (
	"math"

	"github.com/thurmanmarka/skydome/internal/sun"
	"github.com/thurmanmarka/skydome/internal/timeutil"
)

// GeocentricEquatorial returns an approximate geocentric RA/Dec for the Moon
// at Julian day jd.
//
// This is a medium-precision model using a small set of dominant periodic terms
// in ecliptic longitude and latitude, good to a few tenths of a degree:
//
//	L'  = mean longitude of the Moon
//	M   = mean anomaly of the Sun
//	Mm  = mean anomaly of the Moon
//	D   = mean elongation of the Moon from the Sun
//	F   = argument of latitude of the Moon
func GeocentricEquatorial(jd float64) sun.Equatorial {
	d := timeutil.DaysSinceJ2000(jd)

	Lp := timeutil.Normalize360(218.3164477 + 13.17639648*d)
	M := timeutil.Deg2Rad(timeutil.Normalize360(357.5291092 + 0.98560028*d))
	Mm := timeutil.Deg2Rad(timeutil.Normalize360(134.9633964 + 13.06499295*d))
	D := timeutil.Deg2Rad(timeutil.Normalize360(297.8501921 + 12.19074912*d))
	F := timeutil.Deg2Rad(timeutil.Normalize360(93.2720950 + 13.22935024*d))

	// Ecliptic longitude λ and latitude β, degrees.
	λ := Lp +
		6.289*math.Sin(Mm) +
		1.274*math.Sin(2*D-Mm) +
		0.658*math.Sin(2*D) +
		0.214*math.Sin(2*Mm) -
		0.186*math.Sin(M) -
		0.114*math.Sin(2*F)

	β := 5.128*math.Sin(F) +
		0.280*math.Sin(Mm+F) +
		0.277*math.Sin(Mm-F) +
		0.173*math.Sin(2*D-F)

	return EclipticToEquatorial(λ, β, 23.439291-0.0000003563*d)
}

// EclipticToEquatorial rotates ecliptic longitude/latitude (degrees) into
// RA/Dec (degrees) for obliquity epsDeg.
func EclipticToEquatorial(lonDeg, latDeg, epsDeg float64) sun.Equatorial {
	lon := timeutil.Deg2Rad(lonDeg)
	lat := timeutil.Deg2Rad(latDeg)
	eps := timeutil.Deg2Rad(epsDeg)

	x := math.Cos(lat) * math.Cos(lon)
	y := math.Cos(lat) * math.Sin(lon)
	z := math.Sin(lat)

	yEq := y*math.Cos(eps) - z*math.Sin(eps)
	zEq := y*math.Sin(eps) + z*math.Cos(eps)

	return sun.Equatorial{
		RA:  timeutil.Normalize360(timeutil.Rad2Deg(math.Atan2(yEq, x))),
		Dec: timeutil.Rad2Deg(math.Asin(timeutil.Clamp(zEq, -1, 1))),
	}
}
