package timeutil

import (
	"math"
	"time"
)

// J2000 is the Julian day of the J2000.0 epoch (2000-01-01 12:00 TT, taken
// here as UTC).
const J2000 = 2451545.0

// DaysPerCentury is the length of a Julian century in days.
const DaysPerCentury = 36525.0

// JulianDay returns the Julian day of t using the standard Gregorian
// calendar formula. t is converted to UTC first.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Date()
	hour := float64(u.Hour()) +
		float64(u.Minute())/60.0 +
		float64(u.Second())/3600.0 +
		float64(u.Nanosecond())/(3600.0*1e9)

	y := year
	m := int(month)

	if m <= 2 {
		y -= 1
		m += 12
	}

	// Integer division here must floor, including for years before 0.
	A := floorDiv(y, 100)
	B := 2 - A + floorDiv(A, 4)

	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + float64(B) - 1524.5 +
		hour/24.0

	return jd
}

// JulianCenturies returns centuries since J2000.0 for the given Julian day.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

// DaysSinceJ2000 returns the number of days between jd and J2000.0.
func DaysSinceJ2000(jd float64) float64 {
	return jd - J2000
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// -----------------------------
// Basic degree/radian helpers and trig with degree inputs.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func SinD(deg float64) float64 {
	return math.Sin(Deg2Rad(deg))
}

func CosD(deg float64) float64 {
	return math.Cos(Deg2Rad(deg))
}

// Normalize360 maps d into [0, 360).
func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	// math.Mod of a tiny negative value can round back up to exactly 360.
	if d >= 360.0 {
		d = 0
	}
	return d
}

// NormalizeHourAngle maps d into (-180, 180].
func NormalizeHourAngle(d float64) float64 {
	d = Normalize360(d)
	if d > 180.0 {
		d -= 360.0
	}
	return d
}

// Clamp limits v to [lo, hi]. NaN is returned unchanged.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApproxRefraction returns an approximation of atmospheric refraction (in
// degrees) at a given apparent altitude altDeg (degrees) under standard
// conditions.
//
// Positive return means "add this to the geometric altitude to get apparent
// altitude". Saemundsson-style:
//
//	R (arcmin) ≈ 1.02 / tan( (alt + 10.3 / (alt + 5.11)) in degrees )
func ApproxRefraction(altDeg float64) float64 {
	// Below -1° the formula goes weird and refraction isn't meaningful here.
	if altDeg < -1.0 || altDeg > 90.0 {
		return 0
	}

	alt := altDeg
	if alt < -0.5 {
		alt = -0.5
	}

	t := math.Tan(Deg2Rad(alt + 10.3/(alt+5.11)))
	if t == 0 {
		return 0
	}

	return (1.02 / t) / 60.0
}
