package sun

import (
	"math"

	"github.com/thurmanmarka/skydome/internal/frame"
	"github.com/thurmanmarka/skydome/internal/timeutil"
)

// Equatorial represents equatorial coordinates (right ascension and declination)
// in degrees. RA is in degrees (0–360).
type Equatorial struct {
	RA  float64 // right ascension, degrees
	Dec float64 // declination, degrees
}

// AnalyticEquatorial returns the geometric geocentric RA/Dec of the Sun for
// the Julian day jd using the low-precision polynomial model:
//
//	L0  = mean longitude
//	M   = mean anomaly
//	C   = equation of center
//	L   = true longitude (L0 + C)
//	eps = mean obliquity of the ecliptic
func AnalyticEquatorial(jd float64) Equatorial {
	T := timeutil.JulianCenturies(jd)

	L0 := timeutil.Normalize360(280.46646 + T*(36000.76983+T*0.0003032))
	M := timeutil.Normalize360(357.52911 + T*(35999.05029-T*0.0001537))

	Mr := timeutil.Deg2Rad(M)
	C := (1.914602-T*(0.004817+T*0.000014))*math.Sin(Mr) +
		(0.019993-T*0.000101)*math.Sin(2*Mr) +
		0.000289*math.Sin(3*Mr)

	L := timeutil.Deg2Rad(timeutil.Normalize360(L0 + C))
	eps := timeutil.Deg2Rad(23.439291 - 0.0130042*T)

	ra := math.Atan2(math.Cos(eps)*math.Sin(L), math.Cos(L))
	dec := math.Asin(timeutil.Clamp(math.Sin(eps)*math.Sin(L), -1, 1))

	return Equatorial{
		RA:  timeutil.Normalize360(timeutil.Rad2Deg(ra)),
		Dec: timeutil.Rad2Deg(dec),
	}
}

// GreenwichSidereal returns Greenwich mean sidereal time in degrees [0, 360)
// for the Julian day jd.
func GreenwichSidereal(jd float64) float64 {
	d := timeutil.DaysSinceJ2000(jd)
	return timeutil.Normalize360(280.46061837 + 360.98564736629*d)
}

// LocalSidereal returns local mean sidereal time in degrees [0, 360) at
// east-positive longitude lonDeg.
func LocalSidereal(jd, lonDeg float64) float64 {
	return timeutil.Normalize360(GreenwichSidereal(jd) + lonDeg)
}

// HourAngle returns LST - RA in degrees, normalized to (-180, 180].
func HourAngle(lstDeg, raDeg float64) float64 {
	return timeutil.NormalizeHourAngle(lstDeg - raDeg)
}

// ToHorizontal converts an equatorial direction to Alt/Az for an observer at
// latitude latDeg whose local sidereal time is lstDeg.
//
// The hour angle grows westward, so the east component carries a minus sign.
func ToHorizontal(eq Equatorial, latDeg, lstDeg float64) frame.Horizontal {
	H := timeutil.Deg2Rad(HourAngle(lstDeg, eq.RA))
	dec := timeutil.Deg2Rad(eq.Dec)
	lat := timeutil.Deg2Rad(latDeg)

	sinφ, cosφ := math.Sin(lat), math.Cos(lat)
	sinδ, cosδ := math.Sin(dec), math.Cos(dec)

	east := -cosδ * math.Sin(H)
	north := cosφ*sinδ - sinφ*cosδ*math.Cos(H)
	up := sinφ*sinδ + cosφ*cosδ*math.Cos(H)

	return frame.FromENU(east, north, up)
}
