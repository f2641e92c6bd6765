// Package frame converts directions between the observer's horizontal
// (Alt/Az) frame, the local East-North-Up tangent plane and the Earth-fixed
// (ECEF) frame.
//
// ENU vectors are carried as r3.Vec{X: east, Y: north, Z: up}. ECEF has X
// toward (0°N, 0°E), Y toward (0°N, 90°E) and Z toward the north pole. All
// outputs are unit directions; nothing here is scaled by the Earth radius.
package frame

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/thurmanmarka/skydome/internal/timeutil"
)

// degenerateEps is the size below which both horizontal components are
// treated as zero and azimuth falls back to 0.
const degenerateEps = 1e-12

// Horizontal is a local Alt/Az direction in degrees. Azimuth is measured
// clockwise from north in [0, 360); altitude is positive above the horizon.
type Horizontal struct {
	Azimuth  float64
	Altitude float64
}

// Basis is the local ENU basis at an observer, expressed in ECEF.
type Basis struct {
	East, North, Up r3.Vec
}

// BasisAt returns the ENU basis vectors at latitude latDeg, longitude lonDeg.
func BasisAt(latDeg, lonDeg float64) Basis {
	φ := timeutil.Deg2Rad(latDeg)
	λ := timeutil.Deg2Rad(lonDeg)

	sinφ, cosφ := math.Sin(φ), math.Cos(φ)
	sinλ, cosλ := math.Sin(λ), math.Cos(λ)

	return Basis{
		East:  r3.Vec{X: -sinλ, Y: cosλ, Z: 0},
		North: r3.Vec{X: -sinφ * cosλ, Y: -sinφ * sinλ, Z: cosφ},
		Up:    r3.Vec{X: cosφ * cosλ, Y: cosφ * sinλ, Z: sinφ},
	}
}

// HorizontalToENU returns the unit ENU direction for azimuth azDeg and
// altitude altDeg. Altitude is clamped to [-90, 90].
func HorizontalToENU(azDeg, altDeg float64) r3.Vec {
	az := timeutil.Deg2Rad(azDeg)
	alt := timeutil.Deg2Rad(timeutil.Clamp(altDeg, -90, 90))

	return r3.Vec{
		X: math.Sin(az) * math.Cos(alt),
		Y: math.Cos(az) * math.Cos(alt),
		Z: math.Sin(alt),
	}
}

// ENUToECEF rotates an ENU vector at (latDeg, lonDeg) into ECEF.
func ENUToECEF(enu r3.Vec, latDeg, lonDeg float64) r3.Vec {
	b := BasisAt(latDeg, lonDeg)
	return r3.Add(
		r3.Add(r3.Scale(enu.X, b.East), r3.Scale(enu.Y, b.North)),
		r3.Scale(enu.Z, b.Up),
	)
}

// ECEFToENU is the inverse of ENUToECEF.
func ECEFToENU(v r3.Vec, latDeg, lonDeg float64) r3.Vec {
	b := BasisAt(latDeg, lonDeg)
	return r3.Vec{
		X: r3.Dot(v, b.East),
		Y: r3.Dot(v, b.North),
		Z: r3.Dot(v, b.Up),
	}
}

// ObserverECEF returns the observer's own unit vector on the ECEF sphere,
// which is the local "up" direction.
func ObserverECEF(latDeg, lonDeg float64) r3.Vec {
	return BasisAt(latDeg, lonDeg).Up
}

// ECEFToHorizontal recovers Alt/Az of an ECEF direction seen from
// (latDeg, lonDeg). v need not be normalized.
func ECEFToHorizontal(v r3.Vec, latDeg, lonDeg float64) Horizontal {
	n := r3.Norm(v)
	if n == 0 {
		return Horizontal{}
	}
	enu := ECEFToENU(r3.Scale(1/n, v), latDeg, lonDeg)
	return FromENU(enu.X, enu.Y, enu.Z)
}

// FromENU turns east/north/up components of a unit direction into Alt/Az.
// The asin argument is clamped to [-1, 1]; when both horizontal components
// vanish (zenith, nadir, or the poles) azimuth is defined as 0.
func FromENU(east, north, up float64) Horizontal {
	alt := timeutil.Rad2Deg(math.Asin(timeutil.Clamp(up, -1, 1)))

	if math.Abs(east) < degenerateEps && math.Abs(north) < degenerateEps {
		return Horizontal{Azimuth: 0, Altitude: alt}
	}

	az := timeutil.Normalize360(timeutil.Rad2Deg(math.Atan2(east, north)))
	return Horizontal{Azimuth: az, Altitude: alt}
}
