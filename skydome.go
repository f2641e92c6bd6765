// Package skydome computes where the Sun and Moon are in the sky for an
// observer, as unit vectors a renderer can light a scene with.
//
// Directions are given in three frames: horizontal (azimuth/altitude in
// degrees), local East-North-Up, and Earth-centered Earth-fixed. The solar
// position comes from a pluggable high-precision provider (Meeus by default)
// with an analytic low-precision model as fallback. The Moon is either a
// heuristic derived from the Sun or a truncated lunar series.
//
// Accuracy is a few arc-minutes for the Sun and a fraction of a degree for
// the lunar series; refraction is only approximated.
package skydome

import (
	"math"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/thurmanmarka/skydome/internal/frame"
	"github.com/thurmanmarka/skydome/internal/moon"
	"github.com/thurmanmarka/skydome/internal/sun"
	"github.com/thurmanmarka/skydome/internal/timeutil"
)

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat float64 // degrees, north positive
	Lon float64 // degrees, east positive (west negative, e.g. -105 for 105°W)
}

// Validate returns a *DomainError unless Lat is finite and within [-90, 90]
// and Lon is finite. Longitudes outside [-180, 180] are accepted.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return &DomainError{Field: "latitude", Value: c.Lat}
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return &DomainError{Field: "longitude", Value: c.Lon}
	}
	return nil
}

// EquatorialProvider supplies apparent solar RA/Dec (degrees) for an instant.
// A provider may fail; the engine then uses the analytic model.
type EquatorialProvider = sun.Provider

// Equatorial is a right ascension / declination pair in degrees.
type Equatorial = sun.Equatorial

// MeeusProvider is the default EquatorialProvider, based on the solar
// routines of Meeus' Astronomical Algorithms (nutation and aberration
// included).
type MeeusProvider = sun.MeeusProvider

// LunarModel selects how the Moon direction is obtained.
type LunarModel string

const (
	// LunarHeuristic places the Moon 120° behind the Sun about the polar
	// axis. Cheap and stable, not astronomically meaningful.
	LunarHeuristic LunarModel = "heuristic"

	// LunarEphemeris uses a truncated lunar series good to a few tenths of
	// a degree.
	LunarEphemeris LunarModel = "ephemeris"
)

// Options configures an Engine. The zero value is valid: analytic Sun,
// heuristic Moon, no logging, no refraction.
type Options struct {
	// Provider is the primary solar strategy. Nil means analytic only.
	Provider EquatorialProvider

	// Lunar selects the Moon model. Empty means LunarHeuristic.
	Lunar LunarModel

	// Refraction adds an approximate atmospheric refraction to the solar
	// altitude. Off by default.
	Refraction bool

	// Logger receives debug traces and provider-failure warnings.
	Logger *zap.Logger
}

// Ephemeris is one evaluation of the sky for an observer and instant.
// Every vector is unit length. It is a value: nothing in it is shared with
// the Engine or with other results.
type Ephemeris struct {
	Time time.Time // the instant evaluated, UTC

	Sun      r3.Vec // Sun direction, ECEF
	Moon     r3.Vec // Moon direction, ECEF
	Observer r3.Vec // local up, ECEF

	SunENU  r3.Vec // Sun direction, X=east Y=north Z=up
	MoonENU r3.Vec // Moon direction, X=east Y=north Z=up

	AltitudeDeg float64 // solar altitude, [-90, 90]
	AzimuthDeg  float64 // solar azimuth clockwise from north, [0, 360)

	Illumination float64 // Moon illuminated fraction, [0, 1]
	MoonPhase    string  // e.g. "Waxing Crescent"
	Waxing       bool

	Strategy string     // solar strategy that produced the result
	Lunar    LunarModel // Moon model used
}

// Engine computes Ephemeris values. It holds only configuration fixed at
// construction, so one Engine may be shared by any number of goroutines.
type Engine struct {
	solar      sun.Calculator
	lunar      LunarModel
	refraction bool
	log        *zap.Logger
}

// New returns an Engine configured by opts.
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	lunar := opts.Lunar
	if lunar != LunarEphemeris {
		lunar = LunarHeuristic
	}
	return &Engine{
		solar:      sun.Calculator{Primary: opts.Provider, Log: log},
		lunar:      lunar,
		refraction: opts.Refraction,
		log:        log,
	}
}

var defaultEngine = New(Options{Provider: MeeusProvider{}})

// Compute evaluates the sky with the default engine: Meeus solar provider,
// heuristic Moon, no logging.
func Compute(t time.Time, lat, lon float64) (Ephemeris, error) {
	return defaultEngine.Compute(t, lat, lon)
}

// LocalToUTC converts a "YYYY-MM-DDTHH:mm" civil time at longitude lon to
// UTC, using the whole-hour zone round(lon/15). The process time zone is
// never consulted. A malformed string yields a *FormatError.
func LocalToUTC(s string, lon float64) (time.Time, error) {
	return timeutil.LocalToUTC(s, lon)
}

// Compute evaluates Sun and Moon directions at t for an observer at
// (lat, lon) degrees. An invalid location is reported as a
// *ComputationError wrapping a *DomainError. A failing solar provider is
// logged and never returned.
func (e *Engine) Compute(t time.Time, lat, lon float64) (Ephemeris, error) {
	if err := (Coordinates{Lat: lat, Lon: lon}).Validate(); err != nil {
		return Ephemeris{}, &ComputationError{Op: "compute", Err: err}
	}

	utc := t.UTC()
	pos := e.solar.Position(utc, lat, lon)

	h := pos.Horizontal
	if e.refraction {
		h.Altitude = timeutil.Clamp(h.Altitude+timeutil.ApproxRefraction(h.Altitude), -90, 90)
	}

	sunENU := frame.HorizontalToENU(h.Azimuth, h.Altitude)
	sunECEF := r3.Unit(frame.ENUToECEF(sunENU, lat, lon))

	eph := Ephemeris{
		Time:        utc,
		Sun:         sunECEF,
		Observer:    frame.ObserverECEF(lat, lon),
		SunENU:      sunENU,
		AltitudeDeg: h.Altitude,
		AzimuthDeg:  h.Azimuth,
		Strategy:    string(pos.Strategy),
		Lunar:       e.lunar,
	}

	switch e.lunar {
	case LunarEphemeris:
		jd := timeutil.JulianDay(utc)
		mh := sun.ToHorizontal(moon.GeocentricEquatorial(jd), lat, pos.LST)
		eph.MoonENU = frame.HorizontalToENU(mh.Azimuth, mh.Altitude)
		eph.Moon = r3.Unit(frame.ENUToECEF(eph.MoonENU, lat, lon))
		eph.Illumination = moon.IlluminatedFraction(moon.Elongation(eph.Sun, eph.Moon))
	default:
		p := moon.FromSun(eph.Sun)
		eph.Moon = p.Direction
		eph.MoonENU = r3.Unit(frame.ECEFToENU(p.Direction, lat, lon))
		eph.Illumination = p.Illumination
	}
	eph.Waxing = moon.Waxing(eph.Sun, eph.Moon)
	eph.MoonPhase = moon.PhaseName(eph.Illumination, eph.Waxing)

	e.log.Debug("ephemeris",
		zap.Time("utc", utc),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Float64("altitude", eph.AltitudeDeg),
		zap.Float64("azimuth", eph.AzimuthDeg),
		zap.Float64("illumination", eph.Illumination),
		zap.String("strategy", eph.Strategy),
		zap.String("lunar", string(eph.Lunar)),
	)

	return eph, nil
}
