package skydome

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/skydome/internal/sun"
)

// TwilightKind identifies the type of twilight based on the Sun's altitude
// below the horizon.
type TwilightKind int

const (
	// TwilightCivil corresponds to the Sun's center at -6 degrees altitude.
	TwilightCivil TwilightKind = iota

	// TwilightNautical corresponds to the Sun's center at -12 degrees altitude.
	TwilightNautical

	// TwilightAstronomical corresponds to the Sun's center at -18 degrees altitude.
	TwilightAstronomical
)

func (k TwilightKind) String() string {
	switch k {
	case TwilightCivil:
		return "civil"
	case TwilightNautical:
		return "nautical"
	case TwilightAstronomical:
		return "astronomical"
	default:
		return fmt.Sprintf("TwilightKind(%d)", int(k))
	}
}

func (k TwilightKind) altitude() (float64, bool) {
	switch k {
	case TwilightCivil:
		return sun.AltitudeCivil, true
	case TwilightNautical:
		return sun.AltitudeNautical, true
	case TwilightAstronomical:
		return sun.AltitudeAstronomical, true
	}
	return 0, false
}

// RiseSet holds the upward (Rise) and downward (Set) crossings on a date.
// A missing crossing is the zero time.
type RiseSet struct {
	Rise time.Time
	Set  time.Time
}

// PhaseWindow is a continuous interval where the Sun's altitude stays within
// a range (golden hour, blue hour).
type PhaseWindow struct {
	Start time.Time
	End   time.Time
}

// DaylightPhases holds the morning and evening windows of one phase.
type DaylightPhases struct {
	Morning PhaseWindow
	Evening PhaseWindow

	// HasMorning / HasEvening report whether the window exists on this date
	// at this location; at high latitudes one or both may be missing.
	HasMorning bool
	HasEvening bool
}

// SunRiseSet returns sunrise and sunset for the local calendar day of date
// (date.Location() defines the day and the zone of the results). The Sun's
// upper limb with standard refraction is used (zenith 90.833°).
func SunRiseSet(loc Coordinates, date time.Time) (RiseSet, error) {
	if err := loc.Validate(); err != nil {
		return RiseSet{}, err
	}
	return crossings(loc, date, 90.0-sun.StandardZenith)
}

// DaylightHours returns the hours between sunrise and sunset. Where the Sun
// does not both rise and set on date it returns 0 and ErrNoRiseNoSet.
func DaylightHours(loc Coordinates, date time.Time) (float64, error) {
	rs, err := SunRiseSet(loc, date)
	if err != nil {
		return 0, err
	}
	if rs.Rise.IsZero() || rs.Set.IsZero() {
		return 0, ErrNoRiseNoSet
	}
	return rs.Set.Sub(rs.Rise).Hours(), nil
}

// TwilightFor returns dawn (Rise) and dusk (Set) of the given kind: the
// upward and downward crossings of its altitude.
func TwilightFor(loc Coordinates, date time.Time, kind TwilightKind) (RiseSet, error) {
	alt, ok := kind.altitude()
	if !ok {
		return RiseSet{}, fmt.Errorf("%w: %d", ErrUnknownTwilight, int(kind))
	}
	if err := loc.Validate(); err != nil {
		return RiseSet{}, err
	}
	return crossings(loc, date, alt)
}

// GoldenHourFor returns the intervals when the Sun's center is between -4°
// and +6°.
func GoldenHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	return windows(loc, date, sun.AltitudeGoldenLow, sun.AltitudeGoldenHigh)
}

// BlueHourFor returns the intervals when the Sun's center is between -6°
// and -4°.
func BlueHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	return windows(loc, date, sun.AltitudeCivil, sun.AltitudeGoldenLow)
}

func crossings(loc Coordinates, date time.Time, alt float64) (RiseSet, error) {
	ev := sun.EventsForDate(loc.Lat, loc.Lon, date, alt)
	if !ev.OKRise && !ev.OKSet {
		return RiseSet{}, ErrNoRiseNoSet
	}

	tz := date.Location()
	var rs RiseSet
	if ev.OKRise {
		rs.Rise = ev.Rise.In(tz)
	}
	if ev.OKSet {
		rs.Set = ev.Set.In(tz)
	}
	return rs, nil
}

// windows pairs the crossings of low and high: morning runs from the upward
// crossing of low to that of high, evening from the downward crossing of
// high to that of low.
func windows(loc Coordinates, date time.Time, low, high float64) (DaylightPhases, error) {
	if err := loc.Validate(); err != nil {
		return DaylightPhases{}, err
	}

	tz := date.Location()
	lo := sun.EventsForDate(loc.Lat, loc.Lon, date, low)
	hi := sun.EventsForDate(loc.Lat, loc.Lon, date, high)

	var p DaylightPhases
	if lo.OKRise && hi.OKRise && hi.Rise.After(lo.Rise) {
		p.Morning = PhaseWindow{Start: lo.Rise.In(tz), End: hi.Rise.In(tz)}
		p.HasMorning = true
	}
	if hi.OKSet && lo.OKSet && lo.Set.After(hi.Set) {
		p.Evening = PhaseWindow{Start: hi.Set.In(tz), End: lo.Set.In(tz)}
		p.HasEvening = true
	}

	if !p.HasMorning && !p.HasEvening {
		return DaylightPhases{}, ErrNoRiseNoSet
	}
	return p, nil
}
