package sun

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
	"go.uber.org/zap"

	"github.com/thurmanmarka/skydome/internal/frame"
	"github.com/thurmanmarka/skydome/internal/timeutil"
)

// Strategy names the path that produced a solar position: the provider's
// Name, or StrategyAnalytic.
type Strategy string

const StrategyAnalytic Strategy = "analytic"

// Provider supplies the apparent RA/Dec of the Sun "of date" (including
// aberration) for an instant. Implementations may fail; the Calculator then
// falls back to the analytic model.
type Provider interface {
	Name() string
	ApparentEquatorial(t time.Time) (Equatorial, error)
}

// MeeusProvider delegates to the Meeus solar theory (VSOP-derived longitude
// with nutation and aberration).
type MeeusProvider struct{}

func (MeeusProvider) Name() string { return "meeus" }

// ApparentEquatorial implements Provider. UT is used in place of TT; the
// ~70 s difference is far below the accuracy needed here.
func (MeeusProvider) ApparentEquatorial(t time.Time) (Equatorial, error) {
	ra, dec := solar.ApparentEquatorial(julian.TimeToJD(t.UTC()))
	return Equatorial{
		RA:  timeutil.Normalize360(unit.Angle(ra).Deg()),
		Dec: dec.Deg(),
	}, nil
}

// ErrInvalidEquatorial is returned by validate for non-finite or
// out-of-range provider output.
var ErrInvalidEquatorial = errors.New("provider returned invalid equatorial coordinates")

func validate(eq Equatorial) error {
	if math.IsNaN(eq.RA) || math.IsInf(eq.RA, 0) ||
		math.IsNaN(eq.Dec) || math.IsInf(eq.Dec, 0) ||
		eq.Dec < -90 || eq.Dec > 90 {
		return fmt.Errorf("%w: ra=%v dec=%v", ErrInvalidEquatorial, eq.RA, eq.Dec)
	}
	return nil
}

// Position is the Sun's direction for one observer and instant.
type Position struct {
	Equatorial Equatorial
	Horizontal frame.Horizontal
	LST        float64 // local sidereal time, degrees
	Strategy   Strategy
}

// Calculator chains an optional primary Provider with the analytic model.
// The zero value is analytic-only with logging disabled. A Calculator holds
// no mutable state and is safe for concurrent use.
type Calculator struct {
	Primary Provider
	Log     *zap.Logger
}

func (c Calculator) logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

// Position returns the Sun's horizontal coordinates at t for an observer at
// (latDeg, lonDeg). Provider failures never surface; they are logged and
// the analytic path is used instead.
func (c Calculator) Position(t time.Time, latDeg, lonDeg float64) Position {
	jd := timeutil.JulianDay(t)
	lst := LocalSidereal(jd, lonDeg)
	log := c.logger()

	eq, strategy := c.equatorial(t, jd, log)
	h := ToHorizontal(eq, latDeg, lst)

	log.Debug("solar position",
		zap.Time("utc", t.UTC()),
		zap.Float64("jd", jd),
		zap.Float64("ra", eq.RA),
		zap.Float64("dec", eq.Dec),
		zap.Float64("lst", lst),
		zap.Float64("hour_angle", HourAngle(lst, eq.RA)),
		zap.Float64("altitude", h.Altitude),
		zap.Float64("azimuth", h.Azimuth),
		zap.String("strategy", string(strategy)),
	)

	return Position{
		Equatorial: eq,
		Horizontal: h,
		LST:        lst,
		Strategy:   strategy,
	}
}

func (c Calculator) equatorial(t time.Time, jd float64, log *zap.Logger) (Equatorial, Strategy) {
	if c.Primary != nil {
		eq, err := callProvider(c.Primary, t)
		if err == nil {
			err = validate(eq)
		}
		if err == nil {
			return eq, Strategy(c.Primary.Name())
		}
		log.Warn("solar provider failed, using analytic model",
			zap.String("provider", c.Primary.Name()),
			zap.Time("utc", t.UTC()),
			zap.Error(err),
		)
	}
	return AnalyticEquatorial(jd), StrategyAnalytic
}

// callProvider turns a provider panic into an error.
func callProvider(p Provider, t time.Time) (eq Equatorial, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider %s panicked: %v", p.Name(), r)
		}
	}()
	return p.ApparentEquatorial(t)
}
