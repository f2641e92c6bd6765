package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/thurmanmarka/skydome"
	"github.com/thurmanmarka/skydome/internal/config"
	"github.com/thurmanmarka/skydome/internal/logger"
	"github.com/thurmanmarka/skydome/internal/timeutil"
)

func main() {
	// No args or a leading flag means compute.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		os.Exit(run("compute", os.Args[1:], os.Stdout))
	}

	switch os.Args[1] {
	case "compute", "phase", "riseset":
		os.Exit(run(os.Args[1], os.Args[2:], os.Stdout))
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `skydome - Sun and Moon directions for an observer

Usage:
  skydome [compute] [flags]    # Sun/Moon vectors for one instant (default)
  skydome phase [flags]        # Moon phase / illumination
  skydome riseset [flags]      # sunrise, sunset, twilight, golden/blue hour

Run "skydome <subcommand> -h" for flags.
`)
}

// app carries what every subcommand needs after flag parsing.
type app struct {
	cfg *config.Config
	log *zap.Logger
	out io.Writer
}

func run(cmd string, args []string, out io.Writer) int {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	shared := config.BindFlags(fs)

	var sub func(*app) error
	switch cmd {
	case "compute":
		sub = computeCmd(fs)
	case "phase":
		sub = phaseCmd(fs)
	case "riseset":
		sub = riseSetCmd(fs)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(shared)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skydome: %v\n", err)
		return 1
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.File, os.Stderr)
	defer func() { _ = log.Sync() }()

	if cfg.Observer.Lat == 0 && cfg.Observer.Lon == 0 {
		log.Warn("lat=0 lon=0 (Gulf of Guinea); use -lat and -lon or a config file to set a real location")
	}

	if err := sub(&app{cfg: cfg, log: log, out: out}); err != nil {
		log.Error(cmd+" failed", zap.Error(err))
		return 1
	}
	return 0
}

// instant resolves -local (civil time at the observer's longitude) or -utc
// (RFC 3339); neither means now.
func instant(local, utc string, lon float64) (time.Time, error) {
	switch {
	case local != "" && utc != "":
		return time.Time{}, errors.New("use only one of -local and -utc")
	case local != "":
		return skydome.LocalToUTC(local, lon)
	case utc != "":
		t, err := time.Parse(time.RFC3339, utc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid -utc %q: %w", utc, err)
		}
		return t.UTC(), nil
	default:
		return time.Now().UTC(), nil
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ---------------------
// compute
// ---------------------

type vec [3]float64

func toVec(v r3.Vec) vec { return vec{v.X, v.Y, v.Z} }

type computeOutput struct {
	Time         time.Time `json:"time"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Sun          vec       `json:"sun_ecef"`
	Moon         vec       `json:"moon_ecef"`
	Observer     vec       `json:"observer_ecef"`
	SunENU       vec       `json:"sun_enu"`
	MoonENU      vec       `json:"moon_enu"`
	Altitude     float64   `json:"altitude_deg"`
	Azimuth      float64   `json:"azimuth_deg"`
	Illumination float64   `json:"illumination"`
	MoonPhase    string    `json:"moon_phase"`
	Strategy     string    `json:"strategy"`
	Lunar        string    `json:"lunar_model"`
}

func computeCmd(fs *flag.FlagSet) func(*app) error {
	local := fs.String("local", "", "local civil time YYYY-MM-DDTHH:mm at the observer's longitude")
	utc := fs.String("utc", "", "instant in RFC 3339 (e.g. 2024-06-21T04:00:00Z)")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	return func(a *app) error {
		obs := a.cfg.ObserverCoordinates()
		t, err := instant(*local, *utc, obs.Lon)
		if err != nil {
			return err
		}

		eng := skydome.New(a.cfg.EngineOptions(a.log))
		e, err := eng.Compute(t, obs.Lat, obs.Lon)
		if err != nil {
			return err
		}

		if *jsonOut {
			return writeJSON(a.out, computeOutput{
				Time:         e.Time,
				Latitude:     obs.Lat,
				Longitude:    obs.Lon,
				Sun:          toVec(e.Sun),
				Moon:         toVec(e.Moon),
				Observer:     toVec(e.Observer),
				SunENU:       toVec(e.SunENU),
				MoonENU:      toVec(e.MoonENU),
				Altitude:     e.AltitudeDeg,
				Azimuth:      e.AzimuthDeg,
				Illumination: e.Illumination,
				MoonPhase:    e.MoonPhase,
				Strategy:     e.Strategy,
				Lunar:        string(e.Lunar),
			})
		}

		fmt.Fprintf(a.out, "Sky for lat=%.6f lon=%.6f at %s\n\n", obs.Lat, obs.Lon, e.Time.Format(time.RFC3339))
		fmt.Fprintf(a.out, "  Sun altitude : %8.3f°\n", e.AltitudeDeg)
		fmt.Fprintf(a.out, "  Sun azimuth  : %8.3f°\n", e.AzimuthDeg)
		fmt.Fprintf(a.out, "  Sun (ECEF)   : %+.6f %+.6f %+.6f\n", e.Sun.X, e.Sun.Y, e.Sun.Z)
		fmt.Fprintf(a.out, "  Moon (ECEF)  : %+.6f %+.6f %+.6f\n", e.Moon.X, e.Moon.Y, e.Moon.Z)
		fmt.Fprintf(a.out, "  Up (ECEF)    : %+.6f %+.6f %+.6f\n", e.Observer.X, e.Observer.Y, e.Observer.Z)
		fmt.Fprintf(a.out, "  Illumination : %.3f (%s)\n", e.Illumination, e.MoonPhase)
		fmt.Fprintf(a.out, "  Models       : sun=%s moon=%s\n", e.Strategy, e.Lunar)
		return nil
	}
}

// ---------------------
// phase
// ---------------------

func phaseCmd(fs *flag.FlagSet) func(*app) error {
	local := fs.String("local", "", "local civil time YYYY-MM-DDTHH:mm at the observer's longitude")
	utc := fs.String("utc", "", "instant in RFC 3339")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	return func(a *app) error {
		t, err := instant(*local, *utc, a.cfg.Observer.Lon)
		if err != nil {
			return err
		}
		p := skydome.MoonPhaseAt(t)

		if *jsonOut {
			return writeJSON(a.out, p)
		}

		fmt.Fprintf(a.out, "Moon phase at %s\n", p.Time.Format(time.RFC3339))
		fmt.Fprintf(a.out, "  Name       : %s\n", p.Name)
		fmt.Fprintf(a.out, "  Fraction   : %.3f (%.1f%% illuminated)\n", p.Fraction, p.Fraction*100)
		fmt.Fprintf(a.out, "  Elongation : %.2f°\n", p.Elongation)
		if p.Waxing {
			fmt.Fprintf(a.out, "  Trend      : Waxing (illumination increasing)\n")
		} else {
			fmt.Fprintf(a.out, "  Trend      : Waning (illumination decreasing)\n")
		}
		return nil
	}
}

// ---------------------
// riseset
// ---------------------

type window struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

type riseSetOutput struct {
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Date      string            `json:"date"` // YYYY-MM-DD
	Offset    int               `json:"utc_offset_hours"`
	Sunrise   *time.Time        `json:"sunrise,omitempty"`
	Sunset    *time.Time        `json:"sunset,omitempty"`
	Daylight  float64           `json:"daylight_hours,omitempty"`
	Twilight  map[string]window `json:"twilight,omitempty"`
	Golden    []window          `json:"golden_hour,omitempty"`
	Blue      []window          `json:"blue_hour,omitempty"`
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func phaseWindows(p skydome.DaylightPhases) []window {
	var ws []window
	if p.HasMorning {
		ws = append(ws, window{timePtr(p.Morning.Start), timePtr(p.Morning.End)})
	}
	if p.HasEvening {
		ws = append(ws, window{timePtr(p.Evening.Start), timePtr(p.Evening.End)})
	}
	return ws
}

func riseSetCmd(fs *flag.FlagSet) func(*app) error {
	dateS := fs.String("date", "", "date in YYYY-MM-DD (defaults to today at the observer's longitude)")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	return func(a *app) error {
		obs := a.cfg.ObserverCoordinates()

		// Same whole-hour zone as -local.
		offset := timeutil.ZoneOffsetHours(obs.Lon)
		zone := time.FixedZone(fmt.Sprintf("UTC%+d", offset), offset*3600)

		var date time.Time
		if *dateS == "" {
			now := time.Now().In(zone)
			date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, zone)
		} else {
			var err error
			date, err = time.ParseInLocation("2006-01-02", *dateS, zone)
			if err != nil {
				return fmt.Errorf("invalid -date %q: %w", *dateS, err)
			}
		}

		out := riseSetOutput{
			Latitude:  obs.Lat,
			Longitude: obs.Lon,
			Date:      date.Format("2006-01-02"),
			Offset:    offset,
			Twilight:  map[string]window{},
		}

		rs, err := skydome.SunRiseSet(obs, date)
		switch {
		case err == nil:
			out.Sunrise, out.Sunset = timePtr(rs.Rise), timePtr(rs.Set)
			if h, err := skydome.DaylightHours(obs, date); err == nil {
				out.Daylight = h
			}
		case errors.Is(err, skydome.ErrNoRiseNoSet):
			a.log.Info("sun does not rise or set on this date", zap.String("date", out.Date))
		default:
			return err
		}

		for _, k := range []skydome.TwilightKind{skydome.TwilightCivil, skydome.TwilightNautical, skydome.TwilightAstronomical} {
			tw, err := skydome.TwilightFor(obs, date, k)
			if err != nil {
				if errors.Is(err, skydome.ErrNoRiseNoSet) {
					continue
				}
				return err
			}
			out.Twilight[k.String()] = window{timePtr(tw.Rise), timePtr(tw.Set)}
		}
		if g, err := skydome.GoldenHourFor(obs, date); err == nil {
			out.Golden = phaseWindows(g)
		}
		if b, err := skydome.BlueHourFor(obs, date); err == nil {
			out.Blue = phaseWindows(b)
		}

		if *jsonOut {
			return writeJSON(a.out, out)
		}
		printRiseSet(a.out, out)
		return nil
	}
}

func clock(t *time.Time) string {
	if t == nil {
		return "--:--"
	}
	return t.Format("15:04")
}

func printRiseSet(w io.Writer, o riseSetOutput) {
	fmt.Fprintf(w, "Sun for lat=%.6f lon=%.6f on %s (UTC%+d)\n\n", o.Latitude, o.Longitude, o.Date, o.Offset)
	fmt.Fprintf(w, "  Sunrise  : %s\n", clock(o.Sunrise))
	fmt.Fprintf(w, "  Sunset   : %s\n", clock(o.Sunset))
	if o.Daylight > 0 {
		fmt.Fprintf(w, "  Daylight : %.2f h\n", o.Daylight)
	}
	for _, k := range []string{"civil", "nautical", "astronomical"} {
		if tw, ok := o.Twilight[k]; ok {
			fmt.Fprintf(w, "  %-13s: dawn %s  dusk %s\n", k, clock(tw.Start), clock(tw.End))
		}
	}
	for _, g := range o.Golden {
		fmt.Fprintf(w, "  Golden hour  : %s - %s\n", clock(g.Start), clock(g.End))
	}
	for _, b := range o.Blue {
		fmt.Fprintf(w, "  Blue hour    : %s - %s\n", clock(b.Start), clock(b.End))
	}
}
