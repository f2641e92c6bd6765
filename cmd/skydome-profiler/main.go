// Command skydome-profiler sweeps a time range and reports how far the
// analytic solar model drifts from the Meeus provider for one observer.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/thurmanmarka/skydome"
	"github.com/thurmanmarka/skydome/internal/logger"
	"github.com/thurmanmarka/skydome/internal/timeutil"
)

type stats struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.sum += v
	s.count++
}

func (s *stats) mean() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// separationDeg is the angle between two unit vectors.
func separationDeg(a, b r3.Vec) float64 {
	return timeutil.Rad2Deg(math.Acos(timeutil.Clamp(r3.Dot(a, b), -1, 1)))
}

type options struct {
	lat, lon float64
	from, to time.Time
	step     time.Duration
	outCSV   string
	verbose  bool
}

type report struct {
	rows       int
	altitude   stats // analytic - meeus, degrees
	azimuth    stats // |analytic - meeus| wrapped, degrees
	separation stats // angle between Sun vectors, arc-minutes
}

func main() {
	fs := flag.NewFlagSet("skydome-profiler", flag.ExitOnError)
	var (
		lat     = fs.Float64("lat", 0, "latitude in degrees (north positive)")
		lon     = fs.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
		fromS   = fs.String("from", "", "start date YYYY-MM-DD (UTC, default: Jan 1 of this year)")
		toS     = fs.String("to", "", "end date YYYY-MM-DD (UTC, exclusive, default: one year after -from)")
		step    = fs.Duration("step", time.Hour, "sampling step")
		outCSV  = fs.String("outcsv", "", "optional path to write per-sample CSV")
		verbose = fs.Bool("verbose", false, "print every sample instead of only the summary")
		debug   = fs.Bool("debug", false, "enable debug logging")
	)
	_ = fs.Parse(os.Args[1:])

	level := "info"
	if *debug {
		level = "debug"
	}
	log := logger.New(level, logger.FileConfig{}, os.Stderr)
	defer func() { _ = log.Sync() }()

	opts := options{lat: *lat, lon: *lon, step: *step, outCSV: *outCSV, verbose: *verbose}

	var err error
	if opts.from, opts.to, err = dateRange(*fromS, *toS, time.Now().UTC()); err != nil {
		log.Fatal("invalid range", zap.Error(err))
	}
	if opts.lat == 0 && opts.lon == 0 {
		log.Warn("lat=0 lon=0 (Gulf of Guinea). Did you mean to set -lat/-lon?")
	}

	rep, err := profile(opts, os.Stdout, log)
	if err != nil {
		log.Fatal("profile failed", zap.Error(err))
	}
	printSummary(os.Stdout, opts, rep)
}

func dateRange(fromS, toS string, now time.Time) (from, to time.Time, err error) {
	from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	if fromS != "" {
		if from, err = time.Parse("2006-01-02", fromS); err != nil {
			return from, to, fmt.Errorf("invalid -from %q: %w", fromS, err)
		}
	}
	to = from.AddDate(1, 0, 0)
	if toS != "" {
		if to, err = time.Parse("2006-01-02", toS); err != nil {
			return from, to, fmt.Errorf("invalid -to %q: %w", toS, err)
		}
	}
	if !to.After(from) {
		return from, to, errors.New("-to must be after -from")
	}
	return from, to, nil
}

func profile(opts options, out io.Writer, log *zap.Logger) (report, error) {
	var rep report
	if opts.step <= 0 {
		return rep, errors.New("-step must be positive")
	}

	analytic := skydome.New(skydome.Options{Logger: log})
	meeus := skydome.New(skydome.Options{Provider: skydome.MeeusProvider{}, Logger: log})

	var w *csv.Writer
	if opts.outCSV != "" {
		f, err := os.Create(opts.outCSV)
		if err != nil {
			return rep, fmt.Errorf("failed to create outcsv %q: %w", opts.outCSV, err)
		}
		defer f.Close()

		w = csv.NewWriter(f)
		defer w.Flush()

		if err := w.Write([]string{
			"time",
			"alt_analytic",
			"alt_meeus",
			"az_analytic",
			"az_meeus",
			"alt_diff",
			"az_diff",
			"separation_arcmin",
			"strategy",
		}); err != nil {
			return rep, fmt.Errorf("failed to write outcsv header: %w", err)
		}
	}

	for t := opts.from; t.Before(opts.to); t = t.Add(opts.step) {
		a, err := analytic.Compute(t, opts.lat, opts.lon)
		if err != nil {
			return rep, err
		}
		m, err := meeus.Compute(t, opts.lat, opts.lon)
		if err != nil {
			return rep, err
		}
		rep.rows++

		altDiff := a.AltitudeDeg - m.AltitudeDeg
		azDiff := math.Abs(timeutil.NormalizeHourAngle(a.AzimuthDeg - m.AzimuthDeg))
		sep := separationDeg(a.Sun, m.Sun) * 60

		rep.altitude.add(altDiff)
		rep.azimuth.add(azDiff)
		rep.separation.add(sep)

		if m.Strategy != "meeus" {
			log.Warn("meeus provider fell back", zap.Time("utc", t))
		}

		if opts.verbose {
			fmt.Fprintf(out, "%s alt %8.3f/%8.3f az %8.3f/%8.3f sep %.3f'\n",
				t.Format(time.RFC3339), a.AltitudeDeg, m.AltitudeDeg, a.AzimuthDeg, m.AzimuthDeg, sep)
		}

		if w != nil {
			rec := []string{
				t.Format(time.RFC3339),
				fmt.Sprintf("%.6f", a.AltitudeDeg),
				fmt.Sprintf("%.6f", m.AltitudeDeg),
				fmt.Sprintf("%.6f", a.AzimuthDeg),
				fmt.Sprintf("%.6f", m.AzimuthDeg),
				fmt.Sprintf("%.6f", altDiff),
				fmt.Sprintf("%.6f", azDiff),
				fmt.Sprintf("%.6f", sep),
				m.Strategy,
			}
			if err := w.Write(rec); err != nil {
				log.Warn("failed to write outcsv row", zap.Time("utc", t), zap.Error(err))
			}
		}
	}

	if w != nil {
		w.Flush()
		if err := w.Error(); err != nil {
			return rep, fmt.Errorf("writing outcsv: %w", err)
		}
	}
	return rep, nil
}

func printSummary(out io.Writer, opts options, rep report) {
	fmt.Fprintln(out, "=== skydome profiler summary ===")
	fmt.Fprintf(out, "Lat/Lon: %.4f / %.4f\n", opts.lat, opts.lon)
	fmt.Fprintf(out, "Range:   %s .. %s step %s\n", opts.from.Format("2006-01-02"), opts.to.Format("2006-01-02"), opts.step)
	fmt.Fprintf(out, "Samples: %d\n", rep.rows)

	if rep.rows == 0 {
		fmt.Fprintln(out, "No samples.")
		return
	}

	section := func(title string, s stats) {
		fmt.Fprintf(out, "\n%s:\n", title)
		fmt.Fprintf(out, "  count: %d\n", s.count)
		fmt.Fprintf(out, "  min:   %.4f\n", s.min)
		fmt.Fprintf(out, "  max:   %.4f\n", s.max)
		fmt.Fprintf(out, "  mean:  %.4f\n", s.mean())
	}
	section("Altitude difference (degrees, analytic - meeus)", rep.altitude)
	section("Azimuth difference (degrees, absolute)", rep.azimuth)
	section("Sun vector separation (arc-minutes)", rep.separation)
}
