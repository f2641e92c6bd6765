package config

import "flag"

// Flags are the command-line overrides shared by the skydome tools. Each
// subcommand binds them on its own FlagSet.
type Flags struct {
	fs *flag.FlagSet

	config     *string
	debug      *bool
	strategy   *string
	lunar      *string
	refraction *bool
	lat        *float64
	lon        *float64
}

// BindFlags registers the shared flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:         fs,
		config:     fs.String("config", "", "path to config file"),
		debug:      fs.Bool("debug", false, "enable debug logging"),
		strategy:   fs.String("strategy", "", "solar strategy: meeus or analytic"),
		lunar:      fs.String("lunar", "", "moon model: heuristic or ephemeris"),
		refraction: fs.Bool("refraction", false, "add approximate refraction to the solar altitude"),
		lat:        fs.Float64("lat", 0, "latitude in degrees (north positive)"),
		lon:        fs.Float64("lon", 0, "longitude in degrees (east positive, west negative)"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply copies explicitly set flags over cfg. Unset flags leave the file
// or default value alone, so -lat 0 still overrides a configured latitude.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if *f.debug {
				cfg.Logging.Level = "debug"
			}
		case "strategy":
			cfg.Solar.Strategy = *f.strategy
		case "lunar":
			cfg.Lunar.Model = *f.lunar
		case "refraction":
			cfg.Solar.Refraction = *f.refraction
		case "lat":
			cfg.Observer.Lat = *f.lat
		case "lon":
			cfg.Observer.Lon = *f.lon
		}
	})
}
