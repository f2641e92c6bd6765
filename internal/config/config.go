// Package config handles skydome tool configuration loading and management.
package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/thurmanmarka/skydome"
	"github.com/thurmanmarka/skydome/internal/logger"
)

// Solar strategy names.
const (
	StrategyMeeus    = "meeus"
	StrategyAnalytic = "analytic"
)

// Config holds all tool settings.
type Config struct {
	Observer ObserverConfig `yaml:"observer"`
	Solar    SolarConfig    `yaml:"solar"`
	Lunar    LunarConfig    `yaml:"lunar"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ObserverConfig is the default observer location.
type ObserverConfig struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// SolarConfig selects the solar strategy.
type SolarConfig struct {
	Strategy   string `yaml:"strategy"` // meeus or analytic
	Refraction bool   `yaml:"refraction"`
}

// LunarConfig selects the Moon model.
type LunarConfig struct {
	Model string `yaml:"model"` // heuristic or ephemeris
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string            `yaml:"level"`
	File  logger.FileConfig `yaml:"file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Solar: SolarConfig{
			Strategy: StrategyMeeus,
		},
		Lunar: LunarConfig{
			Model: string(skydome.LunarHeuristic),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the observer and the strategy names.
func (c *Config) Validate() error {
	if err := (skydome.Coordinates{Lat: c.Observer.Lat, Lon: c.Observer.Lon}).Validate(); err != nil {
		return fmt.Errorf("observer: %w", err)
	}
	switch c.Solar.Strategy {
	case StrategyMeeus, StrategyAnalytic:
	default:
		return fmt.Errorf("solar.strategy %q: want %s or %s", c.Solar.Strategy, StrategyMeeus, StrategyAnalytic)
	}
	switch skydome.LunarModel(c.Lunar.Model) {
	case skydome.LunarHeuristic, skydome.LunarEphemeris:
	default:
		return fmt.Errorf("lunar.model %q: want %s or %s", c.Lunar.Model, skydome.LunarHeuristic, skydome.LunarEphemeris)
	}
	return nil
}

// ObserverCoordinates returns the configured observer location.
func (c *Config) ObserverCoordinates() skydome.Coordinates {
	return skydome.Coordinates{Lat: c.Observer.Lat, Lon: c.Observer.Lon}
}

// EngineOptions turns the solar and lunar sections into engine options.
func (c *Config) EngineOptions(log *zap.Logger) skydome.Options {
	opts := skydome.Options{
		Lunar:      skydome.LunarModel(c.Lunar.Model),
		Refraction: c.Solar.Refraction,
		Logger:     log,
	}
	if c.Solar.Strategy != StrategyAnalytic {
		opts.Provider = skydome.MeeusProvider{}
	}
	return opts
}
