// Package config holds the command-line configuration of shapemap.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/paulmach/orb"

	"shapemap/internal/mapview"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// initial view
	Lat  float64
	Lng  float64
	Zoom int

	// value prefilled in the circle radius prompt, meters
	DefaultRadius float64

	// optional reference layer (.geojson, .json, .wkt, .csv, .kml)
	Basemap string

	LogFile   string
	LogLevel  string
	LogFormat string
}

// Default opens over Coimbatore at zoom 5 with a 200 m radius prompt.
func Default() Config {
	return Config{
		Lat:           11.0168,
		Lng:           76.9558,
		Zoom:          5,
		DefaultRadius: 200,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Bind registers the flags on fs with c's current values as defaults.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Float64Var(&c.Lat, "lat", c.Lat, "initial view latitude")
	fs.Float64Var(&c.Lng, "lng", c.Lng, "initial view longitude")
	fs.IntVar(&c.Zoom, "zoom", c.Zoom, "initial zoom level")
	fs.Float64Var(&c.DefaultRadius, "radius", c.DefaultRadius, "default circle radius in meters")
	fs.StringVar(&c.Basemap, "basemap", c.Basemap, "reference layer file (.geojson, .json, .wkt, .csv, .kml)")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file; empty disables logging")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "text or json")
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.Lat < -85.05 || c.Lat > 85.05 {
		return fmt.Errorf("%w: lat %v outside the Web Mercator range", ErrInvalidConfig, c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: lng %v", ErrInvalidConfig, c.Lng)
	}
	if c.Zoom < mapview.MinZoom || c.Zoom > mapview.MaxZoom {
		return fmt.Errorf("%w: zoom %d not in [%d, %d]", ErrInvalidConfig, c.Zoom, mapview.MinZoom, mapview.MaxZoom)
	}
	if !(c.DefaultRadius > 0) {
		return fmt.Errorf("%w: radius must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// Center is the initial view center as lon/lat.
func (c Config) Center() orb.Point { return orb.Point{c.Lng, c.Lat} }
