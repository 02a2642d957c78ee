// Package config holds the on-disk run configuration (YAML). A run is fully
// described by its file: transmitter, receivers, date range, fixed zone, and
// chart output settings. There is no persisted state between runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/grey/greyline/internal/ephemeris"
	"github.com/grey/greyline/internal/geodesy"
)

// dateLayout is the form of start_date and end_date.
const dateLayout = "2006-01-02"

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Transmitter Transmitter `yaml:"transmitter"`
	Receivers   []Receiver  `yaml:"receivers"`

	// StartDate is inclusive, EndDate exclusive.
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`

	// Timezone is the single fixed zone all day windows and minute-of-day
	// values are expressed in. Defaults to UTC.
	Timezone string `yaml:"timezone"`

	Ephemeris Ephemeris `yaml:"ephemeris"`
	Output    Output    `yaml:"output"`

	// Concurrency bounds how many receivers are processed in parallel.
	Concurrency int `yaml:"concurrency"`

	// AdminAddr, if set, exposes /metrics, /healthz and /readyz during the run.
	AdminAddr string `yaml:"admin_addr"`

	start, end time.Time
	zone       *time.Location
}

// Transmitter is the fixed transmitter site.
type Transmitter struct {
	Name       string  `yaml:"name"`
	Lat        float64 `yaml:"lat"`
	Lon        float64 `yaml:"lon"`
	ElevationM float64 `yaml:"elevation_m"`
}

// Receiver is one receive site to chart a circuit to.
type Receiver struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

// Ephemeris selects the event source backend.
type Ephemeris struct {
	Backend string `yaml:"backend"`
}

// Output controls chart rendering and persistence.
type Output struct {
	Dir           string  `yaml:"dir"`
	Format        string  `yaml:"format"` // png or svg
	RoundToMinute bool    `yaml:"round_to_minute"`
	WidthIn       float64 `yaml:"width_in"`
	HeightIn      float64 `yaml:"height_in"`
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.Ephemeris.Backend == "" {
		c.Ephemeris.Backend = ephemeris.BackendSunrise
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "charts"
	}
	if c.Output.Format == "" {
		c.Output.Format = "png"
	}
	if c.Output.WidthIn <= 0 {
		c.Output.WidthIn = 12
	}
	if c.Output.HeightIn <= 0 {
		c.Output.HeightIn = 9
	}
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
}

// Validate checks the configuration and resolves the zone and date range.
func (c *Config) Validate() error {
	if c.Transmitter.Name == "" {
		return errors.New("transmitter.name is required")
	}
	if err := checkCoords(c.Transmitter.Name, c.Transmitter.Lat, c.Transmitter.Lon); err != nil {
		return err
	}

	if len(c.Receivers) == 0 {
		return errors.New("at least one receiver is required")
	}
	for _, rx := range c.Receivers {
		if rx.Name == "" {
			return errors.New("every receiver needs a name")
		}
		if err := checkCoords(rx.Name, rx.Lat, rx.Lon); err != nil {
			return err
		}
	}

	zone, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	c.zone = zone

	start, err := time.ParseInLocation(dateLayout, c.StartDate, zone)
	if err != nil {
		return fmt.Errorf("start_date: %w", err)
	}
	end, err := time.ParseInLocation(dateLayout, c.EndDate, zone)
	if err != nil {
		return fmt.Errorf("end_date: %w", err)
	}
	if !end.After(start) {
		return fmt.Errorf("end_date %s must be after start_date %s", c.EndDate, c.StartDate)
	}
	c.start, c.end = start, end

	if _, err := ephemeris.New(c.Ephemeris.Backend); err != nil {
		return err
	}

	switch c.Output.Format {
	case "png", "svg":
	default:
		return fmt.Errorf("output.format %q not supported (png, svg)", c.Output.Format)
	}

	return nil
}

func checkCoords(name string, lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%s: latitude %.4f out of range [-90, 90]", name, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%s: longitude %.4f out of range [-180, 180]", name, lon)
	}
	return nil
}

// Zone returns the resolved fixed zone. Valid after Validate.
func (c *Config) Zone() *time.Location {
	return c.zone
}

// DateList returns the midnights of every date in [start_date, end_date) in
// the fixed zone, in order. Valid after Validate.
func (c *Config) DateList() []time.Time {
	var dates []time.Time
	for d := c.start; d.Before(c.end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// StartYear returns the year of the start date, used in chart file names.
func (c *Config) StartYear() int {
	return c.start.Year()
}

// TransmitterLocation returns the transmitter as a geodesy location.
func (c *Config) TransmitterLocation() geodesy.Location {
	return geodesy.Location{
		Name:       c.Transmitter.Name,
		Lat:        c.Transmitter.Lat,
		Lon:        c.Transmitter.Lon,
		ElevationM: c.Transmitter.ElevationM,
	}
}

// Location returns the receiver as a geodesy location.
func (r Receiver) Location() geodesy.Location {
	return geodesy.Location{Name: r.Name, Lat: r.Lat, Lon: r.Lon}
}
