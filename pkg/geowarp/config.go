package geowarp

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-loadable renderer configuration: chart sources,
// regions, and pipeline tuning. The per-satellite projection constants are
// deliberately not configuration; they are published once per satellite and
// live in the hard-coded table (see Satellite).
//
// Example:
//
//	charts:
//	  - name: opc-pacific
//	    box: {west: 130, south: 16, east: -115, north: 65, crosses_antimeridian: true}
//	    background: "#ffffff"
//	    background_tolerance: 8
//	    foreground: "#001012"
//	    foreground_tolerance: 20
//	    trim_top: 8
//	    trim_bottom: 36
//	regions:
//	  - name: pacific
//	    box: {west: -225, south: 16, east: -115, north: 65, crosses_antimeridian: true}
//	    width: 2441
//	    height: 1556
//	    satellite: goes-17
//	    chart: opc-pacific
//	fade_window: 3h
//	fade_floor: 64
//	cache_mb: 256
type Config struct {
	Charts  []ChartConfig `yaml:"charts"`
	Regions []Region      `yaml:"regions"`

	// FadeWindow is a Go duration string; the chart overlay fades out this
	// far from its valid time. Empty means the 3h default.
	FadeWindow string `yaml:"fade_window"`

	// FadeFloor is the minimum overlay opacity inside the fade window.
	// Unset keeps the default; an explicit 0 fades all the way out.
	FadeFloor *uint8 `yaml:"fade_floor"`

	// CacheMB bounds the prepared-chart cache. Unset keeps the default;
	// an explicit 0 means unlimited.
	CacheMB *int64 `yaml:"cache_mb"`

	// Font is an optional TrueType font path for frame decoration.
	Font string `yaml:"font"`
}

// ChartConfig is the YAML form of a ChartSource; colors are hex strings.
// Unset tolerances keep the OPC defaults; an explicit 0 keys exact colors
// only.
type ChartConfig struct {
	Name                string      `yaml:"name"`
	Box                 BoundingBox `yaml:"box"`
	Background          string      `yaml:"background"`
	BackgroundTolerance *uint8      `yaml:"background_tolerance"`
	Foreground          string      `yaml:"foreground"`
	ForegroundTolerance *uint8      `yaml:"foreground_tolerance"`
	TrimTop             int         `yaml:"trim_top"`
	TrimBottom          int         `yaml:"trim_bottom"`
	TrimLeft            int         `yaml:"trim_left"`
	TrimRight           int         `yaml:"trim_right"`
}

// Source converts the YAML form to a ChartSource. Unset colors fall back to
// the OPC defaults.
func (c ChartConfig) Source() (ChartSource, error) {
	pal := DefaultOPCPalette()
	if c.Background != "" {
		bg, err := parseHexColor(c.Background)
		if err != nil {
			return ChartSource{}, fmt.Errorf("chart %q background: %w", c.Name, err)
		}
		pal.Background = bg
	}
	if c.Foreground != "" {
		fg, err := parseHexColor(c.Foreground)
		if err != nil {
			return ChartSource{}, fmt.Errorf("chart %q foreground: %w", c.Name, err)
		}
		pal.Foreground = fg
	}
	if c.BackgroundTolerance != nil {
		pal.BackgroundTolerance = *c.BackgroundTolerance
	}
	if c.ForegroundTolerance != nil {
		pal.ForegroundTolerance = *c.ForegroundTolerance
	}
	return ChartSource{
		Name:       c.Name,
		Box:        c.Box,
		Palette:    pal,
		TrimTop:    c.TrimTop,
		TrimBottom: c.TrimBottom,
		TrimLeft:   c.TrimLeft,
		TrimRight:  c.TrimRight,
	}, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration bytes and validates them.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	names := make(map[string]bool)
	for _, chart := range c.Charts {
		if chart.Name == "" {
			return fmt.Errorf("config: chart source without a name")
		}
		if names[chart.Name] {
			return fmt.Errorf("config: duplicate chart source %q", chart.Name)
		}
		names[chart.Name] = true
		if err := chart.Box.Validate(); err != nil {
			return fmt.Errorf("config: chart %q: %w", chart.Name, err)
		}
	}
	for _, region := range c.Regions {
		if region.Name == "" {
			return fmt.Errorf("config: region without a name")
		}
		if region.Width <= 0 || region.Height <= 0 {
			return fmt.Errorf("config: region %q has non-positive resolution %dx%d", region.Name, region.Width, region.Height)
		}
		if err := region.Box.Validate(); err != nil {
			return fmt.Errorf("config: region %q: %w", region.Name, err)
		}
		if _, err := LookupSatellite(region.Satellite); err != nil {
			return fmt.Errorf("config: region %q: %w", region.Name, err)
		}
		if region.Chart != "" && !names[region.Chart] {
			return fmt.Errorf("config: region %q references unknown chart source %q", region.Name, region.Chart)
		}
	}
	if c.FadeWindow != "" {
		if _, err := time.ParseDuration(c.FadeWindow); err != nil {
			return fmt.Errorf("config: fade_window: %w", err)
		}
	}
	return nil
}

// RendererOptions converts the configuration into renderer options.
func (c *Config) RendererOptions() (RendererOptions, error) {
	opts := DefaultRendererOptions()
	for _, chart := range c.Charts {
		src, err := chart.Source()
		if err != nil {
			return RendererOptions{}, err
		}
		opts.ChartSources = append(opts.ChartSources, src)
	}
	if c.FadeWindow != "" {
		window, err := time.ParseDuration(c.FadeWindow)
		if err != nil {
			return RendererOptions{}, fmt.Errorf("config: fade_window: %w", err)
		}
		opts.FadeWindow = window
	}
	if c.FadeFloor != nil {
		opts.FadeFloor = *c.FadeFloor
	}
	if c.CacheMB != nil {
		opts.CacheBytes = *c.CacheMB * 1024 * 1024
	}
	opts.FontPath = c.Font
	return opts, nil
}

// parseHexColor parses "#RRGGBB" (or "RRGGBB") into an opaque color.
func parseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
