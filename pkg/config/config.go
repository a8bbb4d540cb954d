// Package config loads chart settings from TOML files.
//
// A configuration file describes everything about a chart that is not data:
// canvas size, axis styling, palette, fonts, stylesheet, optional axis limits
// and the cache and server settings of the CLI. Every field is optional;
// zero values keep the defaults of the chart kind being drawn.
//
//	width = 1200
//	height = 400
//	palette = ["black", "crimson", "steelblue"]
//	nice_ticks = true
//	xlim = "200-1200"
//
//	[y_axis]
//	tick_format = "scinot"
//	precision = 1
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//
// Command-line flags override file values.
package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/exp/constraints"

	"github.com/mzsvg/mzsvg/pkg/cache"
	"github.com/mzsvg/mzsvg/pkg/chart"
	"github.com/mzsvg/mzsvg/pkg/core/axis"
	"github.com/mzsvg/mzsvg/pkg/errors"
)

// Config is the content of a configuration file.
type Config struct {
	Width      int      `toml:"width,omitempty"`
	Height     int      `toml:"height,omitempty"`
	Title      string   `toml:"title,omitempty"`
	Palette    []string `toml:"palette,omitempty"`
	FontFamily string   `toml:"font_family,omitempty"`
	CSS        string   `toml:"css,omitempty"`
	CSSFile    string   `toml:"css_file,omitempty"`
	NiceTicks  bool     `toml:"nice_ticks,omitempty"`
	XLim       string   `toml:"xlim,omitempty"`
	YLim       string   `toml:"ylim,omitempty"`
	PNGScale   float64  `toml:"png_scale,omitempty"`

	XAxis AxisConfig `toml:"x_axis,omitempty"`
	YAxis AxisConfig `toml:"y_axis,omitempty"`

	Cache  CacheConfig  `toml:"cache,omitempty"`
	Server ServerConfig `toml:"server,omitempty"`
}

// AxisConfig overrides the settings of one axis.
type AxisConfig struct {
	Label         string    `toml:"label,omitempty"`
	Orientation   string    `toml:"orientation,omitempty"`
	TickCount     int       `toml:"tick_count,omitempty"`
	TickValues    []float64 `toml:"tick_values,omitempty"`
	TickFormat    string    `toml:"tick_format,omitempty"`
	Precision     *int      `toml:"precision,omitempty"`
	TickPadding   float64   `toml:"tick_padding,omitempty"`
	TickSizeInner float64   `toml:"tick_size_inner,omitempty"`
	TickSizeOuter float64   `toml:"tick_size_outer,omitempty"`
	TickLabelSize float64   `toml:"tick_label_size,omitempty"`
	LabelSize     float64   `toml:"label_size,omitempty"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Disabled bool   `toml:"disabled,omitempty"`
	Dir      string `toml:"dir,omitempty"`
	RedisURL string `toml:"redis_url,omitempty"`
	Prefix   string `toml:"prefix,omitempty"`
}

// ServerConfig configures `mzsvg serve`.
type ServerConfig struct {
	Addr         string `toml:"addr,omitempty"`
	MaxBodyBytes int64  `toml:"max_body_bytes,omitempty"`
}

// Defaults for the server.
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 32 << 20
)

// Default returns an empty configuration with the server defaults filled in.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: DefaultAddr, MaxBodyBytes: DefaultMaxBodyBytes},
	}
}

// Load reads and validates the TOML file at path. Keys the file sets but
// Config does not know are rejected. A relative css_file is resolved against
// the working directory and read into CSS.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "config %s", path)
	}
	if cfg.CSSFile != "" && cfg.CSS == "" {
		css, err := os.ReadFile(cfg.CSSFile)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "css_file %s", cfg.CSSFile)
		}
		cfg.CSS = string(css)
	}
	return cfg, nil
}

// Parse decodes and validates TOML data.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and that limits and tick formats parse.
func (c *Config) Validate() error {
	if c.Width != 0 || c.Height != 0 {
		if err := errors.ValidateDimensions(c.Width, c.Height); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "width/height")
		}
	}
	if c.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "png_scale must be positive, got %g", c.PNGScale)
	}
	if _, err := chart.ParseLimits(c.XLim); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "xlim")
	}
	if _, err := chart.ParseLimits(c.YLim); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "ylim")
	}
	for name, a := range map[string]AxisConfig{"x_axis": c.XAxis, "y_axis": c.YAxis} {
		if err := a.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", name)
		}
	}
	return nil
}

func (a AxisConfig) validate() error {
	if a.TickCount < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tick_count must not be negative")
	}
	if a.Orientation != "" {
		if _, err := axis.ParseOrientation(a.Orientation); err != nil {
			return err
		}
	}
	if a.TickFormat != "" || a.Precision != nil {
		if _, err := a.tickFormat(); err != nil {
			return err
		}
	}
	return nil
}

func (a AxisConfig) tickFormat() (axis.TickFormat, error) {
	p := 2
	if a.Precision != nil {
		p = *a.Precision
	}
	return axis.ParseTickFormat(a.TickFormat, p)
}

// Size returns the configured canvas size, or zeros when unset.
func (c *Config) Size() (int, int) { return c.Width, c.Height }

// ChartOptions returns the construction options the file sets.
func (c *Config) ChartOptions() []chart.Option {
	var opts []chart.Option
	if len(c.Palette) > 0 {
		opts = append(opts, chart.WithPalette(c.Palette...))
	}
	if c.FontFamily != "" {
		opts = append(opts, chart.WithFontFamily(c.FontFamily))
	}
	if c.CSS != "" {
		opts = append(opts, chart.WithCSS(c.CSS))
	}
	if c.Title != "" {
		opts = append(opts, chart.WithTitle(c.Title))
	}
	if c.NiceTicks {
		opts = append(opts, chart.WithNiceTicks())
	}
	return opts
}

// Apply sets the axis overrides and limits on c. Limits need the axis
// ranges, so Apply belongs after the ranges are inferred and before any
// series is drawn.
func (c *Config) Apply(ch *chart.Chart[float64, float32]) error {
	if err := ApplyAxis(c.XAxis, &ch.XAxis); err != nil {
		return err
	}
	if err := ApplyAxis(c.YAxis, &ch.YAxis); err != nil {
		return err
	}
	if l, _ := chart.ParseLimits(c.XLim); !l.IsZero() {
		if err := ch.XLim(l); err != nil {
			return err
		}
	}
	if l, _ := chart.ParseLimits(c.YLim); !l.IsZero() {
		if err := ch.YLim(l); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAxis copies the set fields of a onto p.
func ApplyAxis[T constraints.Float](a AxisConfig, p *axis.Props[T]) error {
	if a.Label != "" {
		p.Label = a.Label
	}
	if a.Orientation != "" {
		o, err := axis.ParseOrientation(a.Orientation)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "orientation")
		}
		p.Orientation = o
	}
	if a.TickCount > 0 {
		p.TickCount = a.TickCount
	}
	if len(a.TickValues) > 0 {
		p.TickValues = make([]T, len(a.TickValues))
		for i, v := range a.TickValues {
			p.TickValues[i] = T(v)
		}
	}
	if a.TickFormat != "" || a.Precision != nil {
		f, err := a.tickFormat()
		if err != nil {
			return err
		}
		p.TickFormat = f
	}
	setIf(&p.TickPadding, a.TickPadding)
	setIf(&p.TickSizeInner, a.TickSizeInner)
	setIf(&p.TickSizeOuter, a.TickSizeOuter)
	setIf(&p.TickLabelSize, a.TickLabelSize)
	setIf(&p.LabelSize, a.LabelSize)
	return nil
}

func setIf(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

// Hash identifies the rendering-relevant content of the configuration for
// cache keys. Cache and server settings do not contribute.
func (c *Config) Hash() string {
	if c == nil {
		return ""
	}
	clone := *c
	clone.Cache, clone.Server = CacheConfig{}, ServerConfig{}
	clone.CSSFile = ""

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(clone); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}

// Encode writes c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}
