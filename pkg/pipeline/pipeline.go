// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP service.
//
// # Architecture
//
// A run has three stages:
//
//  1. Decode: read the JSON input into spectra or a feature and compute the
//     canonical input hash
//  2. Document: build the chart and serialize the SVG document
//  3. Rasterize: convert the document to each requested raster format
//
// Stages 2 and 3 are cached. The document is keyed by the input hash and the
// chart options, each raster artifact by the document hash and the raster
// options. A failed rasterization fails only its own format; the SVG
// document and other formats are still returned.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{
//	    Kind:    pipeline.KindSpectrum,
//	    Formats: []string{"svg", "png"},
//	    XLim:    "200-1200",
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"slices"
	"time"

	"github.com/mzsvg/mzsvg/pkg/cache"
	"github.com/mzsvg/mzsvg/pkg/chart"
	"github.com/mzsvg/mzsvg/pkg/config"
	"github.com/mzsvg/mzsvg/pkg/core/render"
	"github.com/mzsvg/mzsvg/pkg/errors"
)

// Input kinds.
const (
	KindSpectrum = "spectrum"
	KindFeature  = "feature"
	KindOverlay  = "overlay"
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ValidKinds is the set of supported input kinds.
var ValidKinds = map[string]bool{
	KindSpectrum: true,
	KindFeature:  true,
	KindOverlay:  true,
}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Kind     string   `json:"kind"`
	Formats  []string `json:"formats,omitempty"`
	Width    int      `json:"width,omitempty"`
	Height   int      `json:"height,omitempty"`
	XLim     string   `json:"xlim,omitempty"`
	YLim     string   `json:"ylim,omitempty"`
	ZoomY    bool     `json:"zoom_y,omitempty"` // fit Y to the tallest peak inside XLim
	Title    string   `json:"title,omitempty"`
	Color    string   `json:"color,omitempty"` // feature color, empty uses the palette
	PNGScale float64  `json:"png_scale,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"` // bypass cache reads

	// Index or ScanID picks one spectrum out of a spectrum list for
	// KindSpectrum. Index is 0-based.
	Index  *int   `json:"index,omitempty"`
	ScanID string `json:"scan_id,omitempty"`

	// Config supplies file-level settings. Fields above take precedence.
	Config *config.Config `json:"-"`

	xlim, ylim chart.Limits
	validated  bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// InputHash is the hash of the canonical input encoding.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Failures holds the formats that could not be produced.
	Failures map[string]error

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records       int
	DecodeTime    time.Duration
	DocumentTime  time.Duration
	RasterizeTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	DocumentHit  bool
	ArtifactHits []string
}

// OK reports whether every requested format was produced.
func (r *Result) OK() bool { return len(r.Failures) == 0 }

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKind checks that an input kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid kind: %q (must be one of: spectrum, feature, overlay)", kind)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults from the
// configuration. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if o.Config == nil {
		o.Config = config.Default()
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Width == 0 && o.Height == 0 {
		o.Width, o.Height = o.Config.Size()
	}
	if o.Width != 0 || o.Height != 0 {
		if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
			return err
		}
	}
	if o.PNGScale == 0 {
		o.PNGScale = o.Config.PNGScale
	}
	if o.PNGScale <= 0 {
		o.PNGScale = render.DefaultPNGScale
	}

	var err error
	if o.xlim, err = chart.ParseLimits(o.XLim); err != nil {
		return err
	}
	if o.ylim, err = chart.ParseLimits(o.YLim); err != nil {
		return err
	}
	if o.Index != nil || o.ScanID != "" {
		if o.Kind != KindSpectrum {
			return errors.New(errors.ErrCodeInvalidInput, "selecting a spectrum needs kind %s, got %s", KindSpectrum, o.Kind)
		}
		if o.Index != nil && o.ScanID != "" {
			return errors.New(errors.ErrCodeInvalidInput, "select a spectrum by index or by id, not both")
		}
		if o.Index != nil && *o.Index < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "spectrum index must not be negative, got %d", *o.Index)
		}
	}
	if o.ZoomY && o.xlim.IsZero() {
		return errors.New(errors.ErrCodeInvalidRange, "zooming the y axis needs an x range")
	}
	o.validated = true
	return nil
}

// DocumentKeyOpts returns cache key options for the SVG document.
func (o *Options) DocumentKeyOpts() cache.DocumentKeyOpts {
	return cache.DocumentKeyOpts{
		Kind:       o.Kind,
		Width:      o.Width,
		Height:     o.Height,
		XLimits:    o.XLim,
		YLimits:    o.YLim,
		ZoomY:      o.ZoomY,
		Title:      o.Title,
		Color:      o.Color,
		ConfigHash: o.Config.Hash(),
	}
}

// ArtifactKeyOpts returns cache key options for a raster format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		k.Scale = o.PNGScale
	case FormatPDF:
		k.DPI = render.DefaultPDFDPI
	}
	return k
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
