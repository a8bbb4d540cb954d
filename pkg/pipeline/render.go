package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/mzsvg/mzsvg/pkg/chart"
	"github.com/mzsvg/mzsvg/pkg/errors"
	"github.com/mzsvg/mzsvg/pkg/spectrum"
)

// Document builds the chart for in and returns the SVG document together
// with the number of drawn layers.
func Document(in *Input, opts Options, logger *log.Logger) ([]byte, int, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	chartOpts := buildChartOptions(opts, logger)

	if in.Feature != nil {
		return featureDocument(in.Feature, opts, chartOpts)
	}
	if len(in.Spectra) == 0 {
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "no spectra to draw")
	}
	return spectrumDocument(in.Spectra, opts, chartOpts)
}

func spectrumDocument(spectra []*spectrum.Spectrum, opts Options, chartOpts []chart.Option) ([]byte, int, error) {
	c := chart.NewSpectrumChart(opts.Width, opts.Height, chartOpts...)
	for _, s := range spectra {
		c.AxesFrom(s)
	}
	if err := applyLimits(c.Chart, opts); err != nil {
		return nil, 0, err
	}
	if opts.ZoomY {
		if err := c.ZoomToRange(spectra[0], opts.xlim); err != nil {
			return nil, 0, err
		}
	}
	for _, s := range spectra {
		if err := c.DrawSpectrum(s); err != nil {
			return nil, 0, errors.Wrap(errors.GetCode(err), err, "draw spectrum %q", s.ID)
		}
	}
	data, err := c.SVG()
	return data, c.Canvas().Len(), err
}

func featureDocument(f *spectrum.Feature, opts Options, chartOpts []chart.Option) ([]byte, int, error) {
	c := chart.NewFeatureChart(opts.Width, opts.Height, chartOpts...)
	c.AxesFrom(f)
	if err := applyLimits(c.Chart, opts); err != nil {
		return nil, 0, err
	}
	if err := c.DrawFeatureWithColor(f, opts.Color); err != nil {
		return nil, 0, errors.Wrap(errors.GetCode(err), err, "draw feature %q", f.ID)
	}
	data, err := c.SVG()
	return data, c.Canvas().Len(), err
}

// applyLimits applies the configuration, then the explicit limits of opts
// on top of it.
func applyLimits(c *chart.Chart[float64, float32], opts Options) error {
	if err := opts.Config.Apply(c); err != nil {
		return err
	}
	if !opts.xlim.IsZero() {
		if err := c.XLim(opts.xlim); err != nil {
			return err
		}
	}
	if !opts.ylim.IsZero() {
		if err := c.YLim(opts.ylim); err != nil {
			return err
		}
	}
	return nil
}

func buildChartOptions(opts Options, logger *log.Logger) []chart.Option {
	chartOpts := opts.Config.ChartOptions()
	if opts.Title != "" {
		chartOpts = append(chartOpts, chart.WithTitle(opts.Title))
	}
	return append(chartOpts, chart.WithLogger(logger))
}
