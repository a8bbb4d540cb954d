package chart

import (
	"github.com/mzsvg/mzsvg/pkg/core/axis"
	"github.com/mzsvg/mzsvg/pkg/core/coord"
	"github.com/mzsvg/mzsvg/pkg/core/series"
	"github.com/mzsvg/mzsvg/pkg/spectrum"
)

// Default spectrum canvas size.
const (
	SpectrumWidth  = 1400
	SpectrumHeight = 600
)

// Margin factors applied to the scan range when the X axis is first set.
const (
	lowerPad = 0.95
	upperPad = 1.05
)

// SpectrumChart draws mass spectra over (m/z, intensity).
type SpectrumChart struct {
	*Chart[float64, float32]
}

// NewSpectrumChart returns a spectrum chart with a canvas of the given size.
// Non-positive sizes fall back to 1400x600.
func NewSpectrumChart(width, height int, opts ...Option) *SpectrumChart {
	if width <= 0 || height <= 0 {
		width, height = SpectrumWidth, SpectrumHeight
	}
	c := New[float64, float32](width, height, opts...)
	c.XAxis.Label = "m/z"
	c.YAxis.Label = "Intensity"
	c.YAxis.TickFormat = axis.Percentile{Precision: 2}
	return &SpectrumChart{Chart: c}
}

// AxesFrom sets the axes from s, or widens them if already set. The first
// spectrum spans (base peak, 0) vertically and its scan range padded by 5%
// horizontally.
func (c *SpectrumChart) AxesFrom(s *spectrum.Spectrum) {
	var top float32 = 1
	if bp, ok := s.BasePeak(); ok && bp.Intensity > 0 {
		top = bp.Intensity
	}
	c.IncludeY(coord.NewRange(top, 0), 0, top)

	w := s.ScanRange()
	c.IncludeX(coord.NewRange(w.Lower*lowerPad, w.Upper*upperPad), w.Lower, w.Upper)
}

func (c *SpectrumChart) ensureAxes(s *spectrum.Spectrum) {
	_, hasX := c.XRange()
	_, hasY := c.YRange()
	if !hasX || !hasY {
		c.AxesFrom(s)
	}
}

// DrawProfile draws the raw arrays as a profile.
func (c *SpectrumChart) DrawProfile(a *spectrum.Arrays) error {
	return c.AddSeries(series.FromProfile(a))
}

// DrawCentroids draws centroided peaks.
func (c *SpectrumChart) DrawCentroids(peaks []spectrum.Peak) error {
	return c.AddSeries(series.FromPeaks(peaks))
}

// DrawDeconvoluted draws deconvoluted peaks at their m/z.
func (c *SpectrumChart) DrawDeconvoluted(peaks []spectrum.DeconvolutedPeak) error {
	return c.AddSeries(series.FromDeconvoluted(peaks))
}

// DrawPrecursor marks the precursor ion.
func (c *SpectrumChart) DrawPrecursor(p *spectrum.Precursor) error {
	return c.AddSeries(series.FromPrecursor(p))
}

// DrawSpectrum draws every layer s carries: the profile when the spectrum
// is in profile mode, centroids, deconvoluted peaks and the precursor when
// it has a positive intensity. Axes are inferred from s if not yet set.
func (c *SpectrumChart) DrawSpectrum(s *spectrum.Spectrum) error {
	c.ensureAxes(s)

	if s.IsProfile() {
		if err := c.DrawProfile(s.Arrays); err != nil {
			return err
		}
	}
	if len(s.Peaks) > 0 {
		if err := c.DrawCentroids(s.Peaks); err != nil {
			return err
		}
	}
	if len(s.Deconvoluted) > 0 {
		if err := c.DrawDeconvoluted(s.Deconvoluted); err != nil {
			return err
		}
	}
	if p := s.Precursor; p != nil && p.Intensity > 0 {
		if err := c.DrawPrecursor(p); err != nil {
			return err
		}
	}
	return nil
}

// ZoomToRange limits X to l and Y to the tallest signal of s inside it.
// Tick labels stay relative to the base peak of s.
func (c *SpectrumChart) ZoomToRange(s *spectrum.Spectrum, l Limits) error {
	if err := c.XLim(l); err != nil {
		return err
	}
	x, _ := c.XRange()
	peak := s.MaxIntensityIn(x.Min(), x.Max())
	if peak <= 0 {
		return nil
	}
	if bp, ok := s.BasePeak(); ok && bp.Intensity > 0 {
		c.YAxis.TickFormat = axis.PercentileOf(2, float64(bp.Intensity))
	}
	return c.YLim(Between(0, float64(peak)))
}
