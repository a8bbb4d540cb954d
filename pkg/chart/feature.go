package chart

import (
	"github.com/mzsvg/mzsvg/pkg/core/axis"
	"github.com/mzsvg/mzsvg/pkg/core/coord"
	"github.com/mzsvg/mzsvg/pkg/core/series"
	"github.com/mzsvg/mzsvg/pkg/spectrum"
)

// FeatureChart draws feature traces over (time, intensity).
type FeatureChart struct {
	*Chart[float64, float32]
}

// NewFeatureChart returns a feature chart with a canvas of the given size.
// Non-positive sizes fall back to 1400x600.
func NewFeatureChart(width, height int, opts ...Option) *FeatureChart {
	if width <= 0 || height <= 0 {
		width, height = SpectrumWidth, SpectrumHeight
	}
	c := New[float64, float32](width, height, opts...)
	c.XAxis.Label = "Time"
	c.YAxis.Label = "Intensity"
	c.YAxis.TickFormat = axis.SciNot(2)
	return &FeatureChart{Chart: c}
}

// AxesFrom sets the axes from f, or widens them if already set. The first
// feature spans (apex, 0) vertically and its elution time padded by 5%
// horizontally.
func (c *FeatureChart) AxesFrom(f *spectrum.Feature) {
	top := f.MaxIntensity()
	if top <= 0 {
		top = 1
	}
	c.IncludeY(coord.NewRange(top, 0), 0, top)

	start, end, ok := f.TimeBounds()
	if !ok {
		start, end = 0, 1
	}
	c.IncludeX(coord.NewRange(start*lowerPad, end*upperPad), start, end)
}

// DrawFeature draws f as a filled trace, inferring axes from f if not yet
// set.
func (c *FeatureChart) DrawFeature(f *spectrum.Feature) error {
	return c.DrawFeatureWithColor(f, "")
}

// DrawFeatureWithColor draws f in the given color. An empty color takes
// the next one from the cycle.
func (c *FeatureChart) DrawFeatureWithColor(f *spectrum.Feature, color string) error {
	_, hasX := c.XRange()
	_, hasY := c.YRange()
	if !hasX || !hasY {
		c.AxesFrom(f)
	}
	s := series.FromFeature(f)
	s.Description().Color = color
	return c.AddSeries(s)
}
