package series

import (
	"cmp"
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/mzsvg/mzsvg/pkg/core/canvas"
	"github.com/mzsvg/mzsvg/pkg/core/svg"
)

// PeakWidth is the half width, in m/z, of the spike drawn for a centroid.
const PeakWidth = 1e-4

// Peak is a centroided signal.
type Peak[X, Y constraints.Float] struct {
	MZ        X
	Intensity Y
}

// DeconvolutedPeak is a charge-deconvolved peak located at its m/z.
type DeconvolutedPeak[X, Y constraints.Float] struct {
	MZ          X
	Intensity   Y
	Charge      int
	NeutralMass float64
}

// Expand turns each peak into three points, (mz-PeakWidth, 0), (mz, I) and
// (mz+PeakWidth, 0), so peaks can be drawn by the continuous renderer.
func Expand[X, Y constraints.Float](peaks []Peak[X, Y]) []Point[X, Y] {
	points := make([]Point[X, Y], 0, len(peaks)*3)
	w := X(PeakWidth)
	for _, p := range peaks {
		points = append(points,
			Point[X, Y]{X: p.MZ - w},
			Point[X, Y]{X: p.MZ, Y: p.Intensity},
			Point[X, Y]{X: p.MZ + w},
		)
	}
	return points
}

// Centroid draws peaks as narrow spikes.
type Centroid[X, Y constraints.Float] struct {
	Peaks []Peak[X, Y]
	desc  Description
}

// NewCentroid copies peaks into a new series.
func NewCentroid[X, Y constraints.Float](peaks []Peak[X, Y], desc Description) *Centroid[X, Y] {
	return &Centroid[X, Y]{Peaks: slices.Clone(peaks), desc: desc}
}

// Description implements [Series].
func (s *Centroid[X, Y]) Description() *Description { return &s.desc }

// SliceX implements [Series].
func (s *Centroid[X, Y]) SliceX(start, end X) {
	s.Peaks = filter(s.Peaks, start, end, func(p Peak[X, Y]) X { return p.MZ })
}

// SliceY implements [Series].
func (s *Centroid[X, Y]) SliceY(start, end Y) {
	s.Peaks = filter(s.Peaks, start, end, func(p Peak[X, Y]) Y { return p.Intensity })
}

// Render implements [Series].
func (s *Centroid[X, Y]) Render(c *canvas.Canvas[X, Y]) (*svg.Element, error) {
	proxy := Continuous[X, Y]{Points: Expand(s.Peaks), desc: s.desc}
	return proxy.Render(c)
}

// DeconvolutedCentroid draws deconvoluted peaks as spikes at their m/z.
// Peaks are sorted by m/z before drawing since deconvolution does not keep
// them ordered.
type DeconvolutedCentroid[X, Y constraints.Float] struct {
	Peaks []DeconvolutedPeak[X, Y]
	desc  Description
}

// NewDeconvolutedCentroid copies peaks into a new series.
func NewDeconvolutedCentroid[X, Y constraints.Float](peaks []DeconvolutedPeak[X, Y], desc Description) *DeconvolutedCentroid[X, Y] {
	return &DeconvolutedCentroid[X, Y]{Peaks: slices.Clone(peaks), desc: desc}
}

// Description implements [Series].
func (s *DeconvolutedCentroid[X, Y]) Description() *Description { return &s.desc }

// SliceX implements [Series].
func (s *DeconvolutedCentroid[X, Y]) SliceX(start, end X) {
	s.Peaks = filter(s.Peaks, start, end, func(p DeconvolutedPeak[X, Y]) X { return p.MZ })
}

// SliceY implements [Series].
func (s *DeconvolutedCentroid[X, Y]) SliceY(start, end Y) {
	s.Peaks = filter(s.Peaks, start, end, func(p DeconvolutedPeak[X, Y]) Y { return p.Intensity })
}

// Render implements [Series].
func (s *DeconvolutedCentroid[X, Y]) Render(c *canvas.Canvas[X, Y]) (*svg.Element, error) {
	peaks := make([]Peak[X, Y], len(s.Peaks))
	for i, p := range s.Peaks {
		peaks[i] = Peak[X, Y]{MZ: p.MZ, Intensity: p.Intensity}
	}
	slices.SortStableFunc(peaks, func(a, b Peak[X, Y]) int { return cmp.Compare(a.MZ, b.MZ) })

	proxy := Continuous[X, Y]{Points: Expand(peaks), desc: s.desc}
	return proxy.Render(c)
}
