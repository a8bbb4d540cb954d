// Package series turns typed scientific data into drawable layers.
//
// # Overview
//
// Every series kind implements [Series]: it carries a [Description] used for
// CSS class and id assignment, can be restricted to a closed interval along
// either axis with SliceX and SliceY, and renders itself against a
// [canvas.Canvas]. Rendering never mutates the series; slicing is the only
// side effect and is applied by the chart right before rendering.
//
// # Kinds
//
//   - [Continuous]: profile traces, a silhouette closed to the baseline
//   - [Centroid], [DeconvolutedCentroid]: peaks drawn as narrow spikes
//   - [Line]: an open polyline
//   - [Annotation]: text labels at data positions
//   - [Precursor]: the selected precursor ion with a dashed drop line
//   - [Trace]: a filled feature or chromatogram trace
//   - [Scatter]: circles with a per-point radius
//
// Each rendered group carries class = label and id = label + "-" + tag, so
// external stylesheets can target "centroid" or "centroid-2".
package series

import (
	"golang.org/x/exp/constraints"

	"github.com/mzsvg/mzsvg/pkg/core/canvas"
	"github.com/mzsvg/mzsvg/pkg/core/svg"
)

// DefaultColor is used when a series is rendered without an assigned color.
const DefaultColor = "black"

// Description identifies a series for styling.
type Description struct {
	Label string // series type, used as CSS class
	Color string // stroke or fill color; empty means unassigned
	Tag   string // disambiguates series sharing a label
}

// NewDescription returns a description with the given label and no color,
// leaving color assignment to the chart.
func NewDescription(label string) Description {
	return Description{Label: label}
}

// WithColor returns a copy of d with the color replaced.
func (d Description) WithColor(color string) Description {
	d.Color = color
	return d
}

// SeriesType returns the CSS class of the series.
func (d Description) SeriesType() string { return d.Label }

// ID returns the element id of the series.
func (d Description) ID() string { return d.Label + "-" + d.Tag }

// StrokeColor returns the assigned color or [DefaultColor].
func (d Description) StrokeColor() string {
	if d.Color == "" {
		return DefaultColor
	}
	return d.Color
}

// Series is a drawable data set.
type Series[X, Y constraints.Float] interface {
	// Description exposes the identity of the series for reading and
	// mutation.
	Description() *Description
	// SliceX keeps only data with start <= x <= end. Bounds may be given in
	// either order.
	SliceX(start, end X)
	// SliceY keeps only data with start <= y <= end.
	SliceY(start, end Y)
	// Render draws the series against the current canvas scales.
	Render(c *canvas.Canvas[X, Y]) (*svg.Element, error)
}

// Point is one (x, y) sample.
type Point[X, Y constraints.Float] struct {
	X X
	Y Y
}

// Pt is shorthand for building a point.
func Pt[X, Y constraints.Float](x X, y Y) Point[X, Y] {
	return Point[X, Y]{X: x, Y: y}
}

// Zip pairs parallel coordinate slices. The shorter slice determines the
// length.
func Zip[X, Y constraints.Float](xs []X, ys []Y) []Point[X, Y] {
	n := min(len(xs), len(ys))
	points := make([]Point[X, Y], n)
	for i := 0; i < n; i++ {
		points[i] = Point[X, Y]{X: xs[i], Y: ys[i]}
	}
	return points
}

func ordered[T constraints.Float](a, b T) (T, T) {
	if a > b {
		return b, a
	}
	return a, b
}

func within[T constraints.Float](v, lo, hi T) bool {
	return v >= lo && v <= hi
}

// filter keeps the elements for which key falls in [start, end].
func filter[E any, T constraints.Float](items []E, start, end T, key func(E) T) []E {
	lo, hi := ordered(start, end)
	out := items[:0]
	for _, it := range items {
		if within(key(it), lo, hi) {
			out = append(out, it)
		}
	}
	clear(items[len(out):])
	return out
}

// xExtent returns the smallest and largest x of points.
func xExtent[X, Y constraints.Float](points []Point[X, Y]) (X, X) {
	lo, hi := points[0].X, points[0].X
	for _, p := range points[1:] {
		lo, hi = min(lo, p.X), max(hi, p.X)
	}
	return lo, hi
}

// group returns the container every series renders into.
func group(d *Description) *svg.Element {
	return svg.Group().Class(d.SeriesType()).ID(d.ID())
}
