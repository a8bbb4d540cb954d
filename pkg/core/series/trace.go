package series

import (
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/mzsvg/mzsvg/pkg/core/canvas"
	"github.com/mzsvg/mzsvg/pkg/core/svg"
)

// Trace is a feature or chromatogram profile, (time, intensity) points drawn
// as a filled area closed to the baseline at both ends.
type Trace[X, Y constraints.Float] struct {
	Points []Point[X, Y]
	desc   Description
}

// NewTrace copies points into a new series.
func NewTrace[X, Y constraints.Float](points []Point[X, Y], desc Description) *Trace[X, Y] {
	return &Trace[X, Y]{Points: slices.Clone(points), desc: desc}
}

// Description implements [Series].
func (s *Trace[X, Y]) Description() *Description { return &s.desc }

// SliceX implements [Series].
func (s *Trace[X, Y]) SliceX(start, end X) {
	s.Points = filter(s.Points, start, end, func(p Point[X, Y]) X { return p.X })
}

// SliceY implements [Series].
func (s *Trace[X, Y]) SliceY(start, end Y) {
	s.Points = filter(s.Points, start, end, func(p Point[X, Y]) Y { return p.Y })
}

// Render implements [Series].
func (s *Trace[X, Y]) Render(c *canvas.Canvas[X, Y]) (*svg.Element, error) {
	g := group(&s.desc).
		Set("stroke", "black").
		Set("stroke-width", 1)
	if len(s.Points) == 0 {
		return g, nil
	}

	d, err := closedPath(c, s.Points, true)
	if err != nil {
		return nil, err
	}
	g.Add(svg.New("path").
		Set("fill", s.desc.StrokeColor()).
		Set("d", d).
		Set("fill-opacity", "75%"))
	return g, nil
}

// Marker is a scatter point with its radius in device units.
type Marker[X, Y constraints.Float] struct {
	X      X
	Y      Y
	Radius float64
}

// Scatter draws one circle per marker.
type Scatter[X, Y constraints.Float] struct {
	Markers []Marker[X, Y]
	desc    Description
}

// NewScatter copies markers into a new series.
func NewScatter[X, Y constraints.Float](markers []Marker[X, Y], desc Description) *Scatter[X, Y] {
	return &Scatter[X, Y]{Markers: slices.Clone(markers), desc: desc}
}

// Description implements [Series].
func (s *Scatter[X, Y]) Description() *Description { return &s.desc }

// SliceX implements [Series].
func (s *Scatter[X, Y]) SliceX(start, end X) {
	s.Markers = filter(s.Markers, start, end, func(m Marker[X, Y]) X { return m.X })
}

// SliceY implements [Series].
func (s *Scatter[X, Y]) SliceY(start, end Y) {
	s.Markers = filter(s.Markers, start, end, func(m Marker[X, Y]) Y { return m.Y })
}

// Render implements [Series].
func (s *Scatter[X, Y]) Render(c *canvas.Canvas[X, Y]) (*svg.Element, error) {
	g := group(&s.desc).
		Set("fill", s.desc.StrokeColor()).
		Set("stroke", "black")
	for _, m := range s.Markers {
		px, py, err := c.Transform(m.X, m.Y)
		if err != nil {
			return nil, err
		}
		g.Add(svg.New("circle").Set("cx", px).Set("cy", py).Set("r", m.Radius))
	}
	return g, nil
}
