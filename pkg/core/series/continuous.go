package series

import (
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/mzsvg/mzsvg/pkg/core/canvas"
	"github.com/mzsvg/mzsvg/pkg/core/svg"
)

// Continuous is an ordered signal drawn as a closed silhouette: the path
// starts on the baseline below the smallest x, visits every point and
// returns to the baseline below the largest x.
type Continuous[X, Y constraints.Float] struct {
	Points []Point[X, Y]
	desc   Description
}

// NewContinuous copies points into a new series.
func NewContinuous[X, Y constraints.Float](points []Point[X, Y], desc Description) *Continuous[X, Y] {
	return &Continuous[X, Y]{Points: slices.Clone(points), desc: desc}
}

// Description implements [Series].
func (s *Continuous[X, Y]) Description() *Description { return &s.desc }

// SliceX implements [Series].
func (s *Continuous[X, Y]) SliceX(start, end X) {
	s.Points = filter(s.Points, start, end, func(p Point[X, Y]) X { return p.X })
}

// SliceY implements [Series].
func (s *Continuous[X, Y]) SliceY(start, end Y) {
	s.Points = filter(s.Points, start, end, func(p Point[X, Y]) Y { return p.Y })
}

// Render implements [Series].
func (s *Continuous[X, Y]) Render(c *canvas.Canvas[X, Y]) (*svg.Element, error) {
	g := group(&s.desc).
		Set("stroke", s.desc.StrokeColor()).
		Set("stroke-width", 1)
	if len(s.Points) == 0 {
		return g, nil
	}

	d, err := closedPath(c, s.Points, false)
	if err != nil {
		return nil, err
	}
	g.Add(svg.New("path").Set("fill", "none").Set("d", d))
	return g, nil
}

// closedPath builds the baseline-closed outline shared by continuous and
// trace series. When returnToStart is set the outline also runs back along
// the baseline to the first corner before closing.
func closedPath[X, Y constraints.Float](c *canvas.Canvas[X, Y], points []Point[X, Y], returnToStart bool) (*svg.Path, error) {
	lo, hi := xExtent(points)
	base, err := c.TransformY(0)
	if err != nil {
		return nil, err
	}
	x0, err := c.TransformX(lo)
	if err != nil {
		return nil, err
	}
	x1, err := c.TransformX(hi)
	if err != nil {
		return nil, err
	}

	d := new(svg.Path)
	d.MoveTo(x0, base)
	for _, p := range points {
		px, py, err := c.Transform(p.X, p.Y)
		if err != nil {
			return nil, err
		}
		d.LineTo(px, py)
	}
	d.LineTo(x1, base)
	if returnToStart {
		d.LineTo(x0, base)
	}
	return d.Close(), nil
}

// Line is an open polyline without baseline closure.
type Line[X, Y constraints.Float] struct {
	Points []Point[X, Y]
	desc   Description
}

// NewLine copies points into a new series.
func NewLine[X, Y constraints.Float](points []Point[X, Y], desc Description) *Line[X, Y] {
	return &Line[X, Y]{Points: slices.Clone(points), desc: desc}
}

// Description implements [Series].
func (s *Line[X, Y]) Description() *Description { return &s.desc }

// SliceX implements [Series].
func (s *Line[X, Y]) SliceX(start, end X) {
	s.Points = filter(s.Points, start, end, func(p Point[X, Y]) X { return p.X })
}

// SliceY implements [Series].
func (s *Line[X, Y]) SliceY(start, end Y) {
	s.Points = filter(s.Points, start, end, func(p Point[X, Y]) Y { return p.Y })
}

// Render implements [Series].
func (s *Line[X, Y]) Render(c *canvas.Canvas[X, Y]) (*svg.Element, error) {
	g := group(&s.desc)
	if len(s.Points) == 0 {
		return g, nil
	}

	xs := make([]float64, len(s.Points))
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		px, py, err := c.Transform(p.X, p.Y)
		if err != nil {
			return nil, err
		}
		xs[i], ys[i] = px, py
	}
	g.Add(svg.New("polyline").
		Set("points", svg.Points(xs, ys)).
		Set("fill", "none").
		Set("stroke", s.desc.StrokeColor()).
		Set("stroke-width", 1))
	return g, nil
}
