// Package canvas provides the coordinate frame series are drawn into.
//
// A [Canvas] owns one X and one Y [coord.Scale] whose device ranges are fixed
// at construction to the canvas width and height. Charts replace the data
// domains with [Canvas.UpdateScales] as data arrives; every series maps its
// points through [Canvas.Transform] and appends the result with
// [Canvas.PushLayer]. Layers are drawn in insertion order.
//
// The Y device range runs from 0 at the top to the height at the bottom, so
// intensity domains are inverted, e.g. (basePeak, 0), to put zero on the
// baseline.
package canvas

import (
	"golang.org/x/exp/constraints"

	"github.com/mzsvg/mzsvg/pkg/core/axis"
	"github.com/mzsvg/mzsvg/pkg/core/coord"
	"github.com/mzsvg/mzsvg/pkg/core/svg"
	"github.com/mzsvg/mzsvg/pkg/errors"
)

// Canvas is a rectangular plot area with independent X and Y scales.
type Canvas[X, Y constraints.Float] struct {
	Width  int
	Height int
	X      coord.Scale[X]
	Y      coord.Scale[Y]
	layers []*svg.Element
}

// New returns a canvas of the given size with identity scales.
func New[X, Y constraints.Float](width, height int) *Canvas[X, Y] {
	xr := coord.NewRange(X(0), X(width))
	yr := coord.NewRange(Y(0), Y(height))
	return &Canvas[X, Y]{
		Width:  width,
		Height: height,
		X:      coord.NewScale(xr, xr),
		Y:      coord.NewScale(yr, yr),
	}
}

// UpdateScales replaces both data domains. Device ranges are unchanged.
func (c *Canvas[X, Y]) UpdateScales(x coord.Range[X], y coord.Range[Y]) {
	c.X.Domain = x
	c.Y.Domain = y
}

// Transform maps a data point to device coordinates.
func (c *Canvas[X, Y]) Transform(x X, y Y) (float64, float64, error) {
	px, err := c.X.Transform(x)
	if err != nil {
		return 0, 0, errors.Wrap(errors.GetCode(err), err, "x axis")
	}
	py, err := c.Y.Transform(y)
	if err != nil {
		return 0, 0, errors.Wrap(errors.GetCode(err), err, "y axis")
	}
	return float64(px), float64(py), nil
}

// TransformX maps an X value to a device column.
func (c *Canvas[X, Y]) TransformX(x X) (float64, error) {
	px, err := c.X.Transform(x)
	if err != nil {
		return 0, errors.Wrap(errors.GetCode(err), err, "x axis")
	}
	return float64(px), nil
}

// TransformY maps a Y value to a device row.
func (c *Canvas[X, Y]) TransformY(y Y) (float64, error) {
	py, err := c.Y.Transform(y)
	if err != nil {
		return 0, errors.Wrap(errors.GetCode(err), err, "y axis")
	}
	return float64(py), nil
}

// PushLayer appends a layer on top of the existing ones.
func (c *Canvas[X, Y]) PushLayer(layer *svg.Element) {
	if layer != nil {
		c.layers = append(c.layers, layer)
	}
}

// Layers returns the layers in draw order.
func (c *Canvas[X, Y]) Layers() []*svg.Element { return c.layers }

// Len returns the number of layers.
func (c *Canvas[X, Y]) Len() int { return len(c.layers) }

// Margins is the space around the plot area reserved for axes and titles.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Margins returns the space reserved on each side for the given axes.
func (c *Canvas[X, Y]) Margins(xProps axis.Props[X], yProps axis.Props[Y]) Margins {
	xs, ys := xProps.TickSpacing(), yProps.TickSpacing()
	m := Margins{Top: xs * 4, Bottom: xs * 4, Left: ys * 6, Right: ys * 2}
	if yProps.Orientation == axis.Right {
		m.Left, m.Right = ys*2, ys*6
	}
	return m
}

// Size returns the outer size of the rendered canvas including margins.
func (c *Canvas[X, Y]) Size(xProps axis.Props[X], yProps axis.Props[Y]) (float64, float64) {
	m := c.Margins(xProps, yProps)
	return float64(c.Width) + m.Left + m.Right, float64(c.Height) + m.Top + m.Bottom
}

// Render composes the data layers and both axes into one group, offset so
// that ticks and titles fall inside the document.
func (c *Canvas[X, Y]) Render(xProps axis.Props[X], yProps axis.Props[Y]) (*svg.Element, error) {
	data := svg.Group().Class("data-canvas")
	data.Add(c.layers...)

	w, h := float64(c.Width), float64(c.Height)
	xAxis, err := xProps.Render(c.X, w, h)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "render x axis")
	}
	yAxis, err := yProps.Render(c.Y, w, h)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "render y axis")
	}

	m := c.Margins(xProps, yProps)
	return svg.Group().
		Set("transform", svg.Translate(m.Left, m.Top)).
		Class("canvas").
		Add(data, xAxis, yAxis), nil
}
