// Package axis generates tick values for a scale and renders oriented axes.
//
// # Overview
//
// An axis is described by [Props]: its [Orientation], tick geometry, label
// format and title. [Props.Ticks] picks the tick values for a domain and
// [Props.Render] draws the axis line, ticks, labels and title for a
// [coord.Scale].
//
// # Tick Values
//
// By default a domain is split into TickCount equal intervals (five, so six
// ticks) stepping upward from the lesser bound, which makes inverted domains
// such as an intensity axis running from the base peak down to zero work
// unchanged. Explicit TickValues take precedence. Setting Nice switches to
// gonum's "nice number" locator, which yields round values like 200, 400, 600.
//
// # Orientations
//
// All four orientations are supported. Ticks point outward from the plot
// area; Bottom axes are translated by the canvas height, Right axes by the
// canvas width; vertical titles are rotated to read along the axis.
package axis

import (
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/plot"

	"github.com/mzsvg/mzsvg/pkg/core/coord"
	"github.com/mzsvg/mzsvg/pkg/core/svg"
	"github.com/mzsvg/mzsvg/pkg/errors"
)

// Orientation places an axis on one side of the plot area.
type Orientation int

const (
	Top Orientation = iota
	Right
	Bottom
	Left
)

// Horizontal reports whether the axis runs along X.
func (o Orientation) Horizontal() bool { return o == Top || o == Bottom }

// Vertical reports whether the axis runs along Y.
func (o Orientation) Vertical() bool { return o == Left || o == Right }

func (o Orientation) String() string {
	switch o {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return "unknown"
}

// ParseOrientation resolves an orientation by name.
func ParseOrientation(s string) (Orientation, error) {
	for _, o := range []Orientation{Top, Right, Bottom, Left} {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown axis orientation %q", s)
}

// Defaults shared by every axis.
const (
	DefaultTickCount     = 5
	DefaultTickPadding   = 3.0
	DefaultTickSize      = 6.0
	DefaultTickLabelSize = 10.0
	DefaultLabelSize     = 14.0
)

// Props configures one axis.
type Props[T constraints.Float] struct {
	Orientation   Orientation
	TickFormat    TickFormat
	TickPadding   float64
	TickSizeOuter float64
	TickSizeInner float64
	TickCount     int // intervals between generated ticks
	TickValues    []T // explicit ticks, overrides generation
	Nice          bool
	Label         string // axis title, omitted when empty
	ID            string // CSS class of the axis group
	TickLabelSize float64
	LabelSize     float64
}

// NewProps returns props with default geometry. The ID defaults to
// "x-axis" for horizontal and "y-axis" for vertical orientations.
func NewProps[T constraints.Float](o Orientation) Props[T] {
	id := "y-axis"
	if o.Horizontal() {
		id = "x-axis"
	}
	return Props[T]{
		Orientation:   o,
		TickFormat:    Precision(2),
		TickPadding:   DefaultTickPadding,
		TickSizeOuter: DefaultTickSize,
		TickSizeInner: DefaultTickSize,
		TickCount:     DefaultTickCount,
		ID:            id,
		TickLabelSize: DefaultTickLabelSize,
		LabelSize:     DefaultLabelSize,
	}
}

// TickSpacing is the distance between the axis line and tick labels.
func (p Props[T]) TickSpacing() float64 {
	return p.TickSizeOuter + math.Max(p.TickSizeInner, 0) + p.TickPadding
}

// Ticks returns the tick values for domain in ascending order.
func (p Props[T]) Ticks(domain coord.Range[T]) ([]T, error) {
	if len(p.TickValues) > 0 {
		return p.TickValues, nil
	}
	if !domain.WellFormed() {
		return nil, errors.New(errors.ErrCodeMalformedRange, "cannot place ticks on %s", domain)
	}
	lo, hi := domain.Min(), domain.Max()
	if lo == hi {
		return []T{lo}, nil
	}
	if p.Nice {
		if ticks := niceTicks[T](float64(lo), float64(hi)); len(ticks) > 0 {
			return ticks, nil
		}
	}

	n := p.TickCount
	if n <= 0 {
		n = DefaultTickCount
	}
	step := float64(hi-lo) / float64(n)
	values := make([]T, 0, n+1)
	for i := 0; i <= n; i++ {
		values = append(values, lo+T(step*float64(i)))
	}
	return values, nil
}

func niceTicks[T constraints.Float](lo, hi float64) []T {
	var out []T
	for _, t := range (plot.DefaultTicks{}).Ticks(lo, hi) {
		if t.Label == "" || t.Value < lo || t.Value > hi {
			continue
		}
		out = append(out, T(t.Value))
	}
	return out
}

// Render draws the axis for scale. width and height are the canvas size in
// device units and position Bottom and Right axes.
func (p Props[T]) Render(scale coord.Scale[T], width, height float64) (*svg.Element, error) {
	values, err := p.Ticks(scale.Domain)
	if err != nil {
		return nil, err
	}

	spacing := p.TickSpacing()
	lo := float64(scale.Range.Min()) - 1
	hi := float64(scale.Range.Max()) + 1

	container := svg.Group().
		Set("fill", "none").
		Set("font-size", p.TickLabelSize)
	if p.ID != "" {
		container.Class(p.ID)
	}
	container.Set("text-anchor", p.anchor())

	switch p.Orientation {
	case Bottom:
		container.Set("transform", svg.Translate(0, height))
	case Right:
		container.Set("transform", svg.Translate(width, 0))
	}

	var d svg.Path
	if p.Orientation.Horizontal() {
		d.MoveTo(lo, 0).LineTo(hi, 0)
	} else {
		d.MoveTo(0, lo).LineTo(0, hi)
	}
	container.Add(svg.New("path").
		Set("fill", "none").
		Set("stroke", "black").
		Set("stroke-width", 0.75).
		Class("domain").
		Set("d", &d))

	format := p.TickFormat
	if format == nil {
		format = Precision(2)
	}
	domain := coord.Convert[T, float64](scale.Domain)

	for _, v := range values {
		pos, err := p.position(scale, v)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "%s tick %v", p.ID, float64(v))
		}
		if float64(pos) < lo || float64(pos) > hi {
			continue
		}
		container.Add(p.tick(float64(pos), format.Format(float64(v), domain), spacing))
	}

	if p.Label != "" {
		container.Add(p.title(float64(scale.Range.Midpoint()), spacing))
	}
	return container, nil
}

// position maps a tick onto the device range. A zero-width domain has one
// tick, drawn at the middle of the axis.
func (p Props[T]) position(scale coord.Scale[T], v T) (T, error) {
	if scale.Domain.WellFormed() && scale.Domain.Degenerate() {
		return scale.Range.Midpoint(), nil
	}
	return scale.Transform(v)
}

func (p Props[T]) anchor() string {
	switch p.Orientation {
	case Right:
		return "start"
	case Left:
		return "end"
	default:
		return "middle"
	}
}

func (p Props[T]) tick(pos float64, label string, spacing float64) *svg.Element {
	g := svg.Group().Class("tick")
	if p.Orientation.Horizontal() {
		g.Set("transform", svg.Translate(pos, 0))
	} else {
		g.Set("transform", svg.Translate(0, pos))
	}

	text := svg.New("text").SetText(label).Set("fill", "black")
	line := svg.New("line").Set("stroke", "black").Set("stroke-width", 0.75)
	switch p.Orientation {
	case Top:
		line.Set("y2", -p.TickSizeInner)
		text.Set("y", -spacing).Set("dy", "-0.32em")
	case Right:
		line.Set("x2", p.TickSizeInner)
		text.Set("x", spacing).Set("dy", "0.32em")
	case Bottom:
		line.Set("y2", p.TickSizeInner)
		text.Set("y", spacing).Set("dy", "0.71em")
	case Left:
		line.Set("x2", -p.TickSizeInner)
		text.Set("x", -spacing).Set("dy", "0.32em")
	}
	return g.Add(text, line)
}

func (p Props[T]) title(mid, spacing float64) *svg.Element {
	g := svg.Group().Class("axis-label")
	text := svg.New("text").
		SetText(p.Label).
		Set("fill", "black").
		Set("font-size", p.LabelSize).
		Set("text-anchor", "middle")

	switch p.Orientation {
	case Top:
		g.Set("transform", svg.Translate(mid, 0))
		text.Set("y", -spacing*2.5)
	case Bottom:
		g.Set("transform", svg.Translate(mid, 0))
		text.Set("y", spacing*2.5)
	case Left:
		g.Set("transform", svg.Translate(0, mid)+svg.Rotate(-90))
		text.Set("y", -spacing*4)
	case Right:
		g.Set("transform", svg.Translate(0, mid)+svg.Rotate(90))
		text.Set("y", -spacing*4)
	}
	return g.Add(text)
}
