package series

import (
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/mzsvg/mzsvg/pkg/core/canvas"
	"github.com/mzsvg/mzsvg/pkg/core/svg"
)

// Precursor marks the ion selected for fragmentation. It is either in view
// or not: SliceX toggles visibility instead of dropping data.
type Precursor[X, Y constraints.Float] struct {
	MZ        X
	Intensity Y
	Charge    int // 0 when unknown
	inFrame   bool
	desc      Description
}

// NewPrecursor returns a visible precursor marker.
func NewPrecursor[X, Y constraints.Float](mz X, intensity Y, charge int, desc Description) *Precursor[X, Y] {
	return &Precursor[X, Y]{MZ: mz, Intensity: intensity, Charge: charge, inFrame: true, desc: desc}
}

// Description implements [Series].
func (s *Precursor[X, Y]) Description() *Description { return &s.desc }

// Visible reports whether the precursor lies inside the last X slice.
func (s *Precursor[X, Y]) Visible() bool { return s.inFrame }

// SliceX implements [Series]. Repeated calls intersect.
func (s *Precursor[X, Y]) SliceX(start, end X) {
	lo, hi := ordered(start, end)
	s.inFrame = s.inFrame && within(s.MZ, lo, hi)
}

// SliceY implements [Series]. The intensity becomes the larger bound.
func (s *Precursor[X, Y]) SliceY(start, end Y) {
	s.Intensity = max(start, end)
}

// Label returns the annotation text, "m/z, charge".
func (s *Precursor[X, Y]) Label() string {
	return strconv.FormatFloat(float64(s.MZ), 'f', 2, 64) + ", " + strconv.Itoa(s.Charge)
}

// Render implements [Series]. The drop line reaches 95% of the intensity,
// capped at the top of the Y domain.
func (s *Precursor[X, Y]) Render(c *canvas.Canvas[X, Y]) (*svg.Element, error) {
	root := group(&s.desc)
	if !s.inFrame {
		return root, nil
	}

	y := min(s.Intensity, c.Y.Domain.Max()) * Y(0.95)

	props := DefaultTextProps()
	props.Size = 0.8
	props.Color = "skyblue"
	annot := Annotation[X, Y]{
		Labels: []Label[X, Y]{{X: s.MZ, Y: y, Text: s.Label()}},
		Props:  props,
		desc:   NewDescription("precursor-label"),
	}
	label, err := annot.Render(c)
	if err != nil {
		return nil, err
	}
	label.ID(s.desc.ID()+"-label").Set("stroke", "black").Set("stroke-width", "0.1pt")

	drop := Line[X, Y]{
		Points: []Point[X, Y]{{X: s.MZ, Y: 0}, {X: s.MZ, Y: y}},
		desc:   Description{Label: "precursor-line", Color: s.desc.Color},
	}
	line, err := drop.Render(c)
	if err != nil {
		return nil, err
	}
	line.ID(s.desc.ID()+"-line").
		Set("stroke-dasharray", 4).
		Set("stroke", s.desc.StrokeColor())
	if pl := line.Find(svg.WithName("polyline")); pl != nil {
		pl.Set("stroke-width", "0.5pt")
	}

	return root.Add(label, line), nil
}
