package series

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/mzsvg/mzsvg/pkg/core/canvas"
	"github.com/mzsvg/mzsvg/pkg/core/svg"
)

// Anchor is the horizontal alignment of text around its position.
type Anchor int

const (
	AnchorMiddle Anchor = iota
	AnchorStart
	AnchorEnd
)

func (a Anchor) String() string {
	switch a {
	case AnchorStart:
		return "start"
	case AnchorEnd:
		return "end"
	default:
		return "middle"
	}
}

// DefaultFontFamily is the font family of annotation text.
const DefaultFontFamily = "serif"

// TextProps styles annotation text.
type TextProps struct {
	Size       float64 // in em
	Anchor     Anchor
	FontFamily string
	Color      string
}

// DefaultTextProps returns 1em, centered, black serif text.
func DefaultTextProps() TextProps {
	return TextProps{Size: 1, Anchor: AnchorMiddle, FontFamily: DefaultFontFamily, Color: "black"}
}

// Text returns a styled text element.
func (t TextProps) Text(s string) *svg.Element {
	return svg.New("text").
		SetText(s).
		Set("font-family", t.FontFamily).
		Set("text-anchor", t.Anchor.String()).
		Set("font-size", fmt.Sprintf("%sem", svg.Num(t.Size))).
		Set("fill", t.Color)
}

// Label is a text placed at a data position.
type Label[X, Y constraints.Float] struct {
	X    X
	Y    Y
	Text string
}

// Annotation places text labels at data positions.
type Annotation[X, Y constraints.Float] struct {
	Labels []Label[X, Y]
	Props  TextProps
	desc   Description
}

// NewAnnotation copies labels into a new series with default text props.
func NewAnnotation[X, Y constraints.Float](labels []Label[X, Y], desc Description) *Annotation[X, Y] {
	return &Annotation[X, Y]{Labels: slices.Clone(labels), Props: DefaultTextProps(), desc: desc}
}

// Description implements [Series].
func (s *Annotation[X, Y]) Description() *Description { return &s.desc }

// SliceX implements [Series].
func (s *Annotation[X, Y]) SliceX(start, end X) {
	s.Labels = filter(s.Labels, start, end, func(l Label[X, Y]) X { return l.X })
}

// SliceY implements [Series].
func (s *Annotation[X, Y]) SliceY(start, end Y) {
	s.Labels = filter(s.Labels, start, end, func(l Label[X, Y]) Y { return l.Y })
}

// Render implements [Series].
func (s *Annotation[X, Y]) Render(c *canvas.Canvas[X, Y]) (*svg.Element, error) {
	g := group(&s.desc)
	for _, l := range s.Labels {
		px, py, err := c.Transform(l.X, l.Y)
		if err != nil {
			return nil, err
		}
		g.Add(svg.Group().
			Set("transform", svg.Translate(px, py)).
			Add(s.Props.Text(l.Text)))
	}
	return g, nil
}
