package svg

import (
	"math"
	"strconv"
	"strings"
)

// Num formats a coordinate with at most three decimals and no trailing
// zeros. Negative zero is written as "0".
func Num(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Translate formats a translate transform.
func Translate(x, y float64) string {
	return "translate(" + Num(x) + "," + Num(y) + ")"
}

// Rotate formats a rotate transform in degrees.
func Rotate(deg float64) string {
	return "rotate(" + Num(deg) + ")"
}

// Path accumulates path data commands. The zero value is an empty path.
type Path struct {
	cmds []string
}

// MoveTo starts a new subpath at an absolute position.
func (p *Path) MoveTo(x, y float64) *Path {
	p.cmds = append(p.cmds, "M"+Num(x)+","+Num(y))
	return p
}

// LineTo draws a line to an absolute position.
func (p *Path) LineTo(x, y float64) *Path {
	p.cmds = append(p.cmds, "L"+Num(x)+","+Num(y))
	return p
}

// LineBy draws a line relative to the current position.
func (p *Path) LineBy(dx, dy float64) *Path {
	p.cmds = append(p.cmds, "l"+Num(dx)+","+Num(dy))
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.cmds = append(p.cmds, "Z")
	return p
}

// Len returns the number of commands.
func (p *Path) Len() int { return len(p.cmds) }

// Commands returns the individual commands, e.g. "M0,600".
func (p *Path) Commands() []string { return p.cmds }

// String returns the path data attribute value.
func (p *Path) String() string {
	return strings.Join(p.cmds, " ")
}

// Points formats a polyline points attribute from parallel coordinates.
func Points(xs, ys []float64) string {
	var b strings.Builder
	for i := range xs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(Num(xs[i]))
		b.WriteByte(',')
		b.WriteString(Num(ys[i]))
	}
	return b.String()
}
