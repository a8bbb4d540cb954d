package chart

import "slices"

// DefaultPalette returns the colors series are assigned by default.
func DefaultPalette() []string {
	return []string{
		"black",
		"steelblue",
		"blueviolet",
		"midnightblue",
		"lightseagreen",
		"limegreen",
		"goldenrod",
		"firebrick",
		"crimson",
	}
}

// ColorCycle hands out palette colors round-robin, forever.
type ColorCycle struct {
	colors []string
	index  int
}

// NewColorCycle returns a cycle over colors, or over [DefaultPalette] when
// none are given.
func NewColorCycle(colors ...string) *ColorCycle {
	if len(colors) == 0 {
		colors = DefaultPalette()
	}
	return &ColorCycle{colors: slices.Clone(colors)}
}

// Next returns the next color, wrapping to the first after the last.
func (c *ColorCycle) Next() string {
	color := c.colors[c.index]
	c.index = (c.index + 1) % len(c.colors)
	return color
}

// Reset moves the cursor back to the first color.
func (c *ColorCycle) Reset() { c.index = 0 }

// Len returns the palette size.
func (c *ColorCycle) Len() int { return len(c.colors) }
