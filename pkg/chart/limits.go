package chart

import (
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/mzsvg/mzsvg/pkg/core/coord"
	"github.com/mzsvg/mzsvg/pkg/errors"
)

// Limits is an axis interval where either bound may be left open.
type Limits struct {
	Lower    float64
	Upper    float64
	HasLower bool
	HasUpper bool
}

// Between returns closed limits.
func Between(lower, upper float64) Limits {
	return Limits{Lower: lower, Upper: upper, HasLower: true, HasUpper: true}
}

// Below returns limits with only an upper bound.
func Below(upper float64) Limits {
	return Limits{Upper: upper, HasUpper: true}
}

// Above returns limits with only a lower bound.
func Above(lower float64) Limits {
	return Limits{Lower: lower, HasLower: true}
}

// IsZero reports whether neither bound is set.
func (l Limits) IsZero() bool { return !l.HasLower && !l.HasUpper }

// ParseLimits parses "start-end", "start:end" or "start end". Either side
// may be empty to leave it open, so "-500" means "up to 500". A space or
// colon takes precedence over a dash, which allows negative bounds as in
// "-5:5".
func ParseLimits(s string) (Limits, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Limits{}, nil
	}

	sep := "-"
	switch {
	case strings.Contains(s, " "):
		sep = " "
	case strings.Contains(s, ":"):
		sep = ":"
	}
	start, end, ok := strings.Cut(s, sep)
	if !ok {
		return Limits{}, errors.New(errors.ErrCodeInvalidRange, "range %q has no separator, want START-END", s)
	}

	var l Limits
	if start = strings.TrimSpace(start); start != "" {
		v, err := strconv.ParseFloat(start, 64)
		if err != nil {
			return Limits{}, errors.Wrap(errors.ErrCodeInvalidRange, err, "failed to parse range start %q", start)
		}
		l.Lower, l.HasLower = v, true
	}
	if end = strings.TrimSpace(end); end != "" {
		v, err := strconv.ParseFloat(end, 64)
		if err != nil {
			return Limits{}, errors.Wrap(errors.ErrCodeInvalidRange, err, "failed to parse range end %q", end)
		}
		l.Upper, l.HasUpper = v, true
	}
	if l.HasLower && l.HasUpper && l.Lower > l.Upper {
		return Limits{}, errors.New(errors.ErrCodeInvalidRange, "range start %g is after end %g", l.Lower, l.Upper)
	}
	return l, nil
}

// String formats the limits as "start-end" with open sides left empty.
// Zero limits format as "".
func (l Limits) String() string {
	if l.IsZero() {
		return ""
	}
	var b strings.Builder
	if l.HasLower {
		b.WriteString(strconv.FormatFloat(l.Lower, 'g', -1, 64))
	}
	b.WriteByte('-')
	if l.HasUpper {
		b.WriteString(strconv.FormatFloat(l.Upper, 'g', -1, 64))
	}
	return b.String()
}

// Set implements pflag.Value.
func (l *Limits) Set(s string) error {
	v, err := ParseLimits(s)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Type implements pflag.Value.
func (l *Limits) Type() string { return "range" }

// Apply returns r with the set bounds replaced. The lower limit moves the
// lesser end of r and the upper limit the greater end, so inverted ranges
// keep their orientation.
func Apply[T constraints.Float](r coord.Range[T], l Limits) coord.Range[T] {
	lo, hi := r.Min(), r.Max()
	if l.HasLower {
		lo = T(l.Lower)
	}
	if l.HasUpper {
		hi = T(l.Upper)
	}
	if r.Inverted() {
		return coord.Range[T]{Start: hi, End: lo}
	}
	return coord.Range[T]{Start: lo, End: hi}
}

// Dimensions is a canvas size in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// DefaultDimensions is the size used when none is given.
var DefaultDimensions = Dimensions{Width: 600, Height: 200}

// ParseDimensions parses "WIDTHxHEIGHT", or a single number for a square.
func ParseDimensions(s string) (Dimensions, error) {
	parts := strings.Split(strings.TrimSpace(s), "x")
	if len(parts) > 2 {
		return Dimensions{}, errors.New(errors.ErrCodeInvalidInput, "dimensions %q: want WIDTHxHEIGHT", s)
	}
	vals := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return Dimensions{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "dimensions %q", s)
		}
		vals[i] = v
	}
	d := Dimensions{Width: vals[0], Height: vals[0]}
	if len(vals) == 2 {
		d.Height = vals[1]
	}
	if err := errors.ValidateDimensions(d.Width, d.Height); err != nil {
		return Dimensions{}, err
	}
	return d, nil
}

// String formats the dimensions as "WIDTHxHEIGHT".
func (d Dimensions) String() string {
	return strconv.Itoa(d.Width) + "x" + strconv.Itoa(d.Height)
}

// Set implements pflag.Value.
func (d *Dimensions) Set(s string) error {
	v, err := ParseDimensions(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Type implements pflag.Value.
func (d *Dimensions) Type() string { return "dimensions" }
