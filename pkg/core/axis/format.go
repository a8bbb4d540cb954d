package axis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mzsvg/mzsvg/pkg/core/coord"
	"github.com/mzsvg/mzsvg/pkg/errors"
)

// TickFormat turns a tick value into its label. The axis domain is passed so
// relative formats can normalize against it.
type TickFormat interface {
	Format(value float64, domain coord.Range[float64]) string
}

// Precision formats values with a fixed number of decimals: Precision(2)
// renders 1234.5 as "1234.50".
type Precision int

// Format implements [TickFormat].
func (p Precision) Format(value float64, _ coord.Range[float64]) string {
	return strconv.FormatFloat(value, 'f', int(p), 64)
}

// SciNot formats values in scientific notation with p digits after the
// decimal point and a compact exponent: SciNot(2) renders 2500 as "2.50e3".
type SciNot int

// Format implements [TickFormat].
func (p SciNot) Format(value float64, _ coord.Range[float64]) string {
	s := strconv.FormatFloat(value, 'e', int(p), 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := ""
	if exp[0] == '-' {
		sign = "-"
	}
	exp = strings.TrimLeft(exp[1:], "0")
	if exp == "" {
		exp = "0"
	}
	return mant + "e" + sign + exp
}

// Percentile expresses values as a percentage of a reference maximum with a
// fixed number of decimals. When Maximum is zero the greater bound of the
// axis domain is used, so an intensity axis reads "100.00%" at its base
// peak.
type Percentile struct {
	Precision int
	Maximum   float64
}

// PercentileOf returns a percentile format normalized to maximum instead of
// the axis domain. Zoomed intensity axes use it to keep labels relative to
// the full spectrum.
func PercentileOf(precision int, maximum float64) Percentile {
	return Percentile{Precision: precision, Maximum: maximum}
}

// Format implements [TickFormat].
func (p Percentile) Format(value float64, domain coord.Range[float64]) string {
	ref := p.Maximum
	if ref == 0 {
		ref = domain.Max()
	}
	pct := 0.0
	if ref != 0 {
		pct = value / ref * 100
	}
	return strconv.FormatFloat(pct, 'f', p.Precision, 64) + "%"
}

// Tick format names accepted by [ParseTickFormat].
const (
	FormatPrecision  = "precision"
	FormatSciNot     = "scinot"
	FormatPercentile = "percentile"
)

// ParseTickFormat resolves a format by name, as used in configuration files.
func ParseTickFormat(name string, precision int) (TickFormat, error) {
	if precision < 0 || precision > 12 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "tick precision %d out of range [0, 12]", precision)
	}
	switch strings.ToLower(name) {
	case FormatPrecision, "":
		return Precision(precision), nil
	case FormatSciNot, "scientific":
		return SciNot(precision), nil
	case FormatPercentile, "percent":
		return Percentile{Precision: precision}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown tick format %q", name)
	}
}

// String implements fmt.Stringer.
func (p Precision) String() string { return fmt.Sprintf("precision(%d)", int(p)) }

// String implements fmt.Stringer.
func (p SciNot) String() string { return fmt.Sprintf("scinot(%d)", int(p)) }

// String implements fmt.Stringer.
func (p Percentile) String() string {
	if p.Maximum != 0 {
		return fmt.Sprintf("percentile(%d, max=%g)", p.Precision, p.Maximum)
	}
	return fmt.Sprintf("percentile(%d)", p.Precision)
}
