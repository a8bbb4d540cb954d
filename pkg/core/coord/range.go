package coord

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/mzsvg/mzsvg/pkg/errors"
)

// Range is a closed interval [Start, End]. Start may exceed End for inverted
// axes.
type Range[T constraints.Float] struct {
	Start T `json:"start"`
	End   T `json:"end"`
}

// NewRange returns the range from start to end.
func NewRange[T constraints.Float](start, end T) Range[T] {
	return Range[T]{Start: start, End: end}
}

// Size returns End - Start. It is negative for inverted ranges.
func (r Range[T]) Size() T {
	return r.End - r.Start
}

// WellFormed reports whether both bounds are finite numbers.
func (r Range[T]) WellFormed() bool {
	return finite(float64(r.Start)) && finite(float64(r.End))
}

// Degenerate reports whether the range has zero size.
func (r Range[T]) Degenerate() bool {
	return r.Size() == 0
}

// Min returns the lesser bound.
func (r Range[T]) Min() T {
	return min(r.Start, r.End)
}

// Max returns the greater bound.
func (r Range[T]) Max() T {
	return max(r.Start, r.End)
}

// Inverted reports whether Start is greater than End.
func (r Range[T]) Inverted() bool {
	return r.Start > r.End
}

// Midpoint returns the center of the interval.
func (r Range[T]) Midpoint() T {
	return (r.Start + r.End) / 2
}

// Contains reports whether v lies in [Min, Max].
func (r Range[T]) Contains(v T) bool {
	return v >= r.Min() && v <= r.Max()
}

// Clamp restricts v to [Min, Max] regardless of orientation.
func (r Range[T]) Clamp(v T) T {
	return min(max(v, r.Min()), r.Max())
}

// Validate returns an error if the range cannot be used as a transform
// domain.
func (r Range[T]) Validate() error {
	if !r.WellFormed() {
		return errors.New(errors.ErrCodeMalformedRange, "range %s has non-finite bounds", r)
	}
	if r.Degenerate() {
		return errors.New(errors.ErrCodeDegenerateScale, "range %s has zero size", r)
	}
	return nil
}

// Transform maps v to its position relative to the interval: 0 at Start,
// 1 at End. Values outside the interval map outside [0, 1].
func (r Range[T]) Transform(v T) (T, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	return (v - r.Start) / r.Size(), nil
}

// InverseTransform maps a relative position back into the interval.
func (r Range[T]) InverseTransform(p T) T {
	return p*r.Size() + r.Start
}

// Widen returns the range grown to include lo and hi, keeping the
// orientation of r. Bounds are never shrunk.
func (r Range[T]) Widen(lo, hi T) Range[T] {
	if lo > hi {
		lo, hi = hi, lo
	}
	nlo, nhi := min(r.Min(), lo), max(r.Max(), hi)
	if r.Inverted() {
		return Range[T]{Start: nhi, End: nlo}
	}
	return Range[T]{Start: nlo, End: nhi}
}

// Normalized returns the range with Start <= End.
func (r Range[T]) Normalized() Range[T] {
	return Range[T]{Start: r.Min(), End: r.Max()}
}

// String formats the range as "[start, end]".
func (r Range[T]) String() string {
	return fmt.Sprintf("[%g, %g]", float64(r.Start), float64(r.End))
}

// Convert changes the numeric type of a range.
func Convert[T, U constraints.Float](r Range[T]) Range[U] {
	return Range[U]{Start: U(r.Start), End: U(r.End)}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
