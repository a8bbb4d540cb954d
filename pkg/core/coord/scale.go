package coord

import (
	"golang.org/x/exp/constraints"

	"github.com/mzsvg/mzsvg/pkg/errors"
)

// Scale maps values from a data Domain onto a device Range.
type Scale[T constraints.Float] struct {
	Domain Range[T] `json:"domain"`
	Range  Range[T] `json:"range"`
}

// NewScale builds a scale from domain to rng.
func NewScale[T constraints.Float](domain, rng Range[T]) Scale[T] {
	return Scale[T]{Domain: domain, Range: rng}
}

// Transform maps a domain value to device coordinates.
func (s Scale[T]) Transform(v T) (T, error) {
	p, err := s.Domain.Transform(v)
	if err != nil {
		return 0, errors.Wrap(errors.GetCode(err), err, "scale domain")
	}
	return s.Range.InverseTransform(p), nil
}

// InverseTransform maps a device coordinate back to the domain.
func (s Scale[T]) InverseTransform(px T) (T, error) {
	p, err := s.Range.Transform(px)
	if err != nil {
		return 0, errors.Wrap(errors.GetCode(err), err, "scale range")
	}
	return s.Domain.InverseTransform(p), nil
}

// WithDomain returns a copy of s with its domain replaced.
func (s Scale[T]) WithDomain(domain Range[T]) Scale[T] {
	s.Domain = domain
	return s
}
