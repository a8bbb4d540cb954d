// Package coord implements the numeric coordinate model every chart is
// drawn in.
//
// # Overview
//
// A [Range] is a one-dimensional interval between Start and End. End may be
// smaller than Start: intensity axes are drawn top-down, so their device range
// runs from the canvas height to zero. A [Scale] composes two ranges, a data
// domain and a device range, into an affine mapping.
//
// Both types are generic over [constraints.Float] so that X and Y can carry
// independent precisions, for example float64 m/z values against float32
// intensities.
//
// # Degenerate Ranges
//
// Transforming through a zero-size domain would divide by zero. Instead of
// propagating NaN or Inf, [Range.Transform] and [Scale.Transform] return an
// error with code [errors.ErrCodeDegenerateScale]. Ranges with non-finite
// bounds fail with [errors.ErrCodeMalformedRange].
//
//	s := coord.NewScale(coord.Range[float64]{Start: 0, End: 100},
//	    coord.Range[float64]{Start: 0, End: 1400})
//	px, err := s.Transform(50) // 700, nil
//
// [errors.ErrCodeDegenerateScale]: github.com/mzsvg/mzsvg/pkg/errors
// [errors.ErrCodeMalformedRange]: github.com/mzsvg/mzsvg/pkg/errors
package coord
