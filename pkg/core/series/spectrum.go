package series

import (
	"github.com/mzsvg/mzsvg/pkg/spectrum"
)

// Labels of the series built from spectrum records.
const (
	LabelProfile      = "profile"
	LabelCentroid     = "centroid"
	LabelDeconvoluted = "deconvoluted-centroid"
	LabelPrecursor    = "precursor"
)

// FromProfile builds a profile series from raw signal arrays.
func FromProfile(a *spectrum.Arrays) *Continuous[float64, float32] {
	n := a.Len()
	points := make([]Point[float64, float32], n)
	for i := 0; i < n; i++ {
		points[i] = Point[float64, float32]{X: a.MZ[i], Y: a.Intensity[i]}
	}
	return &Continuous[float64, float32]{Points: points, desc: NewDescription(LabelProfile)}
}

// FromPeaks builds a centroid series.
func FromPeaks(peaks []spectrum.Peak) *Centroid[float64, float32] {
	out := make([]Peak[float64, float32], len(peaks))
	for i, p := range peaks {
		out[i] = Peak[float64, float32]{MZ: p.MZ, Intensity: p.Intensity}
	}
	return &Centroid[float64, float32]{Peaks: out, desc: NewDescription(LabelCentroid)}
}

// FromDeconvoluted builds a deconvoluted centroid series.
func FromDeconvoluted(peaks []spectrum.DeconvolutedPeak) *DeconvolutedCentroid[float64, float32] {
	out := make([]DeconvolutedPeak[float64, float32], len(peaks))
	for i, p := range peaks {
		out[i] = DeconvolutedPeak[float64, float32]{
			MZ:          p.MZ,
			Intensity:   p.Intensity,
			Charge:      p.Charge,
			NeutralMass: p.NeutralMass,
		}
	}
	return &DeconvolutedCentroid[float64, float32]{Peaks: out, desc: NewDescription(LabelDeconvoluted)}
}

// FromPrecursor builds a precursor marker.
func FromPrecursor(p *spectrum.Precursor) *Precursor[float64, float32] {
	return NewPrecursor(p.MZ, p.Intensity, p.Charge, NewDescription(LabelPrecursor))
}

// FromFeature builds a trace over (time, intensity), labelled by the
// feature kind.
func FromFeature(f *spectrum.Feature) *Trace[float64, float32] {
	points := make([]Point[float64, float32], len(f.Points))
	for i, p := range f.Points {
		points[i] = Point[float64, float32]{X: p.Time, Y: p.Intensity}
	}
	return &Trace[float64, float32]{Points: points, desc: NewDescription(f.Kind())}
}
