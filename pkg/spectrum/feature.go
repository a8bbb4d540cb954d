package spectrum

import (
	"math"

	"github.com/mzsvg/mzsvg/pkg/errors"
)

// Feature kinds, used as series labels.
const (
	KindFeature        = "feature"
	KindChargedFeature = "charged-feature"
	KindSimpleFeature  = "simple-feature"
)

// FeaturePoint is one observation of a feature.
type FeaturePoint struct {
	MZ        float64 `json:"mz,omitempty"`
	Time      float64 `json:"time"`
	Intensity float32 `json:"intensity"`
}

// Feature is the signal of one ion species over time. A feature without
// m/z values is a plain chromatogram trace.
type Feature struct {
	ID     string         `json:"id"`
	Charge int            `json:"charge,omitempty"`
	Points []FeaturePoint `json:"points"`
}

// Kind classifies the feature for labelling.
func (f *Feature) Kind() string {
	if f.Charge != 0 {
		return KindChargedFeature
	}
	for _, p := range f.Points {
		if p.MZ != 0 {
			return KindFeature
		}
	}
	return KindSimpleFeature
}

// TimeBounds returns the first and last observation time.
func (f *Feature) TimeBounds() (float64, float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range f.Points {
		lo, hi = min(lo, p.Time), max(hi, p.Time)
	}
	return lo, hi, lo <= hi
}

// MaxIntensity returns the apex intensity.
func (f *Feature) MaxIntensity() float32 {
	var m float32
	for _, p := range f.Points {
		m = max(m, p.Intensity)
	}
	return m
}

// Validate checks that all values are finite.
func (f *Feature) Validate() error {
	for i, p := range f.Points {
		if err := checkFinite(p.MZ, p.Time, float64(p.Intensity)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "feature %q point %d", f.ID, i)
		}
	}
	return nil
}
