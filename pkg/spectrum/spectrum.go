// Package spectrum defines the records charts are drawn from.
//
// These are plain, read-only views of data produced elsewhere (instrument
// readers, peak pickers, deconvolution): a mass [Spectrum] with its profile
// arrays, centroids, deconvoluted peaks, precursor and scan windows, and a
// [Feature] tracing one ion species over time. The JSON encoding of these
// types is the input format of the CLI and the HTTP service.
package spectrum

import (
	"math"

	"github.com/mzsvg/mzsvg/pkg/errors"
)

// Continuity describes how the signal of a spectrum was acquired.
type Continuity string

const (
	ContinuityUnknown  Continuity = ""
	ContinuityProfile  Continuity = "profile"
	ContinuityCentroid Continuity = "centroid"
)

// Arrays holds the raw signal as parallel m/z and intensity arrays.
type Arrays struct {
	MZ        []float64 `json:"mz"`
	Intensity []float32 `json:"intensity"`
}

// Len returns the number of samples.
func (a *Arrays) Len() int {
	if a == nil {
		return 0
	}
	return min(len(a.MZ), len(a.Intensity))
}

// Peak is a centroided peak.
type Peak struct {
	MZ        float64 `json:"mz"`
	Intensity float32 `json:"intensity"`
}

// DeconvolutedPeak is a charge-deconvolved peak.
type DeconvolutedPeak struct {
	NeutralMass float64 `json:"neutral_mass"`
	MZ          float64 `json:"mz"`
	Intensity   float32 `json:"intensity"`
	Charge      int     `json:"charge"`
}

// Precursor is the ion selected in a previous scan.
type Precursor struct {
	MZ        float64 `json:"mz"`
	Intensity float32 `json:"intensity"`
	Charge    int     `json:"charge,omitempty"`
}

// ScanWindow is an m/z interval the instrument acquired.
type ScanWindow struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Spectrum is one mass spectrum.
type Spectrum struct {
	ID           string             `json:"id"`
	MSLevel      int                `json:"ms_level,omitempty"`
	Continuity   Continuity         `json:"continuity,omitempty"`
	Arrays       *Arrays            `json:"arrays,omitempty"`
	Peaks        []Peak             `json:"peaks,omitempty"`
	Deconvoluted []DeconvolutedPeak `json:"deconvoluted_peaks,omitempty"`
	Precursor    *Precursor         `json:"precursor,omitempty"`
	ScanWindows  []ScanWindow       `json:"scan_windows,omitempty"`
}

// DefaultScanWindow is assumed when a spectrum declares none.
var DefaultScanWindow = ScanWindow{Lower: 50, Upper: 2000}

// IsProfile reports whether the raw arrays hold profile signal.
func (s *Spectrum) IsProfile() bool {
	return s.Continuity == ContinuityProfile && s.Arrays.Len() > 0
}

// BasePeak returns the most intense signal, looking at centroids first,
// then deconvoluted peaks, then the raw arrays.
func (s *Spectrum) BasePeak() (Peak, bool) {
	var best Peak
	found := false
	take := func(mz float64, in float32) {
		if !found || in > best.Intensity {
			best, found = Peak{MZ: mz, Intensity: in}, true
		}
	}

	switch {
	case len(s.Peaks) > 0:
		for _, p := range s.Peaks {
			take(p.MZ, p.Intensity)
		}
	case len(s.Deconvoluted) > 0:
		for _, p := range s.Deconvoluted {
			take(p.MZ, p.Intensity)
		}
	default:
		for i, n := 0, s.Arrays.Len(); i < n; i++ {
			take(s.Arrays.MZ[i], s.Arrays.Intensity[i])
		}
	}
	return best, found
}

// ScanRange returns the union of the scan windows, or [DefaultScanWindow].
func (s *Spectrum) ScanRange() ScanWindow {
	if len(s.ScanWindows) == 0 {
		return DefaultScanWindow
	}
	w := ScanWindow{Lower: math.Inf(1), Upper: math.Inf(-1)}
	for _, sw := range s.ScanWindows {
		w.Lower = min(w.Lower, sw.Lower)
		w.Upper = max(w.Upper, sw.Upper)
	}
	return w
}

// MZBounds returns the smallest and largest m/z carried by any layer.
func (s *Spectrum) MZBounds() (float64, float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, n := 0, s.Arrays.Len(); i < n; i++ {
		lo, hi = min(lo, s.Arrays.MZ[i]), max(hi, s.Arrays.MZ[i])
	}
	for _, p := range s.Peaks {
		lo, hi = min(lo, p.MZ), max(hi, p.MZ)
	}
	for _, p := range s.Deconvoluted {
		lo, hi = min(lo, p.MZ), max(hi, p.MZ)
	}
	return lo, hi, lo <= hi
}

// MaxIntensityIn returns the largest intensity with m/z in [lo, hi].
func (s *Spectrum) MaxIntensityIn(lo, hi float64) float32 {
	var m float32
	for i, n := 0, s.Arrays.Len(); i < n; i++ {
		if mz := s.Arrays.MZ[i]; mz >= lo && mz <= hi {
			m = max(m, s.Arrays.Intensity[i])
		}
	}
	for _, p := range s.Peaks {
		if p.MZ >= lo && p.MZ <= hi {
			m = max(m, p.Intensity)
		}
	}
	for _, p := range s.Deconvoluted {
		if p.MZ >= lo && p.MZ <= hi {
			m = max(m, p.Intensity)
		}
	}
	return m
}

// Validate checks that arrays are aligned and values finite.
func (s *Spectrum) Validate() error {
	if s.Arrays != nil && len(s.Arrays.MZ) != len(s.Arrays.Intensity) {
		return errors.New(errors.ErrCodeInvalidInput,
			"spectrum %q: %d m/z values but %d intensities", s.ID, len(s.Arrays.MZ), len(s.Arrays.Intensity))
	}
	for i, n := 0, s.Arrays.Len(); i < n; i++ {
		if err := checkFinite(s.Arrays.MZ[i], float64(s.Arrays.Intensity[i])); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "spectrum %q sample %d", s.ID, i)
		}
	}
	for i, p := range s.Peaks {
		if err := checkFinite(p.MZ, float64(p.Intensity)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "spectrum %q peak %d", s.ID, i)
		}
	}
	for i, p := range s.Deconvoluted {
		if err := checkFinite(p.MZ, float64(p.Intensity)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "spectrum %q deconvoluted peak %d", s.ID, i)
		}
	}
	for i, w := range s.ScanWindows {
		if err := checkFinite(w.Lower, w.Upper); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "spectrum %q scan window %d", s.ID, i)
		}
	}
	return nil
}

func checkFinite(vals ...float64) error {
	for _, v := range vals {
		if err := errors.ValidateFinite("value", v); err != nil {
			return err
		}
	}
	return nil
}
