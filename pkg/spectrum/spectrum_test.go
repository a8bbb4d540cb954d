package spectrum

import (
	"math"
	"testing"

	"github.com/mzsvg/mzsvg/pkg/errors"
)

func TestBasePeak(t *testing.T) {
	tests := []struct {
		name   string
		s      Spectrum
		want   Peak
		wantOK bool
	}{
		{
			name: "centroids first",
			s: Spectrum{
				Peaks:  []Peak{{MZ: 100, Intensity: 5}, {MZ: 200, Intensity: 20}},
				Arrays: &Arrays{MZ: []float64{300}, Intensity: []float32{1000}},
			},
			want: Peak{MZ: 200, Intensity: 20}, wantOK: true,
		},
		{
			name: "deconvoluted",
			s:    Spectrum{Deconvoluted: []DeconvolutedPeak{{MZ: 500.5, Intensity: 7, Charge: 2}}},
			want: Peak{MZ: 500.5, Intensity: 7}, wantOK: true,
		},
		{
			name: "arrays",
			s:    Spectrum{Arrays: &Arrays{MZ: []float64{1, 2, 3}, Intensity: []float32{4, 9, 2}}},
			want: Peak{MZ: 2, Intensity: 9}, wantOK: true,
		},
		{name: "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.s.BasePeak()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("BasePeak() = %+v, %v, want %+v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestScanRange(t *testing.T) {
	var s Spectrum
	if got := s.ScanRange(); got != DefaultScanWindow {
		t.Errorf("ScanRange() = %+v, want default", got)
	}
	s.ScanWindows = []ScanWindow{{Lower: 200, Upper: 800}, {Lower: 100, Upper: 400}}
	if got := s.ScanRange(); got != (ScanWindow{Lower: 100, Upper: 800}) {
		t.Errorf("ScanRange() = %+v, want [100, 800]", got)
	}
}

func TestIsProfile(t *testing.T) {
	s := Spectrum{Continuity: ContinuityProfile}
	if s.IsProfile() {
		t.Error("profile without arrays reported as profile")
	}
	s.Arrays = &Arrays{MZ: []float64{1}, Intensity: []float32{1}}
	if !s.IsProfile() {
		t.Error("IsProfile() = false")
	}
}

func TestMaxIntensityIn(t *testing.T) {
	s := Spectrum{
		Arrays: &Arrays{MZ: []float64{100, 150}, Intensity: []float32{3, 30}},
		Peaks:  []Peak{{MZ: 160, Intensity: 20}, {MZ: 400, Intensity: 99}},
	}
	if got := s.MaxIntensityIn(120, 200); got != 30 {
		t.Errorf("MaxIntensityIn(120, 200) = %v, want 30", got)
	}
	if got := s.MaxIntensityIn(500, 600); got != 0 {
		t.Errorf("MaxIntensityIn(500, 600) = %v, want 0", got)
	}
	lo, hi, ok := s.MZBounds()
	if !ok || lo != 100 || hi != 400 {
		t.Errorf("MZBounds() = %v, %v, %v", lo, hi, ok)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Spectrum
		wantErr bool
	}{
		{"empty", Spectrum{}, false},
		{"aligned", Spectrum{Arrays: &Arrays{MZ: []float64{1}, Intensity: []float32{1}}}, false},
		{"misaligned", Spectrum{Arrays: &Arrays{MZ: []float64{1, 2}, Intensity: []float32{1}}}, true},
		{"nan peak", Spectrum{Peaks: []Peak{{MZ: math.NaN(), Intensity: 1}}}, true},
		{"inf window", Spectrum{ScanWindows: []ScanWindow{{Lower: 0, Upper: math.Inf(1)}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Validate() code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestFeature(t *testing.T) {
	f := Feature{Points: []FeaturePoint{{Time: 3, Intensity: 1}, {Time: 1, Intensity: 8}}}
	if f.Kind() != KindSimpleFeature {
		t.Errorf("Kind() = %s", f.Kind())
	}
	f.Points[0].MZ = 500
	if f.Kind() != KindFeature {
		t.Errorf("Kind() = %s", f.Kind())
	}
	f.Charge = 2
	if f.Kind() != KindChargedFeature {
		t.Errorf("Kind() = %s", f.Kind())
	}

	lo, hi, ok := f.TimeBounds()
	if !ok || lo != 1 || hi != 3 {
		t.Errorf("TimeBounds() = %v, %v, %v", lo, hi, ok)
	}
	if f.MaxIntensity() != 8 {
		t.Errorf("MaxIntensity() = %v", f.MaxIntensity())
	}
	if _, _, ok := (&Feature{}).TimeBounds(); ok {
		t.Error("TimeBounds() on empty feature reported ok")
	}

	f.Points[1].Time = math.Inf(-1)
	if err := f.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Validate() error = %v", err)
	}
}
