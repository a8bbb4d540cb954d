package coord

import (
	"math"
	"testing"

	"github.com/mzsvg/mzsvg/pkg/errors"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Abs(b))
}

func TestRangeTransform(t *testing.T) {
	tests := []struct {
		name string
		r    Range[float64]
		v    float64
		want float64
	}{
		{"midpoint", NewRange(0.0, 100.0), 50, 0.5},
		{"outside", NewRange(0.0, 100.0), 150, 1.5},
		{"offset", NewRange(20.0, 120.0), 70, 0.5},
		{"inverted", NewRange(100.0, 0.0), 20, 0.8},
		{"at start", NewRange(-5.0, 5.0), -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.r.Transform(tt.v)
			if err != nil {
				t.Fatalf("Transform(%v) error: %v", tt.v, err)
			}
			if !approx(got, tt.want) {
				t.Errorf("Transform(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestRangeInverseTransform(t *testing.T) {
	r := NewRange(0.0, 160.0)
	if got := r.InverseTransform(0.5); got != 80 {
		t.Errorf("InverseTransform(0.5) = %v, want 80", got)
	}
}

func TestRangeRoundTrip(t *testing.T) {
	ranges := []Range[float64]{
		NewRange(0.0, 100.0),
		NewRange(100.0, 0.0),
		NewRange(-3.5, 812.25),
		NewRange(1e6, 1e-3),
	}
	values := []float64{-10, 0, 0.1, 42, 99.99, 1e5}

	for _, r := range ranges {
		for _, v := range values {
			p, err := r.Transform(v)
			if err != nil {
				t.Fatalf("%s.Transform(%v) error: %v", r, v, err)
			}
			if got := r.InverseTransform(p); !approx(got, v) {
				t.Errorf("%s round trip of %v = %v", r, v, got)
			}
		}
	}
}

func TestRangeClamp(t *testing.T) {
	tests := []struct {
		name string
		r    Range[float32]
		v    float32
		want float32
	}{
		{"inside", NewRange[float32](0, 10), 5, 5},
		{"below", NewRange[float32](0, 10), -1, 0},
		{"above", NewRange[float32](0, 10), 11, 10},
		{"inverted below", NewRange[float32](10, 0), -1, 0},
		{"inverted above", NewRange[float32](10, 0), 11, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Clamp(tt.v); got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestRangeErrors(t *testing.T) {
	tests := []struct {
		name string
		r    Range[float64]
		code errors.Code
	}{
		{"zero size", NewRange(5.0, 5.0), errors.ErrCodeDegenerateScale},
		{"nan start", NewRange(math.NaN(), 5.0), errors.ErrCodeMalformedRange},
		{"inf end", NewRange(0.0, math.Inf(1)), errors.ErrCodeMalformedRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.r.Transform(1)
			if err == nil {
				t.Fatalf("Transform() = %v, want error", got)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestRangeWiden(t *testing.T) {
	r := NewRange(100.0, 200.0).Widen(50, 150)
	if r.Start != 50 || r.End != 200 {
		t.Errorf("Widen() = %s, want [50, 200]", r)
	}

	inv := NewRange(1000.0, 0.0).Widen(0, 2500)
	if inv.Start != 2500 || inv.End != 0 {
		t.Errorf("inverted Widen() = %s, want [2500, 0]", inv)
	}

	same := NewRange(0.0, 10.0).Widen(2, 3)
	if same != NewRange(0.0, 10.0) {
		t.Errorf("Widen() shrank range to %s", same)
	}
}

func TestScaleTransform(t *testing.T) {
	s := NewScale(NewRange(0.0, 100.0), NewRange(0.0, 1400.0))
	got, err := s.Transform(50)
	if err != nil {
		t.Fatal(err)
	}
	if got != 700 {
		t.Errorf("Transform(50) = %v, want 700", got)
	}

	back, err := s.InverseTransform(got)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(back, 50) {
		t.Errorf("InverseTransform(700) = %v, want 50", back)
	}
}

func TestScaleInvertedDevice(t *testing.T) {
	// Intensity axes map 0 to the bottom of the canvas.
	s := NewScale(NewRange[float32](1000, 0), NewRange[float32](0, 600))
	tests := []struct{ v, want float32 }{
		{1000, 0},
		{0, 600},
		{250, 450},
	}
	for _, tt := range tests {
		got, err := s.Transform(tt.v)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Transform(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestScaleDegenerate(t *testing.T) {
	s := NewScale(NewRange(3.0, 3.0), NewRange(0.0, 100.0))
	if _, err := s.Transform(3); !errors.Is(err, errors.ErrCodeDegenerateScale) {
		t.Errorf("Transform() error = %v, want %s", err, errors.ErrCodeDegenerateScale)
	}

	s = NewScale(NewRange(0.0, 10.0), NewRange(50.0, 50.0))
	if _, err := s.InverseTransform(50); !errors.Is(err, errors.ErrCodeDegenerateScale) {
		t.Errorf("InverseTransform() error = %v, want %s", err, errors.ErrCodeDegenerateScale)
	}
}
