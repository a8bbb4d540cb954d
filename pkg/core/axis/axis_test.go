package axis

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/mzsvg/mzsvg/pkg/core/coord"
	"github.com/mzsvg/mzsvg/pkg/core/svg"
	"github.com/mzsvg/mzsvg/pkg/errors"
)

func TestTickFormat(t *testing.T) {
	domain := coord.NewRange(10000.0, 0.0)
	tests := []struct {
		name   string
		format TickFormat
		value  float64
		want   string
	}{
		{"precision", Precision(2), 1234.5, "1234.50"},
		{"precision zero", Precision(0), 99.6, "100"},
		{"scinot", SciNot(2), 2500, "2.50e3"},
		{"scinot small", SciNot(2), 0.0123, "1.23e-2"},
		{"scinot zero", SciNot(1), 0, "0.0e0"},
		{"percentile", Percentile{Precision: 2}, 2500, "25.00%"},
		{"percentile max", Percentile{Precision: 2}, 10000, "100.00%"},
		{"percentile explicit max", PercentileOf(1, 5000), 2500, "50.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.Format(tt.value, domain); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestPercentileZeroDomain(t *testing.T) {
	got := Percentile{Precision: 2}.Format(0, coord.NewRange(0.0, 0.0))
	if got != "0.00%" {
		t.Errorf("Format() = %q, want 0.00%%", got)
	}
}

func TestParseTickFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    TickFormat
		wantErr bool
	}{
		{"precision", Precision(3), false},
		{"", Precision(3), false},
		{"scinot", SciNot(3), false},
		{"percentile", Percentile{Precision: 3}, false},
		{"log", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTickFormat(tt.name, 3)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTickFormat(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTickFormat(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name   string
		props  Props[float64]
		domain coord.Range[float64]
		want   []float64
	}{
		{"default", NewProps[float64](Bottom), coord.NewRange(0.0, 100.0), []float64{0, 20, 40, 60, 80, 100}},
		{"inverted", NewProps[float64](Left), coord.NewRange(1000.0, 0.0), []float64{0, 200, 400, 600, 800, 1000}},
		{"zero width", NewProps[float64](Bottom), coord.NewRange(5.0, 5.0), []float64{5}},
		{
			"explicit",
			Props[float64]{TickValues: []float64{1, 2, 3}},
			coord.NewRange(0.0, 10.0),
			[]float64{1, 2, 3},
		},
		{"two intervals", Props[float64]{TickCount: 2}, coord.NewRange(10.0, 20.0), []float64{10, 15, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.props.Ticks(tt.domain)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Ticks(%s) = %v, want %v", tt.domain, got, tt.want)
			}
		})
	}
}

func TestTicksMalformed(t *testing.T) {
	_, err := NewProps[float64](Bottom).Ticks(coord.NewRange(0, math.Inf(1)))
	if !errors.Is(err, errors.ErrCodeMalformedRange) {
		t.Errorf("Ticks() error = %v, want %s", err, errors.ErrCodeMalformedRange)
	}
}

func TestTicksNice(t *testing.T) {
	p := NewProps[float64](Bottom)
	p.Nice = true
	got, err := p.Ticks(coord.NewRange(47.5, 2100.0))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) < 2 {
		t.Fatalf("Ticks() = %v, want at least two ticks", got)
	}
	if !slices.IsSorted(got) {
		t.Errorf("Ticks() = %v, not ascending", got)
	}
	for _, v := range got {
		if v < 47.5 || v > 2100 {
			t.Errorf("tick %v outside domain", v)
		}
	}
}

func TestTickSpacing(t *testing.T) {
	if got := NewProps[float32](Left).TickSpacing(); got != 15 {
		t.Errorf("TickSpacing() = %v, want 15", got)
	}
	p := NewProps[float32](Left)
	p.TickSizeInner = -4
	if got := p.TickSpacing(); got != 9 {
		t.Errorf("TickSpacing() with negative inner = %v, want 9", got)
	}
}

func TestRenderBottom(t *testing.T) {
	p := NewProps[float64](Bottom)
	p.Label = "m/z"
	scale := coord.NewScale(coord.NewRange(0.0, 100.0), coord.NewRange(0.0, 1400.0))

	g, err := p.Render(scale, 1400, 600)
	if err != nil {
		t.Fatal(err)
	}

	if v, _ := g.Get("class"); v != "x-axis" {
		t.Errorf("class = %q, want x-axis", v)
	}
	if v, _ := g.Get("transform"); v != "translate(0,600)" {
		t.Errorf("transform = %q, want translate(0,600)", v)
	}
	if v, _ := g.Get("text-anchor"); v != "middle" {
		t.Errorf("text-anchor = %q, want middle", v)
	}

	ticks := g.FindAll(svg.WithClass("tick"))
	if len(ticks) != 6 {
		t.Fatalf("len(ticks) = %d, want 6", len(ticks))
	}
	if v, _ := ticks[1].Get("transform"); v != "translate(280,0)" {
		t.Errorf("tick[1] transform = %q, want translate(280,0)", v)
	}
	if text := ticks[5].Find(svg.WithName("text")); text.Text != "100.00" {
		t.Errorf("tick[5] label = %q, want 100.00", text.Text)
	}
	if line := ticks[0].Find(svg.WithName("line")); line == nil {
		t.Error("tick has no line")
	} else if v, _ := line.Get("y2"); v != "6" {
		t.Errorf("tick line y2 = %q, want 6", v)
	}

	domain := g.Find(svg.WithClass("domain"))
	if d, _ := domain.Get("d"); d != "M-1,0 L1401,0" {
		t.Errorf("domain path = %q", d)
	}

	title := g.Find(svg.WithClass("axis-label"))
	if title == nil {
		t.Fatal("missing axis title")
	}
	if v, _ := title.Get("transform"); v != "translate(700,0)" {
		t.Errorf("title transform = %q", v)
	}
	if text := title.Find(svg.WithName("text")); text.Text != "m/z" {
		t.Errorf("title = %q", text.Text)
	}
}

func TestRenderLeftPercentile(t *testing.T) {
	p := NewProps[float32](Left)
	p.TickFormat = Percentile{Precision: 2}
	p.Label = "Intensity"
	scale := coord.NewScale(coord.NewRange[float32](10000, 0), coord.NewRange[float32](0, 600))

	g, err := p.Render(scale, 1400, 600)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.Get("transform"); ok {
		t.Error("left axis should not be translated")
	}
	if v, _ := g.Get("text-anchor"); v != "end" {
		t.Errorf("text-anchor = %q, want end", v)
	}

	var labels []string
	for _, tick := range g.FindAll(svg.WithClass("tick")) {
		labels = append(labels, tick.Find(svg.WithName("text")).Text)
	}
	want := []string{"0.00%", "20.00%", "40.00%", "60.00%", "80.00%", "100.00%"}
	if !slices.Equal(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}

	title := g.Find(svg.WithClass("axis-label"))
	if v, _ := title.Get("transform"); v != "translate(0,300)rotate(-90)" {
		t.Errorf("title transform = %q", v)
	}
}

func TestRenderAllOrientations(t *testing.T) {
	tests := []struct {
		o         Orientation
		transform string
		anchor    string
		lineAttr  string
		lineValue string
		titleRot  string
	}{
		{Top, "", "middle", "y2", "-6", ""},
		{Right, "translate(800,0)", "start", "x2", "6", "rotate(90)"},
		{Bottom, "translate(0,400)", "middle", "y2", "6", ""},
		{Left, "", "end", "x2", "-6", "rotate(-90)"},
	}

	for _, tt := range tests {
		t.Run(tt.o.String(), func(t *testing.T) {
			p := NewProps[float64](tt.o)
			p.Label = "title"
			scale := coord.NewScale(coord.NewRange(0.0, 1.0), coord.NewRange(0.0, 400.0))
			g, err := p.Render(scale, 800, 400)
			if err != nil {
				t.Fatal(err)
			}
			if v, _ := g.Get("transform"); v != tt.transform {
				t.Errorf("transform = %q, want %q", v, tt.transform)
			}
			if v, _ := g.Get("text-anchor"); v != tt.anchor {
				t.Errorf("text-anchor = %q, want %q", v, tt.anchor)
			}
			line := g.Find(svg.WithName("line"))
			if v, _ := line.Get(tt.lineAttr); v != tt.lineValue {
				t.Errorf("line %s = %q, want %q", tt.lineAttr, v, tt.lineValue)
			}
			title := g.Find(svg.WithClass("axis-label"))
			if v, _ := title.Get("transform"); !strings.HasSuffix(v, tt.titleRot) {
				t.Errorf("title transform = %q, want suffix %q", v, tt.titleRot)
			}
		})
	}
}

func TestRenderZeroWidthDomain(t *testing.T) {
	p := NewProps[float64](Bottom)
	scale := coord.NewScale(coord.NewRange(7.0, 7.0), coord.NewRange(0.0, 100.0))
	g, err := p.Render(scale, 100, 50)
	if err != nil {
		t.Fatal(err)
	}
	ticks := g.FindAll(svg.WithClass("tick"))
	if len(ticks) != 1 {
		t.Fatalf("len(ticks) = %d, want 1", len(ticks))
	}
	if v, _ := ticks[0].Get("transform"); v != "translate(50,0)" {
		t.Errorf("tick transform = %q, want translate(50,0)", v)
	}
}

func TestParseOrientation(t *testing.T) {
	for _, o := range []Orientation{Top, Right, Bottom, Left} {
		got, err := ParseOrientation(o.String())
		if err != nil || got != o {
			t.Errorf("ParseOrientation(%q) = %v, %v", o.String(), got, err)
		}
	}
	if _, err := ParseOrientation("diagonal"); err == nil {
		t.Error("ParseOrientation(diagonal) succeeded")
	}
}
