package svg

import (
	"math"
	"strings"
	"testing"
)

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{-0.0001, "0"},
		{1, "1"},
		{1.5, "1.5"},
		{1.23456, "1.235"},
		{-42.1, "-42.1"},
		{600, "600"},
	}
	for _, tt := range tests {
		if got := Num(tt.in); got != tt.want {
			t.Errorf("Num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestElementSetReplaces(t *testing.T) {
	e := New("line").Set("x1", 1.0).Set("stroke", "black").Set("x1", 2.5)
	if len(e.Attrs) != 2 {
		t.Fatalf("len(Attrs) = %d, want 2", len(e.Attrs))
	}
	if v, _ := e.Get("x1"); v != "2.5" {
		t.Errorf("x1 = %q, want 2.5", v)
	}
}

func TestElementString(t *testing.T) {
	g := Group().Class("tick").Set("transform", Translate(10, 0))
	g.Add(New("line").Set("stroke", "black").Set("y2", 6))
	g.Add(New("text").SetText("1 < 2 & 3"))

	want := `<g class="tick" transform="translate(10,0)">
  <line stroke="black" y2="6"/>
  <text>1 &lt; 2 &amp; 3</text>
</g>
`
	if got := g.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestElementAttrEscaping(t *testing.T) {
	e := New("text").Set("data-label", `a"b<c`)
	if got := e.String(); !strings.Contains(got, `data-label="a&quot;b&lt;c"`) {
		t.Errorf("attribute not escaped: %s", got)
	}
}

func TestElementCDATA(t *testing.T) {
	e := New("style")
	e.CDATA = true
	e.SetText(".x-axis > text { fill: red; }")
	if got := e.String(); !strings.Contains(got, "<![CDATA[.x-axis > text { fill: red; }]]>") {
		t.Errorf("style = %s", got)
	}
}

func TestElementFind(t *testing.T) {
	root := Group().Class("canvas")
	data := Group().Class("data-canvas")
	root.Add(data, nil, Group().Class("x-axis"))
	data.Add(New("path").Class("profile"), New("path").Class("centroid"))

	if len(root.Children) != 2 {
		t.Errorf("nil child was added")
	}
	if f := root.Find(WithClass("centroid")); f == nil || f.Name != "path" {
		t.Errorf("Find(centroid) = %v", f)
	}
	if got := len(root.FindAll(WithName("path"))); got != 2 {
		t.Errorf("FindAll(path) = %d, want 2", got)
	}
	if root.Find(WithClass("missing")) != nil {
		t.Error("Find(missing) != nil")
	}
}

func TestPath(t *testing.T) {
	var p Path
	p.MoveTo(0, 600).LineTo(10.5, 20).LineBy(0, -3).Close()
	if got, want := p.String(), "M0,600 L10.5,20 l0,-3 Z"; got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
	if p.Len() != 4 {
		t.Errorf("Len() = %d, want 4", p.Len())
	}
}

func TestPoints(t *testing.T) {
	if got, want := Points([]float64{1, 2}, []float64{3, 4.25}), "1,3 2,4.25"; got != want {
		t.Errorf("Points = %q, want %q", got, want)
	}
}
