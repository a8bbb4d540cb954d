package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/mzsvg/mzsvg/pkg/cache"
	"github.com/mzsvg/mzsvg/pkg/config"
	"github.com/mzsvg/mzsvg/pkg/core/render"
	"github.com/mzsvg/mzsvg/pkg/errors"
)

const spectrumJSON = `{
  "id": "scan=1",
  "continuity": "centroid",
  "peaks": [{"mz": 150, "intensity": 10}, {"mz": 250, "intensity": 40}, {"mz": 900, "intensity": 100}],
  "precursor": {"mz": 600.25, "intensity": 50, "charge": 2}
}`

const featureJSON = `{
  "id": "f1",
  "charge": 2,
  "points": [{"mz": 600.2, "time": 10, "intensity": 3}, {"mz": 600.2, "time": 11, "intensity": 9}, {"mz": 600.2, "time": 12, "intensity": 4}]
}`

func testRunner(t *testing.T) (*Runner, *cache.FileCache) {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, nil), c
}

func withoutConverter(t *testing.T) {
	t.Helper()
	prev := render.Converter
	render.Converter = "mzsvg-missing-converter"
	t.Cleanup(func() { render.Converter = prev })
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format error = %v", err)
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height, cfg.PNGScale = 900, 300, 2

	opts := Options{Kind: KindSpectrum, Formats: []string{"svg", "png", "svg"}, Config: cfg}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 2 {
		t.Errorf("Formats = %v, want deduplicated", opts.Formats)
	}
	if opts.Width != 900 || opts.Height != 300 || opts.PNGScale != 2 {
		t.Errorf("defaults from config = %dx%d scale %g", opts.Width, opts.Height, opts.PNGScale)
	}

	flagged := Options{Kind: KindSpectrum, Width: 400, Height: 100, Config: cfg}
	if err := flagged.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if flagged.Width != 400 || flagged.Height != 100 {
		t.Errorf("explicit size overridden: %dx%d", flagged.Width, flagged.Height)
	}
	if flagged.Formats[0] != FormatSVG {
		t.Errorf("default formats = %v", flagged.Formats)
	}
}

func TestOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"kind", Options{Kind: "chromatogram"}, errors.ErrCodeInvalidInput},
		{"format", Options{Kind: KindSpectrum, Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"size", Options{Kind: KindSpectrum, Width: -1, Height: 10}, errors.ErrCodeInvalidInput},
		{"xlim", Options{Kind: KindSpectrum, XLim: "5-1"}, errors.ErrCodeInvalidRange},
		{"zoom", Options{Kind: KindSpectrum, ZoomY: true}, errors.ErrCodeInvalidRange},
		{"negative index", Options{Kind: KindSpectrum, Index: intPtr(-1)}, errors.ErrCodeInvalidInput},
		{"index and id", Options{Kind: KindSpectrum, Index: intPtr(0), ScanID: "scan=1"}, errors.ErrCodeInvalidInput},
		{"select on overlay", Options{Kind: KindOverlay, ScanID: "scan=1"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecuteSpectrum(t *testing.T) {
	r, _ := testRunner(t)
	ctx := context.Background()
	opts := Options{Kind: KindSpectrum, Width: 600, Height: 200, XLim: "100-700", Title: "scan=1"}

	res, err := r.Execute(ctx, []byte(spectrumJSON), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK() || res.CacheInfo.DocumentHit {
		t.Errorf("first run: failures %v, hit %v", res.Failures, res.CacheInfo.DocumentHit)
	}
	doc := string(res.Artifacts[FormatSVG])
	for _, want := range []string{`viewBox="0 0 720 320"`, `<title>scan=1</title>`, `id="centroid-1"`, `id="precursor-1"`} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if res.Stats.Records != 1 || len(res.InputHash) != 64 {
		t.Errorf("stats = %+v, hash %q", res.Stats, res.InputHash)
	}

	again, err := r.Execute(ctx, []byte(strings.ReplaceAll(spectrumJSON, "\n", " ")), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.DocumentHit {
		t.Error("reformatted input missed the cache")
	}
	if string(again.Artifacts[FormatSVG]) != doc {
		t.Error("cached document differs")
	}

	opts.Refresh = true
	fresh, err := r.Execute(ctx, []byte(spectrumJSON), opts)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.CacheInfo.DocumentHit {
		t.Error("Refresh still read the cache")
	}
}

func TestExecuteZoom(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), []byte(spectrumJSON), Options{
		Kind: KindSpectrum, XLim: "100-300", ZoomY: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	doc := string(res.Artifacts[FormatSVG])
	if !strings.Contains(doc, "40.00%") {
		t.Error("zoomed y axis should be labelled relative to the base peak")
	}
	if strings.Contains(doc, `id="precursor-1"><`) {
		t.Error("precursor outside the x range was drawn")
	}
}

func TestExecuteRasterFailure(t *testing.T) {
	withoutConverter(t)
	r := NewRunner(nil, nil, nil)

	res, err := r.Execute(context.Background(), []byte(spectrumJSON), Options{
		Kind: KindSpectrum, Formats: []string{"svg", "png", "pdf"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.OK() || len(res.Failures) != 2 {
		t.Fatalf("Failures = %v, want png and pdf", res.Failures)
	}
	for format, err := range res.Failures {
		if !errors.Is(err, errors.ErrCodeRasterize) {
			t.Errorf("%s failure = %v, want %s", format, err, errors.ErrCodeRasterize)
		}
	}
	if len(res.Artifacts[FormatSVG]) == 0 {
		t.Error("svg missing after raster failure")
	}
}

func TestExecuteFeature(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), []byte(featureJSON), Options{Kind: KindFeature, Color: "teal"})
	if err != nil {
		t.Fatal(err)
	}
	doc := string(res.Artifacts[FormatSVG])
	for _, want := range []string{`id="charged-feature-1"`, `fill="teal"`, `Time`} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestExecuteOverlay(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	input := `[` + spectrumJSON + `, {"id": "scan=2", "peaks": [{"mz": 300, "intensity": 500}], "scan_windows": [{"lower": 100, "upper": 3000}]}]`
	res, err := r.Execute(context.Background(), []byte(input), Options{Kind: KindOverlay})
	if err != nil {
		t.Fatal(err)
	}
	doc := string(res.Artifacts[FormatSVG])
	for _, want := range []string{`id="centroid-1"`, `id="centroid-2"`, `stroke="black"`} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if res.Stats.Records != 2 {
		t.Errorf("Records = %d, want 2", res.Stats.Records)
	}
}

func TestExecuteBadInput(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	tests := []struct {
		name  string
		input string
		kind  string
		code  errors.Code
	}{
		{"malformed", `{"id":`, KindSpectrum, errors.ErrCodeInvalidFormat},
		{"not finite", `{"peaks": [{"mz": 1, "intensity": 1}], "scan_windows": [{"lower": 1, "upper": 1e400}]}`, KindSpectrum, errors.ErrCodeInvalidFormat},
		{"misaligned", `{"arrays": {"mz": [1], "intensity": []}}`, KindSpectrum, errors.ErrCodeInvalidInput},
		{"empty overlay", `[]`, KindOverlay, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), []byte(tt.input), Options{Kind: tt.kind})
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func intPtr(i int) *int { return &i }

const spectrumListJSON = `[` + spectrumJSON + `, {"id": "scan=2", "peaks": [{"mz": 300, "intensity": 500}]}]`

func TestExecuteSpectrumList(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	single, err := r.Execute(context.Background(), []byte(spectrumJSON), Options{Kind: KindSpectrum})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		opts     Options
		wantHash string
		wantCode errors.Code
	}{
		{"by index", Options{Kind: KindSpectrum, Index: intPtr(0)}, single.InputHash, ""},
		{"by id", Options{Kind: KindSpectrum, ScanID: "scan=1"}, single.InputHash, ""},
		{"second", Options{Kind: KindSpectrum, Index: intPtr(1)}, "", ""},
		{"no selector", Options{Kind: KindSpectrum}, "", errors.ErrCodeInvalidInput},
		{"index out of range", Options{Kind: KindSpectrum, Index: intPtr(2)}, "", errors.ErrCodeInvalidInput},
		{"unknown id", Options{Kind: KindSpectrum, ScanID: "scan=9"}, "", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Execute(context.Background(), []byte(spectrumListJSON), tt.opts)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("Execute() error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if res.Stats.Records != 1 {
				t.Errorf("Records = %d, want 1", res.Stats.Records)
			}
			if tt.wantHash != "" && res.InputHash != tt.wantHash {
				t.Errorf("InputHash = %s, want the hash of the selected spectrum %s", res.InputHash, tt.wantHash)
			}
		})
	}
}

func TestSelectSingle(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), []byte(spectrumJSON), Options{Kind: KindSpectrum, ScanID: "scan=1"}); err != nil {
		t.Errorf("selecting the only spectrum by id: %v", err)
	}
	if _, err := r.Execute(context.Background(), []byte(spectrumJSON), Options{Kind: KindSpectrum, Index: intPtr(1)}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("index past a single spectrum: %v", err)
	}
}
