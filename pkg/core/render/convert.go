// Package render converts finished SVG documents into raster and print
// formats by shelling out to rsvg-convert.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin
// (Linux). Conversion failures are reported with code
// errors.ErrCodeRasterize and never affect the SVG they were given.
package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"

	"github.com/mzsvg/mzsvg/pkg/errors"
)

// Defaults for derived formats.
const (
	DefaultPNGScale = 3.0
	DefaultPDFDPI   = 180
)

// Converter is the binary used for conversion. Tests may point it at a
// stub.
var Converter = "rsvg-convert"

// Available reports whether the converter binary is on PATH.
func Available() bool {
	_, err := exec.LookPath(Converter)
	return err == nil
}

// ToPDF converts SVG bytes to a PDF page at the given resolution in dots
// per inch. A non-positive dpi selects [DefaultPDFDPI].
func ToPDF(ctx context.Context, svg []byte, dpi int) ([]byte, error) {
	if dpi <= 0 {
		dpi = DefaultPDFDPI
	}
	d := strconv.Itoa(dpi)
	return rsvgConvert(ctx, svg, "pdf", "-d", d, "-p", d)
}

// ToPNG converts SVG bytes to PNG using the given scale factor. A scale of
// 2.0 produces a 2x resolution image; non-positive values select
// [DefaultPNGScale].
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultPNGScale
	}
	return rsvgConvert(ctx, svg, "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
}

func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath(Converter); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterize, err,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, Converter, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterize, err, "%s conversion: %s", format, errBuf.String())
	}
	return out.Bytes(), nil
}
