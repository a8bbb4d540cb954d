package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/mzsvg/mzsvg/pkg/errors"
	"github.com/mzsvg/mzsvg/pkg/spectrum"
)

// WriteSpectrum encodes s as indented JSON.
func WriteSpectrum(s *spectrum.Spectrum, w io.Writer) error {
	return encode(s, w)
}

// WriteFeature encodes f as indented JSON.
func WriteFeature(f *spectrum.Feature, w io.Writer) error {
	return encode(f, w)
}

// Canonical returns the indented encoding of a record. It is the form
// hashed for cache keys.
func Canonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(v, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportSpectrum writes s to a JSON file at path.
func ExportSpectrum(s *spectrum.Spectrum, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteSpectrum(s, f)
}

func encode(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return nil
}
