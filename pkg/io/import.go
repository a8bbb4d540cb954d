package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/mzsvg/mzsvg/pkg/errors"
	"github.com/mzsvg/mzsvg/pkg/spectrum"
)

// ReadSpectrum decodes and validates one spectrum from r.
//
// ReadSpectrum does not close r.
func ReadSpectrum(r io.Reader) (*spectrum.Spectrum, error) {
	var s spectrum.Spectrum
	if err := decode(r, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ReadSpectra decodes a single spectrum object or an array of spectra.
func ReadSpectra(r io.Reader) ([]*spectrum.Spectrum, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return nil, err
	}
	if first != '[' {
		s, err := ReadSpectrum(br)
		if err != nil {
			return nil, err
		}
		return []*spectrum.Spectrum{s}, nil
	}

	var out []*spectrum.Spectrum
	if err := decode(br, &out); err != nil {
		return nil, err
	}
	for i, s := range out {
		if s == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "spectrum %d is null", i)
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadFeature decodes and validates one feature from r.
func ReadFeature(r io.Reader) (*spectrum.Feature, error) {
	var f spectrum.Feature
	if err := decode(r, &f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// ImportSpectrum reads the spectrum stored at path.
func ImportSpectrum(path string) (*spectrum.Spectrum, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSpectrum(f)
}

// ImportSpectra reads one or more spectra stored at path.
func ImportSpectra(path string) ([]*spectrum.Spectrum, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSpectra(f)
}

// ImportFeature reads the feature stored at path.
func ImportFeature(path string) (*spectrum.Feature, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFeature(f)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return f, nil
}

func decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	return nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
		}
		if !bytes.ContainsAny(b, " \t\r\n") {
			return b[0], nil
		}
		if _, err := br.Discard(1); err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
		}
	}
}
