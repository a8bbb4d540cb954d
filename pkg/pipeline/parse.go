package pipeline

import (
	"bytes"

	"github.com/mzsvg/mzsvg/pkg/cache"
	"github.com/mzsvg/mzsvg/pkg/errors"
	mzio "github.com/mzsvg/mzsvg/pkg/io"
	"github.com/mzsvg/mzsvg/pkg/spectrum"
)

// Input is decoded pipeline input. Exactly one of Spectra and Feature is
// set.
type Input struct {
	Spectra []*spectrum.Spectrum
	Feature *spectrum.Feature
	Hash    string
}

// Len returns the number of records.
func (in *Input) Len() int {
	if in.Feature != nil {
		return 1
	}
	return len(in.Spectra)
}

// Parse decodes data according to opts.Kind. A spectrum input holds one
// spectrum, or a list from which opts.Index or opts.ScanID picks one; an
// overlay accepts one or more.
func Parse(data []byte, opts Options) (*Input, error) {
	if err := ValidateKind(opts.Kind); err != nil {
		return nil, err
	}

	in := &Input{}
	var record any
	switch opts.Kind {
	case KindFeature:
		f, err := mzio.ReadFeature(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		in.Feature, record = f, f
	case KindSpectrum:
		all, err := mzio.ReadSpectra(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		s, err := Select(all, opts.Index, opts.ScanID)
		if err != nil {
			return nil, err
		}
		in.Spectra, record = []*spectrum.Spectrum{s}, s
	case KindOverlay:
		all, err := mzio.ReadSpectra(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		in.Spectra, record = all, all
	}

	canonical, err := mzio.Canonical(record)
	if err != nil {
		return nil, err
	}
	in.Hash = cache.Hash(canonical)
	return in, nil
}

// Select picks one spectrum from list by 0-based index or by id. Without a
// selector the list must hold exactly one spectrum.
func Select(list []*spectrum.Spectrum, index *int, id string) (*spectrum.Spectrum, error) {
	switch {
	case id != "":
		for _, s := range list {
			if s.ID == id {
				return s, nil
			}
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "no spectrum with id %q among %d", id, len(list))
	case index != nil:
		if *index < 0 || *index >= len(list) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "spectrum index %d out of range [0, %d)", *index, len(list))
		}
		return list[*index], nil
	case len(list) != 1:
		return nil, errors.New(errors.ErrCodeInvalidInput, "input holds %d spectra, select one by index or id", len(list))
	}
	return list[0], nil
}
