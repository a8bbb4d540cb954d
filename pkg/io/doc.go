// Package io provides JSON import and export for spectra and features.
//
// # Overview
//
// The CLI and the HTTP service read their input as JSON documents mirroring
// the records of package spectrum. The format is deliberately plain so that
// any peak picker or converter can produce it.
//
// # Spectrum Format
//
//	{
//	  "id": "scan=1234",
//	  "ms_level": 2,
//	  "continuity": "centroid",
//	  "peaks": [{"mz": 204.08, "intensity": 1520.5}],
//	  "precursor": {"mz": 652.31, "intensity": 8.1e5, "charge": 2},
//	  "scan_windows": [{"lower": 100, "upper": 2000}]
//	}
//
// Profile spectra carry "arrays": {"mz": [...], "intensity": [...]} with
// "continuity": "profile". Deconvoluted peaks go in "deconvoluted_peaks"
// with "neutral_mass" and "charge".
//
// # Feature Format
//
//	{
//	  "id": "feature-7",
//	  "charge": 3,
//	  "points": [{"mz": 652.31, "time": 12.4, "intensity": 3100}]
//	}
//
// # Import
//
// Use [ImportSpectrum] or [ImportFeature] to read a record from a file, or
// [ReadSpectrum] and [ReadFeature] to read from any io.Reader. [ReadSpectra]
// accepts either one spectrum object or an array of them. Every record is
// validated after decoding; malformed JSON reports errors.ErrCodeInvalidFormat
// and invalid values errors.ErrCodeInvalidInput.
//
// # Export
//
// [WriteSpectrum] and [WriteFeature] write the canonical indented encoding.
// The render pipeline hashes this encoding to key its cache, so two inputs
// that differ only in whitespace or key order share cached artifacts.
package io
