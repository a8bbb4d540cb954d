package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateFinite rejects NaN and infinite values. The name is used in the
// error message.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeMalformedRange, "%s must be finite, got %v", name, v)
	}
	return nil
}

// ValidateDimensions checks a canvas size in pixels.
//
// Validation rules:
//   - Width and height must be positive
//   - Neither may exceed 20000 pixels
func ValidateDimensions(width, height int) error {
	const maxSide = 20000
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "dimensions must be positive, got %dx%d", width, height)
	}
	if width > maxSide || height > maxSide {
		return New(ErrCodeInvalidInput, "dimensions too large (max %d per side), got %dx%d", maxSide, width, height)
	}
	return nil
}

// ValidateCSSClass validates an identifier used as an SVG class or id.
// Class names end up inside attribute values and stylesheet selectors, so
// only letters, digits, '-' and '_' are accepted.
func ValidateCSSClass(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "class name cannot be empty")
	}
	for _, r := range name {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return New(ErrCodeInvalidInput, "class name %q contains invalid character %q", name, r)
		}
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - The path must not name a directory ("out/")
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || filepath.Base(path) == "." {
		return New(ErrCodeInvalidPath, "path %q names a directory", path)
	}
	return nil
}
