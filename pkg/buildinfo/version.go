// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/mzsvg/mzsvg/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/mzsvg/mzsvg/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/mzsvg/mzsvg/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"

	"github.com/mzsvg/mzsvg/pkg/core/render"
)

var (
	// Version is the semantic version.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the formatted build information, including whether
// PNG and PDF export are available on this machine.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\nrasterizer: %s", Version, Commit, Date, rasterizer())
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

func rasterizer() string {
	if render.Available() {
		return render.Converter
	}
	return render.Converter + " (not found)"
}
