package cli

import (
	"github.com/spf13/cobra"

	mzio "github.com/mzsvg/mzsvg/pkg/io"
	"github.com/mzsvg/mzsvg/pkg/pipeline"
	"github.com/mzsvg/mzsvg/pkg/spectrum"
)

// overlayCommand creates the overlay command.
func (c *CLI) overlayCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "overlay [file.json...]",
		Short: "Draw several spectra on one canvas",
		Long: `Draw several spectra on one canvas.

Each file holds one spectrum or an array of spectra. The axes widen to fit
every spectrum and each one takes the next palette color.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := mergeSpectra(args)
			if err != nil {
				return err
			}
			opts, err := flags.options(c, pipeline.KindOverlay)
			if err != nil {
				return err
			}
			return c.render(cmd.Context(), input, args[0], "spectrum", &flags, opts)
		},
	}

	flags.register(cmd, "mz-range", "m/z limits, e.g. 200-1200, 200- or -1200")

	return cmd
}

// mergeSpectra reads every file and encodes the spectra as one JSON array.
func mergeSpectra(paths []string) ([]byte, error) {
	var all []*spectrum.Spectrum
	for _, path := range paths {
		spectra, err := mzio.ImportSpectra(path)
		if err != nil {
			return nil, err
		}
		all = append(all, spectra...)
	}
	return mzio.Canonical(all)
}
