package cli

import (
	"github.com/spf13/cobra"

	"github.com/mzsvg/mzsvg/pkg/pipeline"
)

// spectrumCommand creates the spectrum command.
func (c *CLI) spectrumCommand() *cobra.Command {
	var (
		flags  renderFlags
		zoomY  bool
		index  int
		scanID string
	)

	cmd := &cobra.Command{
		Use:   "spectrum [file.json]",
		Short: "Draw a mass spectrum",
		Long: `Draw a mass spectrum.

The input is one JSON spectrum ("-" reads stdin):

  {
    "id": "scan=1234",
    "continuity": "centroid",
    "peaks": [{"mz": 204.08, "intensity": 1520.5}],
    "precursor": {"mz": 652.31, "intensity": 8.1e5, "charge": 2},
    "scan_windows": [{"lower": 100, "upper": 2000}]
  }

Profile spectra carry "arrays": {"mz": [...], "intensity": [...]} and are
drawn as a continuous line, centroids as spikes. The x axis spans the scan
window padded by 5% unless --mz-range narrows it.

With --ylim-to-range the intensity axis is rescaled to the tallest peak
inside --mz-range while tick labels stay relative to the base peak of the
whole spectrum.

The input may also be a JSON array of spectra. --index (0-based) or --id
picks the one to draw; on a terminal an interactive list is shown when
neither is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args[0])
			if err != nil {
				return err
			}
			opts, err := flags.options(c, pipeline.KindSpectrum)
			if err != nil {
				return err
			}
			opts.ZoomY = zoomY
			opts.ScanID = scanID
			if cmd.Flags().Changed("index") {
				opts.Index = &index
			}
			if opts.Index == nil && opts.ScanID == "" {
				picked, ok, err := pickScan(input)
				if err != nil {
					return err
				}
				if !ok {
					printDetail("No spectrum selected")
					return nil
				}
				opts.Index = picked
			}
			return c.render(cmd.Context(), input, args[0], "spectrum", &flags, opts)
		},
	}

	flags.register(cmd, "mz-range", "m/z limits, e.g. 200-1200, 200- or -1200")
	cmd.Flags().IntVar(&index, "index", 0, "0-based position of the spectrum to draw from a spectrum list")
	cmd.Flags().StringVar(&scanID, "id", "", "id of the spectrum to draw from a spectrum list")
	cmd.Flags().BoolVar(&zoomY, "ylim-to-range", false, "scale the intensity axis to the tallest peak inside --mz-range")

	return cmd
}
