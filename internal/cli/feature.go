package cli

import (
	"github.com/spf13/cobra"

	"github.com/mzsvg/mzsvg/pkg/pipeline"
)

// featureCommand creates the feature command.
func (c *CLI) featureCommand() *cobra.Command {
	var (
		flags renderFlags
		color string
	)

	cmd := &cobra.Command{
		Use:   "feature [file.json]",
		Short: "Draw an LC-MS feature trace",
		Long: `Draw an LC-MS feature as a filled intensity trace over retention time.

The input is one JSON feature ("-" reads stdin):

  {
    "id": "feature-7",
    "charge": 3,
    "points": [{"mz": 652.31, "time": 12.4, "intensity": 3100}]
  }`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args[0])
			if err != nil {
				return err
			}
			opts, err := flags.options(c, pipeline.KindFeature)
			if err != nil {
				return err
			}
			opts.Color = color
			return c.render(cmd.Context(), input, args[0], "feature", &flags, opts)
		},
	}

	flags.register(cmd, "time-range", "time limits, e.g. 10-25")
	cmd.Flags().StringVar(&color, "color", "", "fill color of the trace (default: first palette color)")

	return cmd
}
