package cli

import (
	"github.com/spf13/cobra"

	"github.com/mzsvg/mzsvg/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "mzsvg draws mass spectra and LC-MS features as SVG",
		Long: `mzsvg renders mass spectra, spectrum overlays and LC-MS feature traces
as publication-ready SVG documents, with optional PNG and PDF export through
rsvg-convert.

Inputs are JSON records; see 'mzsvg spectrum --help' for the format. Chart
styling comes from an optional TOML file given with --config or $MZSVG_CONFIG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			c.installHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML configuration file (default $"+configEnv+")")

	root.AddCommand(c.spectrumCommand())
	root.AddCommand(c.overlayCommand())
	root.AddCommand(c.featureCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}
