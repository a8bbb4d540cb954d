package cli

import (
	"github.com/spf13/cobra"

	"github.com/mzsvg/mzsvg/pkg/core/render"
	"github.com/mzsvg/mzsvg/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Run the HTTP render service.

  POST /render/spectrum   one spectrum
  POST /render/overlay    one or more spectra
  POST /render/feature    one feature
  GET  /healthz

Query parameters mirror the command flags: format, width, height, xlim
(or mz_range / time_range), ylim, zoom_y, title, color, scale, refresh.
Renders are cached in Redis when [cache] redis_url is configured, else on
disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if !render.Available() {
				printWarning("%s not found; png and pdf requests will fail", render.Converter)
			}
			printInfo("Serving on %s", addr)
			return server.New(runner, c.config, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
