package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mzsvg/mzsvg/pkg/chart"
	"github.com/mzsvg/mzsvg/pkg/errors"
	"github.com/mzsvg/mzsvg/pkg/pipeline"
)

// stdoutPath selects standard output as the destination of --output.
const stdoutPath = "-"

// renderFlags holds the flags shared by the drawing commands.
type renderFlags struct {
	output  string
	formats string
	dims    chart.Dimensions
	xlim    chart.Limits
	ylim    chart.Limits
	title   string
	css     string
	scale   float64
	noCache bool
	refresh bool
}

// register adds the shared flags to cmd. xName names the x limit flag,
// which differs between m/z and time axes.
func (f *renderFlags) register(cmd *cobra.Command, xName, xUsage string) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format), base path (several) or - for stdout")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().VarP(&f.dims, "dimensions", "d", "canvas size as WIDTHxHEIGHT (default from config, else 1400x600)")
	cmd.Flags().Var(&f.xlim, xName, xUsage)
	cmd.Flags().Var(&f.ylim, "ylim", "intensity limits, e.g. 0-5e6")
	cmd.Flags().StringVar(&f.title, "title", "", "document title (default: record id)")
	cmd.Flags().StringVar(&f.css, "css", "", "stylesheet file embedded in the document")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "PNG scale factor (default from config, else 3)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even when cached")
}

// options builds pipeline options for kind from the flags and the loaded
// configuration. A --css file replaces the stylesheet of the config.
func (f *renderFlags) options(c *CLI, kind string) (pipeline.Options, error) {
	cfg := c.config
	if f.css != "" {
		data, err := os.ReadFile(f.css)
		if err != nil {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read stylesheet %s", f.css)
		}
		clone := *cfg
		clone.CSS = string(data)
		cfg = &clone
	}
	return pipeline.Options{
		Kind:     kind,
		Formats:  parseFormats(f.formats),
		Width:    f.dims.Width,
		Height:   f.dims.Height,
		XLim:     f.xlim.String(),
		YLim:     f.ylim.String(),
		Title:    f.title,
		PNGScale: f.scale,
		Refresh:  f.refresh,
		Config:   cfg,
	}, nil
}

// render runs the pipeline on input and writes the artifacts. source is
// the first input path, used to derive output names.
func (c *CLI) render(ctx context.Context, input []byte, source, unit string, f *renderFlags, opts pipeline.Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if source == stdoutPath {
		source = appName
	}
	if f.output == stdoutPath {
		if len(opts.Formats) > 1 {
			return errors.New(errors.ErrCodeInvalidInput, "only one format can be written to stdout, got %s", strings.Join(opts.Formats, ","))
		}
		out = os.Stderr
		defer func() { out = os.Stdout }()
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	var spinner *Spinner
	if isatty.IsTerminal(os.Stderr.Fd()) {
		spinner = newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", opts.Kind))
		spinner.Start()
	}

	res, err := runner.Execute(ctx, input, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		printError("Render failed: %s", errors.UserMessage(err))
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", plural(res.Stats.Records, unit)))

	written, err := writeArtifacts(res, opts.Formats, source, f.output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", opts.Kind)
	printStats(res.Stats.Records, unit, len(written), res.CacheInfo.DocumentHit)
	for _, path := range written {
		printFile(path)
	}
	for format, ferr := range res.Failures {
		printWarning("%s: %s", format, errors.UserMessage(ferr))
	}
	if !res.OK() && len(written) == 0 {
		return errors.New(errors.ErrCodeRasterize, "no format could be produced")
	}
	return nil
}

// writeArtifacts writes each produced format and returns the written paths
// in format order.
func writeArtifacts(res *pipeline.Result, formats []string, source, output string) ([]string, error) {
	var written []string
	for _, format := range formats {
		data, ok := res.Artifacts[format]
		if !ok {
			continue
		}
		if output == stdoutPath {
			if _, err := os.Stdout.Write(data); err != nil {
				return written, errors.Wrap(errors.ErrCodeInternal, err, "write stdout")
			}
			written = append(written, "<stdout>")
			continue
		}
		path := outputPath(output, source, format, len(formats) > 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}

// outputPath derives the file for format. Without --output the input name
// is reused with the format extension. A single format writes --output
// verbatim; several formats treat it as a base path and strip a known
// extension.
func outputPath(output, source, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	base := output
	if base == "" {
		base = source
	}
	if ext := filepath.Ext(base); ext == ".json" || pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}

// readInput returns the contents of path, or of stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == stdoutPath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return data, nil
}
