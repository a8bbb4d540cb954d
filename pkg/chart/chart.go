// Package chart orchestrates complete chart documents.
//
// # Overview
//
// A [Chart] owns a [canvas.Canvas], the X and Y axis settings, a
// [ColorCycle] and a registry of the series added so far. It negotiates the
// axis domains as data arrives, slices each series to the visible X range,
// renders it onto the canvas and finally serializes the document.
//
// [SpectrumChart] and [FeatureChart] specialize the generic chart for mass
// spectra and feature traces, inferring axis ranges from the records in
// package spectrum.
//
// # Lifecycle
//
// A chart is building until [Chart.Finish] is called. Finishing is
// idempotent; adding series afterwards fails with
// errors.ErrCodeChartFinished. Writing the document finishes the chart.
// Series cannot be drawn before both axis ranges are known and fail with
// errors.ErrCodeAxisNotInitialized.
//
//	c := chart.NewSpectrumChart(1400, 600)
//	if err := c.DrawSpectrum(s); err != nil {
//	    return err
//	}
//	if err := c.Save("spectrum.svg"); err != nil {
//	    return err
//	}
package chart

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	svgo "github.com/ajstarks/svgo"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/constraints"

	"github.com/mzsvg/mzsvg/pkg/core/axis"
	"github.com/mzsvg/mzsvg/pkg/core/canvas"
	"github.com/mzsvg/mzsvg/pkg/core/coord"
	"github.com/mzsvg/mzsvg/pkg/core/render"
	"github.com/mzsvg/mzsvg/pkg/core/series"
	"github.com/mzsvg/mzsvg/pkg/core/svg"
	"github.com/mzsvg/mzsvg/pkg/errors"
)

// Chart is a single-canvas chart over X and Y coordinates.
type Chart[X, Y constraints.Float] struct {
	XAxis axis.Props[X]
	YAxis axis.Props[Y]

	canvas   *canvas.Canvas[X, Y]
	xRange   *coord.Range[X]
	yRange   *coord.Range[Y]
	colors   *ColorCycle
	series   map[string][]series.Description
	order    []string
	finished bool
	cfg      settings
	logger   *log.Logger
}

// New returns an empty chart with a bottom X axis and a left Y axis.
func New[X, Y constraints.Float](width, height int, opts ...Option) *Chart[X, Y] {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &Chart[X, Y]{
		XAxis:  axis.NewProps[X](axis.Bottom),
		YAxis:  axis.NewProps[Y](axis.Left),
		canvas: canvas.New[X, Y](width, height),
		colors: NewColorCycle(cfg.palette...),
		series: make(map[string][]series.Description),
		cfg:    cfg,
		logger: cfg.logger,
	}
	c.XAxis.Nice = cfg.nice
	c.YAxis.Nice = cfg.nice
	return c
}

// Canvas returns the underlying canvas.
func (c *Chart[X, Y]) Canvas() *canvas.Canvas[X, Y] { return c.canvas }

// Colors returns the color cycle.
func (c *Chart[X, Y]) Colors() *ColorCycle { return c.colors }

// XRange returns the X domain and whether it has been established.
func (c *Chart[X, Y]) XRange() (coord.Range[X], bool) {
	if c.xRange == nil {
		return coord.Range[X]{}, false
	}
	return *c.xRange, true
}

// YRange returns the Y domain and whether it has been established.
func (c *Chart[X, Y]) YRange() (coord.Range[Y], bool) {
	if c.yRange == nil {
		return coord.Range[Y]{}, false
	}
	return *c.yRange, true
}

// SetXRange replaces the X domain.
func (c *Chart[X, Y]) SetXRange(r coord.Range[X]) {
	c.xRange = &r
	c.sync()
}

// SetYRange replaces the Y domain.
func (c *Chart[X, Y]) SetYRange(r coord.Range[Y]) {
	c.yRange = &r
	c.sync()
}

// IncludeX establishes the X domain as initial when none exists yet, or
// widens it to include [lo, hi].
func (c *Chart[X, Y]) IncludeX(initial coord.Range[X], lo, hi X) {
	if c.xRange == nil {
		c.SetXRange(initial)
		return
	}
	w := c.xRange.Widen(lo, hi)
	if w != *c.xRange {
		c.logger.Debug("widened x axis", "from", c.xRange.String(), "to", w.String())
	}
	c.SetXRange(w)
}

// IncludeY is [Chart.IncludeX] for the Y domain.
func (c *Chart[X, Y]) IncludeY(initial coord.Range[Y], lo, hi Y) {
	if c.yRange == nil {
		c.SetYRange(initial)
		return
	}
	w := c.yRange.Widen(lo, hi)
	if w != *c.yRange {
		c.logger.Debug("widened y axis", "from", c.yRange.String(), "to", w.String())
	}
	c.SetYRange(w)
}

// XLim overrides the set bounds of the X domain.
func (c *Chart[X, Y]) XLim(l Limits) error {
	if c.xRange == nil {
		return errors.New(errors.ErrCodeAxisNotInitialized, "xlim %s: x axis has no range yet", l)
	}
	c.SetXRange(Apply(*c.xRange, l))
	return nil
}

// YLim overrides the set bounds of the Y domain.
func (c *Chart[X, Y]) YLim(l Limits) error {
	if c.yRange == nil {
		return errors.New(errors.ErrCodeAxisNotInitialized, "ylim %s: y axis has no range yet", l)
	}
	c.SetYRange(Apply(*c.yRange, l))
	return nil
}

func (c *Chart[X, Y]) sync() {
	if c.xRange != nil && c.yRange != nil {
		c.canvas.UpdateScales(*c.xRange, *c.yRange)
	}
}

func (c *Chart[X, Y]) ready() error {
	if c.xRange == nil || c.yRange == nil {
		return errors.New(errors.ErrCodeAxisNotInitialized, "axis ranges must be set before drawing")
	}
	return nil
}

// AddSeries assigns the tag of s and, if unset, its color, slices it to the
// X domain and draws it on top of the canvas. The series is registered only
// once it rendered; a failed add leaves the chart and color cycle unchanged.
func (c *Chart[X, Y]) AddSeries(s series.Series[X, Y]) error {
	if c.finished {
		return errors.New(errors.ErrCodeChartFinished, "cannot add series to a finished chart")
	}
	if err := c.ready(); err != nil {
		return err
	}

	desc := s.Description()
	prev, cursor := *desc, c.colors.index
	if desc.Color == "" {
		desc.Color = c.colors.Next()
	}
	desc.Tag = strconv.Itoa(len(c.series[desc.SeriesType()]) + 1)

	s.SliceX(c.xRange.Start, c.xRange.End)
	layer, err := s.Render(c.canvas)
	if err != nil {
		id := desc.ID()
		*desc, c.colors.index = prev, cursor
		return errors.Wrap(errors.GetCode(err), err, "render series %s", id)
	}
	c.register(*desc)
	c.canvas.PushLayer(layer)
	c.logger.Debug("added series", "id", desc.ID(), "color", desc.Color)
	return nil
}

// register files desc under its label.
func (c *Chart[X, Y]) register(desc series.Description) {
	label := desc.SeriesType()
	if _, ok := c.series[label]; !ok {
		c.order = append(c.order, label)
	}
	c.series[label] = append(c.series[label], desc)
}

// Series returns the descriptions registered under label.
func (c *Chart[X, Y]) Series(label string) []series.Description {
	return c.series[label]
}

// Labels returns the registered labels in first-seen order.
func (c *Chart[X, Y]) Labels() []string { return c.order }

// AddRaw pushes a pre-rendered layer.
func (c *Chart[X, Y]) AddRaw(layer *svg.Element) error {
	if c.finished {
		return errors.New(errors.ErrCodeChartFinished, "cannot add layers to a finished chart")
	}
	c.canvas.PushLayer(layer)
	return nil
}

// Finish ends the building state. Calling it again has no effect.
func (c *Chart[X, Y]) Finish() { c.finished = true }

// Finished reports whether [Chart.Finish] was called.
func (c *Chart[X, Y]) Finished() bool { return c.finished }

// Size returns the outer document size.
func (c *Chart[X, Y]) Size() (int, int) {
	w, h := c.canvas.Size(c.XAxis, c.YAxis)
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// Render composes the canvas group, preceded by the custom stylesheet if
// any. It finishes the chart.
func (c *Chart[X, Y]) Render() ([]*svg.Element, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	c.Finish()

	root, err := c.canvas.Render(c.XAxis, c.YAxis)
	if err != nil {
		return nil, err
	}
	if c.cfg.fontFamily != "" {
		root.Set("font-family", c.cfg.fontFamily)
	}

	var out []*svg.Element
	if c.cfg.css != "" {
		style := svg.New("style").Set("type", "text/css").SetText(c.cfg.css)
		style.CDATA = true
		out = append(out, style)
	}
	return append(out, root), nil
}

// WriteSVG writes the complete document to w.
func (c *Chart[X, Y]) WriteSVG(w io.Writer) error {
	elems, err := c.Render()
	if err != nil {
		return err
	}

	width, height := c.Size()
	var buf bytes.Buffer
	doc := svgo.New(&buf)
	doc.Start(width, height,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height),
		`preserveAspectRatio="xMidYMid meet"`)
	if c.cfg.title != "" {
		doc.Title(c.cfg.title)
	}
	for _, el := range elems {
		if _, err := el.WriteTo(doc.Writer); err != nil {
			return err
		}
	}
	doc.End()

	_, err = buf.WriteTo(w)
	return err
}

// SVG returns the complete document.
func (c *Chart[X, Y]) SVG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.WriteSVG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the document to path.
func (c *Chart[X, Y]) Save(path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	data, err := c.SVG()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// PNG rasterizes the document at the given scale factor.
func (c *Chart[X, Y]) PNG(ctx context.Context, scale float64) ([]byte, error) {
	data, err := c.SVG()
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, data, scale)
}

// PDF converts the document to PDF at the default resolution.
func (c *Chart[X, Y]) PDF(ctx context.Context) ([]byte, error) {
	data, err := c.SVG()
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, data, render.DefaultPDFDPI)
}
