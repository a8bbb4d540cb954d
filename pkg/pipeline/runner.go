package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mzsvg/mzsvg/pkg/cache"
	"github.com/mzsvg/mzsvg/pkg/core/render"
	"github.com/mzsvg/mzsvg/pkg/errors"
	"github.com/mzsvg/mzsvg/pkg/observability"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeDocument = "document"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs decode, document and rasterize on input.
//
// An error is returned when the input or options are invalid or the
// document cannot be built. Rasterization failures are recorded per format
// in Result.Failures.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{
		Artifacts: make(map[string][]byte),
		Failures:  make(map[string]error),
	}

	start := time.Now()
	in, err := Parse(input, opts)
	if err != nil {
		return nil, err
	}
	result.InputHash = in.Hash
	result.Stats.Records = in.Len()
	result.Stats.DecodeTime = time.Since(start)
	r.Logger.Debug("decoded input", "kind", opts.Kind, "records", in.Len(), "hash", in.Hash[:12])

	start = time.Now()
	doc, hit, err := r.DocumentWithCacheInfo(ctx, in, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.DocumentTime = time.Since(start)
	result.CacheInfo.DocumentHit = hit
	if slices.Contains(opts.Formats, FormatSVG) {
		result.Artifacts[FormatSVG] = doc
	}

	start = time.Now()
	for _, format := range opts.Formats {
		if format == FormatSVG {
			continue
		}
		data, hit, err := r.RasterizeWithCacheInfo(ctx, doc, format, opts)
		if err != nil {
			r.Logger.Warn("rasterize failed", "format", format, "err", errors.UserMessage(err))
			result.Failures[format] = err
			continue
		}
		result.Artifacts[format] = data
		if hit {
			result.CacheInfo.ArtifactHits = append(result.CacheInfo.ArtifactHits, format)
		}
	}
	result.Stats.RasterizeTime = time.Since(start)

	r.Logger.Info("rendered",
		"kind", opts.Kind,
		"formats", opts.Formats,
		"cached", result.CacheInfo.DocumentHit,
		"duration", result.Stats.DocumentTime+result.Stats.RasterizeTime)
	return result, nil
}

// DocumentWithCacheInfo returns the SVG document for in, from cache when
// possible, and whether it was a cache hit.
func (r *Runner) DocumentWithCacheInfo(ctx context.Context, in *Input, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.DocumentKey(in.Hash, opts.DocumentKeyOpts())

	if data, ok := r.lookup(ctx, key, keyTypeDocument, opts.Refresh); ok {
		return data, true, nil
	}

	hooks := observability.Render()
	hooks.OnDocumentStart(ctx, opts.Kind)
	start := time.Now()
	doc, layers, err := Document(in, opts, r.Logger)
	hooks.OnDocumentComplete(ctx, opts.Kind, layers, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.store(ctx, key, keyTypeDocument, doc, cache.DocumentTTL)
	return doc, false, nil
}

// RasterizeWithCacheInfo converts doc to format, from cache when possible.
func (r *Runner) RasterizeWithCacheInfo(ctx context.Context, doc []byte, format string, opts Options) ([]byte, bool, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, false, err
	}
	keyOpts := opts.ArtifactKeyOpts(format)
	key := r.Keyer.ArtifactKey(cache.Hash(doc), keyOpts)

	if data, ok := r.lookup(ctx, key, keyTypeArtifact, opts.Refresh); ok {
		return data, true, nil
	}

	hooks := observability.Render()
	hooks.OnRasterizeStart(ctx, format)
	start := time.Now()
	data, err := rasterize(ctx, doc, format, keyOpts)
	hooks.OnRasterizeComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.store(ctx, key, keyTypeArtifact, data, cache.ArtifactTTL)
	return data, false, nil
}

func rasterize(ctx context.Context, doc []byte, format string, k cache.ArtifactKeyOpts) ([]byte, error) {
	switch format {
	case FormatPNG:
		return render.ToPNG(ctx, doc, k.Scale)
	case FormatPDF:
		return render.ToPDF(ctx, doc, k.DPI)
	case FormatSVG:
		return doc, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "cannot rasterize to %s", format)
}

// lookup reads key from the cache. Cache errors are logged and treated as
// misses.
func (r *Runner) lookup(ctx context.Context, key, keyType string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
