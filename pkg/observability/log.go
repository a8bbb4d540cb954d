package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger: render and cache events at debug
// level, responses at info level and failures at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnDocumentStart(_ context.Context, kind string) {
	h.logger.Debug("rendering document", "kind", kind)
}

func (h *LogHooks) OnDocumentComplete(_ context.Context, kind string, layers int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("document failed", "kind", kind, "err", err)
		return
	}
	h.logger.Debug("rendered document", "kind", kind, "layers", layers, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnRasterizeStart(_ context.Context, format string) {
	h.logger.Debug("rasterizing", "format", format)
}

func (h *LogHooks) OnRasterizeComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("rasterize failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("rasterized", "format", format, "bytes", size, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route, renderID string) {
	h.logger.Debug("request", "method", method, "route", route, "id", renderID)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route, renderID string, status int, d time.Duration) {
	lvl := log.InfoLevel
	if status >= 500 {
		lvl = log.WarnLevel
	}
	h.logger.Log(lvl, "response", "method", method, "route", route, "id", renderID, "status", status, "took", d.Round(time.Millisecond))
}

var (
	_ RenderHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ ServerHooks = (*LogHooks)(nil)
)
