package server

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mzsvg/mzsvg/pkg/buildinfo"
	"github.com/mzsvg/mzsvg/pkg/config"
	"github.com/mzsvg/mzsvg/pkg/core/render"
	"github.com/mzsvg/mzsvg/pkg/errors"
	"github.com/mzsvg/mzsvg/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

var contentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
}

// Server renders chart requests with a shared pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	config  *config.Config
	logger  *log.Logger
	maxBody int64
	router  chi.Router
}

// New builds the router. A nil cfg uses config.Default and a nil logger
// discards output.
func New(runner *pipeline.Runner, cfg *config.Config, logger *log.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		runner:  runner,
		config:  cfg,
		logger:  logger,
		maxBody: cfg.Server.MaxBodyBytes,
	}
	if s.maxBody <= 0 {
		s.maxBody = config.DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(renderID)
	r.Use(observe)
	r.Get("/healthz", s.health)
	r.Post("/render/{kind}", s.render)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler of s.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = config.DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type healthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Rasterizer bool   `json:"rasterizer"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Version:    buildinfo.Version,
		Rasterizer: render.Available(),
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	body, err := readBody(w, r, s.maxBody)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), body, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	format := opts.Formats[0]
	if ferr, ok := res.Failures[format]; ok {
		writeError(w, r, ferr)
		return
	}

	cacheState := "miss"
	if res.CacheInfo.DocumentHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Input-Hash", res.InputHash)
	w.Header().Set("X-Cache", cacheState)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Artifacts[format]); err != nil {
		s.logger.Debug("write response", "err", err)
	}
}

// options maps the route and query of r onto pipeline options.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Kind:   chi.URLParam(r, "kind"),
		Config: s.config,
		XLim:   first(q.Get("xlim"), q.Get("mz_range"), q.Get("time_range")),
		YLim:   q.Get("ylim"),
		Title:  q.Get("title"),
		Color:  q.Get("color"),
		ScanID: q.Get("scan_id"),
	}
	if err := pipeline.ValidateKind(opts.Kind); err != nil {
		return opts, errors.Wrap(errors.ErrCodeNotFound, err, "render kind")
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	var err error
	if opts.Width, err = intParam(q.Get("width")); err != nil {
		return opts, err
	}
	if opts.Height, err = intParam(q.Get("height")); err != nil {
		return opts, err
	}
	if opts.Height == 0 {
		opts.Height = opts.Width
	}
	if opts.PNGScale, err = floatParam(q.Get("scale")); err != nil {
		return opts, err
	}
	if v := q.Get("index"); v != "" {
		i, err := intParam(v)
		if err != nil {
			return opts, err
		}
		opts.Index = &i
	}
	if opts.ZoomY, err = boolParam(q.Get("zoom_y")); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh")); err != nil {
		return opts, err
	}
	return opts, opts.ValidateAndSetDefaults()
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "integer parameter %q", s)
	}
	return n, nil
}

func floatParam(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "number parameter %q", s)
	}
	return f, nil
}

func boolParam(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidInput, err, "boolean parameter %q", s)
	}
	return b, nil
}
