package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mzsvg/mzsvg/pkg/observability"
)

// RenderIDHeader carries the id assigned to each request.
const RenderIDHeader = "X-Render-ID"

type ctxKey int

const renderIDKey ctxKey = 0

// RenderID returns the id assigned to the request of ctx, or "".
func RenderID(ctx context.Context) string {
	id, _ := ctx.Value(renderIDKey).(string)
	return id
}

// renderID assigns every request a fresh UUID. The id is echoed in the
// response header and attached to the request context.
func renderID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RenderIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), renderIDKey, id)))
	})
}

// observe reports requests and responses to the server hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := RenderID(r.Context())
		hooks := observability.Server()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path, id)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, id, status, time.Since(start))
	})
}
