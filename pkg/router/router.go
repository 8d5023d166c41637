package router

import (
	"net/http"
	"strings"
	"time"

	"sunburst-explorer/internal/metrics"

	"go.uber.org/zap"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

type route struct {
	method  string
	pattern string
	handler HandlerFunc
}

type mount struct {
	prefix  string
	handler http.Handler
}

// Router matches METHOD + path, with "*" segments, in registration order.
type Router struct {
	routes []route
	mounts []mount
	logger *zap.Logger
}

func New(logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{logger: logger}
}

// ServeHTTP dispatches to mounts, exact routes, then wildcard routes, and
// logs every request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	pattern := r.dispatch(lrw, req)

	duration := time.Since(start)
	metrics.HTTPRequests.WithLabelValues(req.Method, pattern, metrics.StatusClass(lrw.statusCode)).Inc()
	metrics.HTTPDuration.WithLabelValues(req.Method, pattern).Observe(duration.Seconds())

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", lrw.statusCode),
		zap.Duration("duration", duration),
	}
	switch {
	case lrw.statusCode >= 500:
		r.logger.Error("request", fields...)
	case lrw.statusCode >= 400:
		r.logger.Warn("request", fields...)
	default:
		r.logger.Info("request", fields...)
	}
}

// dispatch serves req and returns the matched pattern for metrics labels.
func (r *Router) dispatch(w http.ResponseWriter, req *http.Request) string {
	for _, m := range r.mounts {
		if strings.HasPrefix(req.URL.Path, m.prefix) {
			m.handler.ServeHTTP(w, req)
			return m.prefix
		}
	}

	pathMatched := false
	for _, rt := range r.routes {
		if rt.pattern == req.URL.Path {
			pathMatched = true
			if rt.method == req.Method {
				rt.handler(w, req)
				return rt.pattern
			}
		}
	}
	for _, rt := range r.routes {
		if !strings.Contains(rt.pattern, "*") || !matchWildcardRoute(req.URL.Path, rt.pattern) {
			continue
		}
		pathMatched = true
		if rt.method == req.Method {
			rt.handler(w, req)
			return rt.pattern
		}
	}

	if pathMatched {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return "method_not_allowed"
	}
	http.Error(w, "Not Found", http.StatusNotFound)
	return "not_found"
}

// matchWildcardRoute checks if a request path matches a wildcard route
// pattern. Each "*" matches exactly one non-empty segment; use Mount for
// prefix matching.
func matchWildcardRoute(requestPath, routePattern string) bool {
	requestSegments := strings.Split(strings.Trim(requestPath, "/"), "/")
	routeSegments := strings.Split(strings.Trim(routePattern, "/"), "/")

	if len(requestSegments) != len(routeSegments) {
		return false
	}

	for i, routeSegment := range routeSegments {
		if routeSegment == "*" {
			if requestSegments[i] == "" {
				return false
			}
			continue
		}
		if requestSegments[i] != routeSegment {
			return false
		}
	}

	return true
}

// Segment returns the n-th (0-based) path segment, or "".
func Segment(req *http.Request, n int) string {
	segments := strings.Split(strings.Trim(req.URL.Path, "/"), "/")
	if n < 0 || n >= len(segments) {
		return ""
	}
	return segments[n]
}

// --- Register paths ---
func (r *Router) register(method, path string, handler HandlerFunc) {
	r.routes = append(r.routes, route{method: method, pattern: path, handler: handler})
}

func (r *Router) GET(path string, handler HandlerFunc)  { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc) { r.register(http.MethodPost, path, handler) }
func (r *Router) PUT(path string, handler HandlerFunc)  { r.register(http.MethodPut, path, handler) }
func (r *Router) DELETE(path string, handler HandlerFunc) {
	r.register(http.MethodDelete, path, handler)
}

// Mount serves every path under prefix with h, for any method.
func (r *Router) Mount(prefix string, h http.Handler) {
	r.mounts = append(r.mounts, mount{prefix: prefix, handler: h})
}

// Patterns lists registered routes as METHOD:PATH, for tests and startup logs.
func (r *Router) Patterns() []string {
	out := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		out = append(out, rt.method+":"+rt.pattern)
	}
	return out
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}
