package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shelf/internal/logger"
	"shelf/internal/metrics"
)

// RequestID tags the request context with an id, reusing X-Request-ID when the caller sent one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(logger.ContextWithID(r.Context(), id)))
	})
}

// RequestLogger logs every request at INFO, 5xx at ERROR, and feeds the HTTP collectors.
// Static assets and the metrics endpoint are only counted.
func RequestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			took := time.Since(start)
			path := routeLabel(r.URL.Path)
			metrics.HttpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(sw.status)).Inc()
			metrics.HttpRequestDuration.WithLabelValues(path).Observe(took.Seconds())

			if path == "/static" || path == "/metrics" {
				return
			}
			entry := log.WithFields(logrus.Fields{
				"request_id": logger.IDFrom(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"query":      r.URL.Query(),
				"status":     sw.status,
				"remote":     r.RemoteAddr,
				"agent":      r.UserAgent(),
				"took":       took,
			})
			if sw.status >= 500 {
				entry.Error("http.request")
				return
			}
			entry.Info("http.request")
		})
	}
}

// knownRoutes are the first path segments served by the web adapter.
var knownRoutes = map[string]bool{
	"results":  true,
	"wishlist": true,
	"preview":  true,
	"health":   true,
	"metrics":  true,
	"static":   true,
}

var knownAPIRoutes = map[string]bool{
	"search":   true,
	"wishlist": true,
}

// routeLabel keeps metric label cardinality bounded: ids in paths are dropped
// and anything outside the served routes collapses into "other".
func routeLabel(p string) string {
	parts := strings.SplitN(strings.TrimPrefix(p, "/"), "/", 3)
	head := parts[0]
	switch {
	case head == "":
		return "/"
	case head == "api":
		if len(parts) > 1 && knownAPIRoutes[parts[1]] {
			return "/api/" + parts[1]
		}
		return "other"
	case knownRoutes[head]:
		return "/" + head
	}
	return "other"
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Chain wraps h with mws, the first one outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
