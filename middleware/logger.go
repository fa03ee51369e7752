package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lchou/hoopstats/metrics"
)

// RequestLogger logs every request through the shared slog logger and
// feeds the request duration histogram.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			metrics.RequestDuration.WithLabelValues(
				r.URL.Path,
				r.Method,
				strconv.Itoa(ww.Status()),
			).Observe(elapsed.Seconds())

			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", elapsed),
			)
		})
	}
}
