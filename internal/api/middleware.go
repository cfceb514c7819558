package api

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/webstack/services/backend/pkg/metrics"
)

// wrap adds request logging and Prometheus instrumentation to a handler.
func (s *Server) wrap(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		elapsed := time.Since(start)
		metrics.RecordRequest(endpoint, r.Method, strconv.Itoa(wrapped.statusCode))
		metrics.RecordDuration(endpoint, r.Method, elapsed.Seconds())
		if wrapped.statusCode >= http.StatusBadRequest {
			metrics.RecordError(endpoint, wrapped.statusCode)
		}

		s.log.Info("Request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrapped.statusCode),
			zap.Duration("duration", elapsed),
		)
	}
}

// responseWriter captures the status code written by a handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
