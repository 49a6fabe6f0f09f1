package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/micropost/micropost/pkg/logger"
)

// TracingMiddleware attaches a trace ID to every request and logs it on
// completion. Inbound X-Trace-ID headers are honoured; otherwise a fresh ID
// is generated and echoed back.
func TracingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get("X-Trace-ID")
			if traceID == "" {
				traceID = logger.NewTraceID()
			}

			ctx := logger.WithTraceID(r.Context(), traceID)
			w.Header().Set("X-Trace-ID", traceID)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			start := time.Now()
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			log.LogRequest(ctx, r.Method, r.URL.Path, wrapped.statusCode, time.Since(start))
		})
	}
}
