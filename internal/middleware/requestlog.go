package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"PANTRY-TRACKER/internal/views"
)

// statusWriter records the status code written by downstream handlers.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// RequestLogger logs one line per request with a generated request id, and
// funnels panics from downstream handlers into the rendered 500 page.
func RequestLogger(log *slog.Logger, renderer *views.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic recovered",
						"request_id", requestID,
						"method", r.Method,
						"path", r.URL.Path,
						"panic", rec)
					if !sw.wroteHeader {
						renderer.Error(sw, r, http.StatusInternalServerError, "")
					}
				}
				log.Info("request",
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"status", sw.status,
					"duration", time.Since(start))
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
