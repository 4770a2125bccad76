package middleware

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/elaa0505/AzuraCast/internal/infrastructure/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps event streams working behind the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// RequestLogger logs one line per request once it completes.
func RequestLogger(l *log.Logger, next http.Handler) http.Handler {
	l = l.With("component", "http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		level := log.InfoLevel
		switch {
		case rec.status >= 500:
			level = log.ErrorLevel
		case rec.status >= 400:
			level = log.WarnLevel
		}
		l.Log(level, "request",
			"method", r.Method,
			"path", logger.SanitizeForLog(r.URL.Path),
			"status", rec.status,
			"duration", time.Since(start).Round(time.Microsecond))
	})
}
