package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"forum/pkg/logger"
)

const RequestIdHeader = "X-Request-Id"

type (
	Logging struct {
		log *zap.SugaredLogger
	}

	statusRecorder struct {
		http.ResponseWriter
		status int
	}
)

func NewLoggingMiddleware(l *zap.SugaredLogger) *Logging {
	return &Logging{log: l}
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// SetupTracing keeps the caller's request id or assigns a new one.
func (lm *Logging) SetupTracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIdHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIdHeader, id)
		}
		w.Header().Set(RequestIdHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (lm *Logging) SetupLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := lm.log.With("request_id", r.Header.Get(RequestIdHeader))
		next.ServeHTTP(w, r.WithContext(logger.WithLogger(r.Context(), l)))
	})
}

func (lm *Logging) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Log(r.Context()).Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
			"remote_addr", r.RemoteAddr,
		)
	})
}
