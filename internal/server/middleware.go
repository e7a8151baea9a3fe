package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lambda-feedback/landing/util/logging"
)

// RequestIDHeader carries the id of a request.
const RequestIDHeader = "X-Request-ID"

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int
}

func (w *loggingResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

// WithRequestID assigns every request an id, taken from the incoming
// X-Request-ID header if present, and echoes it in the response.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, id)

		ctx := logging.ContextWithRequestID(r.Context(), id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithLogging logs every request once it has been served. The request
// scoped logger, derived from logger, replaces any logger already stored
// in the request context.
func WithLogging(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		log := logging.WithRequestID(r.Context(), logger)
		r = r.WithContext(logging.ContextWithLogger(r.Context(), log))

		next.ServeHTTP(lw, r)

		log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("host", r.Host),
			zap.Int("status", lw.statusCode),
			zap.Int("bytes", lw.written),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_addr", r.RemoteAddr),
		)
	})
}
