package middleware

import (
	"net/http"
	"time"

	"github.com/cakebakery/backend/internal/session"
	"go.uber.org/zap"
)

// LoggerMiddleware logs HTTP requests with request ID.
// When it runs inside the session middleware the logged-in user's ID is logged too.
func LoggerMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := newStatusRecorder(w)

			next.ServeHTTP(ww, r)

			fields := []zap.Field{
				zap.String("request_id", GetRequestID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.statusCode),
				zap.Duration("duration", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
			}
			if sess := session.FromContext(r.Context()); sess != nil && sess.IsAuthenticated() {
				fields = append(fields, zap.Int("user_id", sess.UserID()))
			}

			logger.Info("HTTP request", fields...)
		})
	}
}
