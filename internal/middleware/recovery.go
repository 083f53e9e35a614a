package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

const internalErrorPage = `<!DOCTYPE html>
<html><head><title>Server error</title></head>
<body><h1>Something went wrong</h1><p>Please try again later. <a href="/">Back to the bakery</a></p></body></html>`

// RecoveryMiddleware recovers from panics, logs the error and renders a 500 page
func RecoveryMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("panic recovered",
						zap.String("request_id", GetRequestID(r.Context())),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Any("error", err),
						zap.Stack("stack"),
					)

					w.Header().Set("Content-Type", "text/html; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(internalErrorPage))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
