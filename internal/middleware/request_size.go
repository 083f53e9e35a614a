package middleware

import (
	"net/http"
)

// MaxFormSize bounds request bodies; the storefront only accepts small forms
const MaxFormSize = 1 << 20 // 1MB

// RequestSizeLimitMiddleware limits the size of request bodies to maxRequestSize bytes
func RequestSizeLimitMiddleware(maxRequestSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxRequestSize {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
			next.ServeHTTP(w, r)
		})
	}
}
