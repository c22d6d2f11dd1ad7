package middleware

import (
	"net/http"
	"strconv"
)

// NewMaxBodySizeHandler returns a middleware that limits incoming request
// bodies to limit bytes. A request whose Content-Length already exceeds the
// limit is rejected with 413 before reaching the next handler. Otherwise the
// body is wrapped in http.MaxBytesReader, so a streaming body fails on read
// once it crosses the limit.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(`{"error":{"code":"body_too_large","message":"request body exceeds ` +
					strconv.FormatInt(limit, 10) + ` bytes"}}`))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
