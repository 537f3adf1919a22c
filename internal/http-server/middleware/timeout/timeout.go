package timeout

import (
	"context"
	"net/http"
	"time"
)

const defaultSeconds = 5

// Timeout bounds every request context to the given number of seconds,
// non-positive values fall back to the default
func Timeout(seconds int) func(next http.Handler) http.Handler {
	if seconds <= 0 {
		seconds = defaultSeconds
	}
	limit := time.Duration(seconds) * time.Second

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}
