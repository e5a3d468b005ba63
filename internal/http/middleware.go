package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/yuchenwang/wallet-api/internal/http/respond"
	"github.com/yuchenwang/wallet-api/internal/ratelimit"
)

// RateLimit applies the limiter under a single global key, mirroring a
// shared quota across all callers.
func RateLimit(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), "global")
			if err != nil {
				// Fail closed: an unreachable limiter backend must not
				// turn into an unmetered API.
				slog.Error("rate limiter unavailable", "error", err)
				respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})

				return
			}

			if !res.Allowed {
				retryAfter := int(time.Until(res.Reset).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				respond.JSON(w, http.StatusTooManyRequests, map[string]string{"message": "too many requests, please try again later"})

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
