package http

import (
	"math"
	"net"
	"net/http"
	"strconv"
)

// RateLimitMiddleware rejects clients that have used up their bucket with
// 429 and a Retry-After header. The client key is the remote IP, which
// chi's RealIP middleware may have taken from proxy headers.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.Allow(ip) {
				secs := int(math.Ceil(limiter.RetryAfter(ip).Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
				writeError(w, r, errRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
