package http

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elaa0505/AzuraCast/internal/adapter/http/ratelimit"
)

const APIKeyHeader = "X-API-Key"

type Authenticator interface {
	Enabled() bool
	Authenticate(key string) error
}

// AuthMiddleware requires a valid API key, sent as a bearer token or in the
// X-API-Key header. Clients that keep failing are blocked for a while.
func AuthMiddleware(auth Authenticator, failures *ratelimit.FailureLimiter, behindProxy bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.Enabled() {
			next(w, r)
			return
		}

		client := clientIP(r, behindProxy)
		if blocked, remaining := failures.Blocked(client); blocked {
			tooManyAttempts(w, remaining)
			return
		}

		if err := auth.Authenticate(apiKey(r)); err != nil {
			if blocked, remaining := failures.Fail(client); blocked {
				tooManyAttempts(w, remaining)
				return
			}
			w.Header().Set("WWW-Authenticate", `Bearer realm="mediabatch"`)
			writeError(w, http.StatusUnauthorized, "Invalid or missing API key")
			return
		}

		failures.Reset(client)
		next(w, r)
	}
}

func apiKey(r *http.Request) string {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return r.Header.Get(APIKeyHeader)
}

func tooManyAttempts(w http.ResponseWriter, remaining time.Duration) {
	w.Header().Set("Retry-After", strconv.Itoa(int(remaining.Round(time.Second).Seconds())))
	writeError(w, http.StatusTooManyRequests, "Too many failed attempts")
}

// clientIP trusts X-Forwarded-For only when running behind a proxy.
func clientIP(r *http.Request, behindProxy bool) string {
	if behindProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			return strings.TrimSpace(first)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
