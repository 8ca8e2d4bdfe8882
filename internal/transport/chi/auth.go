package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// APIKeyHeader is accepted as an alternative to an Authorization bearer token.
const APIKeyHeader = "X-API-Key"

// publicPaths never require a key: probes, metrics and the index route.
var publicPaths = map[string]bool{
	"/":        true,
	"/health":  true,
	"/ready":   true,
	"/metrics": true,
}

// APIKeyMiddleware rejects requests without one of keys, taken from either
// "Authorization: Bearer <key>" or the X-API-Key header.
// With no non-empty keys configured it is a no-op.
func APIKeyMiddleware(keys []string) func(http.Handler) http.Handler {
	accepted := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			accepted = append(accepted, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(accepted) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			key, msg := presentedKey(r)
			if msg == "" && !knownKey(accepted, key) {
				msg = "invalid api key"
			}
			if msg != "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="autospecs"`)
				writeError(w, http.StatusUnauthorized, "Unauthorized", msg)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// presentedKey extracts the caller's key. A non-empty msg explains why none was usable.
func presentedKey(r *http.Request) (key, msg string) {
	if k := r.Header.Get(APIKeyHeader); k != "" {
		return k, ""
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", "missing authorization header"
	}
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", "authorization header must use Bearer scheme"
	}
	return strings.TrimSpace(token), ""
}

// knownKey compares against every accepted key in constant time.
func knownKey(accepted [][]byte, key string) bool {
	presented := []byte(key)
	found := 0
	for _, k := range accepted {
		found |= subtle.ConstantTimeCompare(k, presented)
	}
	return found == 1
}
