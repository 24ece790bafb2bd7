package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/duyet/finance-hub-sub002/internal/api/response"
)

// APIKeyMiddleware protects mutating routes with a shared internal API key,
// supplied by callers in the X-API-Key header. The expected key comes from
// the INTERNAL_API_KEY environment variable; when it is unset, all requests
// are rejected rather than silently allowed.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "API key not configured")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
