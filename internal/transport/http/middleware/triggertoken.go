package middleware

import (
	"crypto/subtle"
	"net/http"
)

// TriggerToken guards the trigger endpoints with a shared secret carried in
// the X-Trigger-Token header. An empty configured token disables the check
// (local development).
func TriggerToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Trigger-Token")
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				writeJSONError(w, http.StatusUnauthorized, "invalid trigger token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
