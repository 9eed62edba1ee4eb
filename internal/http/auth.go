package http

import (
	"net/http"
	"strings"
)

// authGuard checks the identity header a fronting auth proxy sets against the
// single allow-listed email. An empty allow list disables the guard, for
// local development.
type authGuard struct {
	header       string
	allowedEmail string
}

func newAuthGuard(header, allowedEmail string) authGuard {
	return authGuard{
		header:       header,
		allowedEmail: strings.ToLower(strings.TrimSpace(allowedEmail)),
	}
}

func (g authGuard) enabled() bool {
	return g.allowedEmail != ""
}

// wrap rejects requests lacking the identity header with 401 and requests
// from any other identity with 403. Comparison is case-insensitive.
func (g authGuard) wrap(next http.Handler) http.Handler {
	if !g.enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.Header.Get(g.header))
		if email == "" {
			writeError(w, http.StatusUnauthorized, "No autenticado", nil)
			return
		}
		if !strings.EqualFold(email, g.allowedEmail) {
			writeError(w, http.StatusForbidden, "Acceso denegado", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
