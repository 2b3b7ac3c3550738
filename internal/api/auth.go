package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AdminGate guards admin endpoints with the single configured secret. There
// are no sessions or per-user identities: a matching bearer credential IS the
// admin capability, and every request re-verifies it here.
type AdminGate struct {
	secret string
}

func NewAdminGate(secret string) *AdminGate {
	return &AdminGate{secret: secret}
}

// Verify reports whether the presented credential equals the configured
// secret. Comparison is exact (no trimming) and constant-time.
func (g *AdminGate) Verify(credential string) bool {
	if g.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(credential), []byte(g.secret)) == 1
}

// Middleware rejects requests whose Authorization bearer value does not
// verify. The failure body is identical for every admin operation.
func (g *AdminGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential, ok := bearerToken(r)
		if !ok || !g.Verify(credential) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	return header[len(prefix):], true
}
