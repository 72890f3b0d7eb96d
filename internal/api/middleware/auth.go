package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/soldal/booking-platform/internal/api/response"
	"github.com/soldal/booking-platform/internal/core"
)

type contextKey string

const principalKey contextKey = "principal"

// Session returns a middleware that validates the bearer session token
// against the sessions table and attaches the resulting principal to the
// request context. Requests without a valid session are rejected.
func Session(db core.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				response.WriteError(w, http.StatusUnauthorized, "missing session token")
				return
			}

			hash := sha256.Sum256([]byte(token))
			tokenHash := hex.EncodeToString(hash[:])

			var p core.Principal
			err := db.QueryRow(r.Context(),
				`SELECT id, tenant_id, role FROM sessions WHERE token_hash = $1 AND expires_at > now()`, tokenHash,
			).Scan(&p.SessionID, &p.TenantID, &p.Role)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, "invalid session token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), &p)))
		})
	}
}

// WithPrincipal attaches a principal to the context. Exported for tests.
func WithPrincipal(ctx context.Context, p *core.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the authenticated principal, or nil outside a session.
func GetPrincipal(ctx context.Context) *core.Principal {
	p, _ := ctx.Value(principalKey).(*core.Principal)
	return p
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if c, err := r.Cookie("session"); err == nil {
		return c.Value
	}
	return ""
}
