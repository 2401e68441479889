package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/realitylabs/reality-check/internal/domain/identity"
)

type contextKey string

const identityKey contextKey = "identity"

// bearerToken pulls the session token out of the Authorization header.
// Both "Bearer <token>" and a bare token are accepted.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	return strings.TrimSpace(token)
}

// OptionalIdentity resolves the caller when a token is present and lets
// anonymous requests pass through untouched. A token that fails to
// resolve is treated as anonymous rather than rejected, so stale
// sessions can still submit media.
func OptionalIdentity(resolver identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" || resolver == nil {
				next.ServeHTTP(w, r)
				return
			}

			id, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIdentity rejects requests without a resolvable session token.
func RequireIdentity(resolver identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				http.Error(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}
			if resolver == nil {
				http.Error(w, "authentication unavailable", http.StatusUnauthorized)
				return
			}

			id, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, identity.ErrUnauthenticated) {
					http.Error(w, "invalid session token", http.StatusUnauthorized)
					return
				}
				http.Error(w, "authentication failed", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the resolved caller, or nil for anonymous
// requests.
func IdentityFromContext(ctx context.Context) *identity.Identity {
	if id, ok := ctx.Value(identityKey).(*identity.Identity); ok {
		return id
	}
	return nil
}
