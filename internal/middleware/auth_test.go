package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/realitylabs/reality-check/internal/domain/identity"
)

type stubResolver struct {
	tokens map[string]*identity.Identity
}

func (r *stubResolver) ResolveToken(_ context.Context, token string) (*identity.Identity, error) {
	if id, ok := r.tokens[token]; ok {
		return id, nil
	}
	return nil, identity.ErrUnauthenticated
}

func identityEcho(t *testing.T, got **identity.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestOptionalIdentity(t *testing.T) {
	resolver := &stubResolver{tokens: map[string]*identity.Identity{
		"tok-1": {ID: "acct-1", Name: "Ana"},
	}}

	var got *identity.Identity
	h := OptionalIdentity(resolver)(identityEcho(t, &got))

	// No token: anonymous passthrough.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/analyze", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, got)

	// Valid token: identity attached.
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	require.Equal(t, "acct-1", got.ID)

	// Stale token: treated as anonymous, never rejected.
	got = nil
	req = httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, got)
}

func TestRequireIdentity(t *testing.T) {
	resolver := &stubResolver{tokens: map[string]*identity.Identity{
		"tok-1": {ID: "acct-1"},
	}}

	var got *identity.Identity
	h := RequireIdentity(resolver)(identityEcho(t, &got))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/submissions", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	require.Equal(t, "acct-1", got.ID)
}

func TestBearerTokenFormats(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Empty(t, bearerToken(req))

	req.Header.Set("Authorization", "Bearer abc")
	require.Equal(t, "abc", bearerToken(req))

	req.Header.Set("Authorization", "abc")
	require.Equal(t, "abc", bearerToken(req))
}
