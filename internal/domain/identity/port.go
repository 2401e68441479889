package identity

import (
	"context"
	"errors"
)

// Resolver port: maps a bearer credential to an identity, or reports
// ErrUnauthenticated. Token issuance and rotation live with the auth
// service; this side only reads.
type Resolver interface {
	ResolveToken(ctx context.Context, token string) (*Identity, error)
}

// ErrUnauthenticated indicates a missing, expired, or unknown credential.
var ErrUnauthenticated = errors.New("unauthenticated")
