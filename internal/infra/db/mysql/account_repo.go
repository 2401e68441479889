package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/realitylabs/reality-check/internal/domain/identity"
)

// AccountRepository resolves bearer session tokens against the accounts
// table owned by the auth service. This side reads only; credential hashing
// and token rotation happen elsewhere.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) ResolveToken(ctx context.Context, token string) (*identity.Identity, error) {
	const q = `SELECT id, name, email FROM accounts WHERE session_token = ? LIMIT 1;`

	var id identity.Identity
	if err := r.db.QueryRowContext(ctx, q, token).Scan(&id.ID, &id.Name, &id.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identity.ErrUnauthenticated
		}
		return nil, err
	}
	return &id, nil
}
