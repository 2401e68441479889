package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/realitylabs/reality-check/internal/domain/identity"
)

// AccountRepository reads the auth service's accounts table to resolve
// session tokens. Read-only.
type AccountRepository struct{ db *sql.DB }

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) ResolveToken(ctx context.Context, token string) (*identity.Identity, error) {
	const q = `SELECT id, name, email FROM accounts WHERE session_token = $1 LIMIT 1;`

	var id identity.Identity
	if err := r.db.QueryRowContext(ctx, q, token).Scan(&id.ID, &id.Name, &id.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identity.ErrUnauthenticated
		}
		return nil, err
	}
	return &id, nil
}
