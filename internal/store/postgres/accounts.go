package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/broncodesk/ticket-tracker/internal/identity"
	"github.com/broncodesk/ticket-tracker/internal/store"
)

// AccountDirectory resolves login principals from postgres.
type AccountDirectory struct {
	pool *pgxpool.Pool
}

// NewAccountDirectory constructs the directory.
func NewAccountDirectory(pool *pgxpool.Pool) *AccountDirectory {
	return &AccountDirectory{pool: pool}
}

var _ identity.AccountDirectory = (*AccountDirectory)(nil)

func (d *AccountDirectory) GetByEmail(ctx context.Context, email string) (*identity.Account, error) {
	const query = `SELECT id, name, email, password_hash, role, team FROM accounts WHERE email=$1`

	var account identity.Account
	if err := d.pool.QueryRow(ctx, query, email).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.Team,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}
