package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/broncodesk/ticket-tracker/internal/domain"
	"github.com/broncodesk/ticket-tracker/internal/store"
)

// GroupDirectory reads group rosters from postgres.
type GroupDirectory struct {
	pool *pgxpool.Pool
}

// NewGroupDirectory constructs the directory.
func NewGroupDirectory(pool *pgxpool.Pool) *GroupDirectory {
	return &GroupDirectory{pool: pool}
}

var _ store.GroupDirectory = (*GroupDirectory)(nil)

func (d *GroupDirectory) Get(ctx context.Context, id string) (*domain.Group, error) {
	const query = `SELECT id, name, members, default_handler FROM groups WHERE id=$1`

	var group domain.Group
	if err := d.pool.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Members,
		&group.DefaultHandler,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (d *GroupDirectory) List(ctx context.Context) ([]domain.Group, error) {
	const query = `SELECT id, name, members, default_handler FROM groups ORDER BY name ASC`
	rows, err := d.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Group
	for rows.Next() {
		var group domain.Group
		if err := rows.Scan(&group.ID, &group.Name, &group.Members, &group.DefaultHandler); err != nil {
			return nil, err
		}
		result = append(result, group)
	}
	return result, rows.Err()
}
