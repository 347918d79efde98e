package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/broncodesk/ticket-tracker/internal/domain"
	"github.com/broncodesk/ticket-tracker/internal/store"
)

// TicketStore persists tickets and comments in postgres.
type TicketStore struct {
	pool *pgxpool.Pool
}

// NewTicketStore constructs the store.
func NewTicketStore(pool *pgxpool.Pool) *TicketStore {
	return &TicketStore{pool: pool}
}

var _ store.TicketStore = (*TicketStore)(nil)

const ticketColumns = `id, title, description, contact, created_by, creator_name,
               created_at, status, assigned_group, assigned_handler`

// ListVisible applies role scoping in SQL and returns tickets in
// creation order. Comment threads are loaded on Get, not here; the
// query path never needs them.
func (s *TicketStore) ListVisible(ctx context.Context, caller domain.Caller) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets`
	args := []any{}

	switch {
	case !caller.IsAdmin():
		query += ` WHERE created_by=$1`
		args = append(args, caller.ID)
	case caller.Team != nil:
		query += ` WHERE assigned_group=$1 OR assigned_group IS NULL`
		args = append(args, *caller.Team)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (s *TicketStore) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`

	ticket, err := scanTicket(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	comments, err := s.listComments(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket.Comments = comments
	return ticket, nil
}

func (s *TicketStore) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (id, title, description, contact, created_by, creator_name, created_at, status, assigned_group, assigned_handler)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := s.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Title,
		ticket.Description,
		ticket.Contact,
		ticket.CreatedBy,
		ticket.CreatorName,
		ticket.CreatedAt,
		ticket.Status,
		ticket.AssignedGroup,
		ticket.AssignedHandler,
	)
	return err
}

// Update applies the patch inside one transaction with the row locked,
// so concurrent mutations to the same ticket serialize and the
// status/assignment pair is never observed half-written.
func (s *TicketStore) Update(ctx context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const lockQuery = `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1 FOR UPDATE`
	ticket, err := scanTicket(tx.QueryRow(ctx, lockQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	if patch.Status != nil {
		ticket.Status = *patch.Status
	}
	if patch.Group != nil {
		ticket.AssignedGroup = patch.Group.Group
	}
	if patch.Handler != nil {
		ticket.AssignedHandler = patch.Handler.Handler
	}

	const updateQuery = `
        UPDATE tickets SET status=$1, assigned_group=$2, assigned_handler=$3 WHERE id=$4`
	if _, err := tx.Exec(ctx, updateQuery, ticket.Status, ticket.AssignedGroup, ticket.AssignedHandler, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketStore) AppendComment(ctx context.Context, id string, comment domain.Comment) (*domain.Ticket, error) {
	const query = `
        INSERT INTO ticket_comments (id, ticket_id, author, created_at, body)
        VALUES ($1,$2,$3,$4,$5)`
	cmd, err := s.pool.Exec(ctx, query,
		comment.ID,
		id,
		comment.Author,
		comment.Timestamp,
		comment.Body,
	)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, store.ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *TicketStore) listComments(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	const query = `
        SELECT id, author, created_at, body
        FROM ticket_comments WHERE ticket_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := s.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(&comment.ID, &comment.Author, &comment.Timestamp, &comment.Body); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Contact,
		&ticket.CreatedBy,
		&ticket.CreatorName,
		&ticket.CreatedAt,
		&ticket.Status,
		&ticket.AssignedGroup,
		&ticket.AssignedHandler,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}
