package store

import (
	"context"
	"errors"

	"github.com/broncodesk/ticket-tracker/internal/domain"
)

// ErrNotFound is returned when a ticket or group does not exist.
// Implementations map their backend's no-rows condition to it.
var ErrNotFound = errors.New("not found")

// TicketStore is the sole owner of ticket and comment lifetime. Reads
// return detached copies; mutations to the same ticket are serialized so
// a dual-field update is never observed half-applied.
type TicketStore interface {
	// ListVisible returns the caller's visible ticket set in creation
	// order: end users see tickets they created, team-scoped admins see
	// their team's tickets plus untriaged ones, teamless admins see all.
	ListVisible(ctx context.Context, caller domain.Caller) ([]domain.Ticket, error)
	Get(ctx context.Context, id string) (*domain.Ticket, error)
	Create(ctx context.Context, ticket *domain.Ticket) error
	// Update applies a fully resolved patch in one indivisible write.
	Update(ctx context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error)
	AppendComment(ctx context.Context, id string, comment domain.Comment) (*domain.Ticket, error)
}

// GroupDirectory resolves groups and their memberships.
type GroupDirectory interface {
	Get(ctx context.Context, id string) (*domain.Group, error)
	List(ctx context.Context) ([]domain.Group, error)
}
