package cache

import (
	"context"

	"github.com/broncodesk/ticket-tracker/internal/domain"
	"github.com/broncodesk/ticket-tracker/internal/store"
	"github.com/broncodesk/ticket-tracker/pkg/apperrors"
)

// Lister serves visible-set snapshots, preferring the cache and falling
// back to the store. The snapshot handed out is the immutable basis for
// one query; later mutations are not required to be visible in it.
type Lister struct {
	tickets   store.TicketStore
	snapshots *SnapshotCache
}

// NewLister constructs the lister. A nil cache disables caching.
func NewLister(tickets store.TicketStore, snapshots *SnapshotCache) *Lister {
	return &Lister{tickets: tickets, snapshots: snapshots}
}

// ListVisible returns the caller's snapshot.
func (l *Lister) ListVisible(ctx context.Context, caller domain.Caller) ([]domain.Ticket, error) {
	if tickets, ok := l.snapshots.Get(ctx, caller.ID); ok {
		return tickets, nil
	}
	tickets, err := l.tickets.ListVisible(ctx, caller)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	l.snapshots.Put(ctx, caller.ID, tickets)
	return tickets, nil
}
