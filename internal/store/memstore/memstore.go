package memstore

import (
	"context"
	"sync"

	"github.com/broncodesk/ticket-tracker/internal/domain"
	"github.com/broncodesk/ticket-tracker/internal/store"
)

// Store is an in-memory TicketStore. It backs tests and deployments
// without a configured database. All reads return detached clones and a
// single mutex serializes mutations, so no torn write is observable.
type Store struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
	order   []string
}

// New constructs an empty store.
func New() *Store {
	return &Store{tickets: map[string]*domain.Ticket{}}
}

var _ store.TicketStore = (*Store)(nil)

// ListVisible returns the caller-scoped ticket set in creation order.
func (s *Store) ListVisible(ctx context.Context, caller domain.Caller) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Ticket, 0, len(s.order))
	for _, id := range s.order {
		ticket := s.tickets[id]
		if visibleTo(caller, ticket) {
			result = append(result, *ticket.Clone())
		}
	}
	return result, nil
}

func visibleTo(caller domain.Caller, ticket *domain.Ticket) bool {
	if !caller.IsAdmin() {
		return ticket.CreatedBy == caller.ID
	}
	if caller.Team == nil {
		return true
	}
	if ticket.AssignedGroup == nil {
		return true
	}
	return *ticket.AssignedGroup == *caller.Team
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return ticket.Clone(), nil
}

func (s *Store) Create(ctx context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tickets[ticket.ID] = ticket.Clone()
	s.order = append(s.order, ticket.ID)
	return nil
}

func (s *Store) Update(ctx context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if patch.Status != nil {
		ticket.Status = *patch.Status
	}
	if patch.Group != nil {
		ticket.AssignedGroup = clonePtr(patch.Group.Group)
	}
	if patch.Handler != nil {
		ticket.AssignedHandler = clonePtr(patch.Handler.Handler)
	}
	return ticket.Clone(), nil
}

func (s *Store) AppendComment(ctx context.Context, id string, comment domain.Comment) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	ticket.Comments = append(ticket.Comments, comment)
	return ticket.Clone(), nil
}

func clonePtr(v *string) *string {
	if v == nil {
		return nil
	}
	dup := *v
	return &dup
}
