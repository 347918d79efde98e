package lifecycle

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/broncodesk/ticket-tracker/internal/domain"
	"github.com/broncodesk/ticket-tracker/internal/events"
	"github.com/broncodesk/ticket-tracker/internal/store"
	"github.com/broncodesk/ticket-tracker/pkg/apperrors"
)

// SnapshotInvalidator drops cached visible-set snapshots after a
// successful mutation.
type SnapshotInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

// Engine enforces the ticket lifecycle rules: who may mutate what, the
// handler/group invariant, and the atomicity of dual-field updates.
type Engine struct {
	tickets    store.TicketStore
	groups     store.GroupDirectory
	dispatcher events.Dispatcher
	snapshots  SnapshotInvalidator
	policy     HandlerPolicy
	clock      func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Dependencies bundles collaborators for the engine.
type Dependencies struct {
	Tickets    store.TicketStore
	Groups     store.GroupDirectory
	Dispatcher events.Dispatcher
	Snapshots  SnapshotInvalidator
	Policy     HandlerPolicy
	Clock      func() time.Time
}

// NewEngine constructs the engine.
func NewEngine(deps Dependencies) *Engine {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	policy := deps.Policy
	if policy == "" {
		policy = PolicyGroupDefault
	}
	return &Engine{
		tickets:    deps.Tickets,
		groups:     deps.Groups,
		dispatcher: deps.Dispatcher,
		snapshots:  deps.Snapshots,
		policy:     policy,
		clock:      clock,
		locks:      map[string]*sync.Mutex{},
	}
}

// CreateTicket validates a draft and persists a new open ticket.
func (e *Engine) CreateTicket(ctx context.Context, caller domain.Caller, draft domain.Draft) (*domain.Ticket, error) {
	ticket, err := domain.NewTicket(draft, caller, e.clock())
	if err != nil {
		return nil, err
	}
	if err := e.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	e.invalidate(ctx)
	e.publish(ctx, caller, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload:  events.TicketCreatedPayload{Title: ticket.Title, Contact: ticket.Contact},
	})
	return ticket, nil
}

// GetTicket loads a ticket the caller may see.
func (e *Engine) GetTicket(ctx context.Context, caller domain.Caller, ticketID string) (*domain.Ticket, error) {
	ticket, err := e.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && ticket.CreatedBy != caller.ID {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	return ticket, nil
}

// Apply validates and applies a patch as one unit. Either every field
// of the patch lands or none does; the validated pair (status,
// assignment) can never be observed half-written.
func (e *Engine) Apply(ctx context.Context, caller domain.Caller, ticketID string, patch domain.TicketPatch) (*domain.Ticket, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.NewForbiddenTransition("administrative capability required to change status or assignment")
	}
	if patch.Empty() {
		return nil, apperrors.NewValidation("no fields to update", nil)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperrors.NewValidation("unknown status", map[string]any{"status": *patch.Status})
	}

	unlock := e.lockTicket(ticketID)
	defer unlock()

	ticket, err := e.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	resolved, err := e.resolve(ctx, ticket, patch)
	if err != nil {
		return nil, err
	}

	updated, err := e.tickets.Update(ctx, ticketID, resolved)
	if err != nil {
		return nil, mapStoreError(err, "ticket", ticketID)
	}
	e.invalidate(ctx)

	if resolved.Status != nil && *resolved.Status != ticket.Status {
		e.publish(ctx, caller, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticketID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: ticket.Status,
				NewStatus: *resolved.Status,
			},
		})
	}
	if resolved.Group != nil || resolved.Handler != nil {
		e.publish(ctx, caller, events.Event{
			Type:     events.EventTicketAssigned,
			TicketID: ticketID,
			Payload: events.TicketAssignedPayload{
				Group:   updated.AssignedGroup,
				Handler: updated.AssignedHandler,
			},
		})
	}
	return updated, nil
}

// AddComment appends to the ticket's thread. The thread is untouched
// when the body is blank.
func (e *Engine) AddComment(ctx context.Context, caller domain.Caller, ticketID, body string) (*domain.Ticket, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewEmptyComment()
	}

	ticket, err := e.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && ticket.CreatedBy != caller.ID {
		return nil, apperrors.NewForbiddenTransition("only the ticket creator or an administrator may comment")
	}

	comment := domain.Comment{
		ID:        uuid.NewString(),
		Author:    caller.DisplayName(),
		Timestamp: e.clock(),
		Body:      body,
	}
	updated, err := e.tickets.AppendComment(ctx, ticketID, comment)
	if err != nil {
		return nil, mapStoreError(err, "ticket", ticketID)
	}
	e.invalidate(ctx)
	e.publish(ctx, caller, events.Event{
		Type:     events.EventTicketCommented,
		TicketID: ticketID,
		Payload:  events.TicketCommentedPayload{CommentID: comment.ID, Author: comment.Author},
	})
	return updated, nil
}

// resolve turns a caller patch into a fully explicit one, applying the
// handler policy on group change and checking every invariant before
// any write happens.
func (e *Engine) resolve(ctx context.Context, ticket *domain.Ticket, patch domain.TicketPatch) (domain.TicketPatch, error) {
	finalGroup := ticket.AssignedGroup
	if patch.Group != nil {
		finalGroup = patch.Group.Group
	}
	groupChanged := patch.Group != nil && !equalPtr(ticket.AssignedGroup, patch.Group.Group)

	var group *domain.Group
	if finalGroup != nil {
		loaded, err := e.groups.Get(ctx, *finalGroup)
		if err != nil {
			return domain.TicketPatch{}, mapStoreError(err, "group", *finalGroup)
		}
		group = loaded
	}

	var finalHandler *string
	switch {
	case patch.Handler != nil:
		finalHandler = patch.Handler.Handler
	case groupChanged:
		finalHandler = e.policy.defaultHandler(group)
	default:
		finalHandler = ticket.AssignedHandler
	}

	if finalHandler != nil {
		if finalGroup == nil {
			return domain.TicketPatch{}, apperrors.NewInvalidAssignment(
				"handler requires an assigned group",
				map[string]any{"handler": *finalHandler},
			)
		}
		if !group.HasMember(*finalHandler) {
			return domain.TicketPatch{}, apperrors.NewInvalidAssignment(
				"handler is not a member of the assigned group",
				map[string]any{"handler": *finalHandler, "group": *finalGroup},
			)
		}
	}

	finalStatus := ticket.Status
	if patch.Status != nil {
		finalStatus = *patch.Status
	}
	if finalStatus == domain.StatusInProgress && finalHandler == nil {
		return domain.TicketPatch{}, apperrors.NewInvalidAssignment(
			"an in-progress ticket must have a handler", nil,
		)
	}

	resolved := domain.TicketPatch{Status: patch.Status, Group: patch.Group}
	if patch.Handler != nil || groupChanged {
		resolved.Handler = &domain.HandlerChange{Handler: finalHandler}
	}
	return resolved, nil
}

func (e *Engine) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := e.tickets.Get(ctx, ticketID)
	if err != nil {
		return nil, mapStoreError(err, "ticket", ticketID)
	}
	return ticket, nil
}

// lockTicket serializes read-validate-write per ticket so concurrent
// patches to the same ticket cannot interleave into a torn state.
func (e *Engine) lockTicket(ticketID string) func() {
	e.mu.Lock()
	lock, ok := e.locks[ticketID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[ticketID] = lock
	}
	e.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (e *Engine) invalidate(ctx context.Context) {
	if e.snapshots == nil {
		return
	}
	_ = e.snapshots.InvalidateAll(ctx)
}

func (e *Engine) publish(ctx context.Context, caller domain.Caller, event events.Event) {
	if e.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Actor = events.Actor{CallerID: caller.ID, Role: caller.Role}
	event.Timestamp = e.clock()
	_ = e.dispatcher.Publish(ctx, event)
}

func mapStoreError(err error, resource, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NewNotFound(resource, map[string]any{resource + "_id": id})
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return apperrors.NewStoreUnavailable(err)
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
