package lifecycle

import (
	"context"
	"sync"
	"testing"

	"github.com/broncodesk/ticket-tracker/internal/domain"
)

// Interleaves 1000 dual-field patches against one ticket and checks
// that no reader ever observes a torn (status, assignment) pair.
func TestApplyConcurrentNoTornState(t *testing.T) {
	e, _ := newTestEngine(t, PolicyNone)
	ticket := mustCreate(t, e, endUser)
	ctx := context.Background()

	patches := []domain.TicketPatch{
		{
			Status:  statusPtr(domain.StatusInProgress),
			Group:   &domain.GroupChange{Group: strPtr("g-support")},
			Handler: &domain.HandlerChange{Handler: strPtr("alice")},
		},
		{
			Status:  statusPtr(domain.StatusOpen),
			Group:   &domain.GroupChange{Group: nil},
			Handler: &domain.HandlerChange{Handler: nil},
		},
		// Rejected whenever the ticket is in progress; must never
		// strip the handler from an in-progress ticket.
		{Handler: &domain.HandlerChange{Handler: nil}},
		{Status: statusPtr(domain.StatusClosed)},
		{
			Status:  statusPtr(domain.StatusInProgress),
			Group:   &domain.GroupChange{Group: strPtr("g-billing")},
			Handler: &domain.HandlerChange{Handler: strPtr("diana")},
		},
	}

	const trials = 1000
	const writers = 4

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := 0; i < trials/writers; i++ {
				patch := patches[(offset+i)%len(patches)]
				_, _ = e.Apply(ctx, admin, ticket.ID, patch)
			}
		}(w)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()

	checkInvariants := func() {
		got, err := e.GetTicket(ctx, admin, ticket.ID)
		if err != nil {
			t.Errorf("GetTicket: %v", err)
			return
		}
		if got.AssignedHandler != nil && got.AssignedGroup == nil {
			t.Errorf("torn state: handler %q without group", *got.AssignedHandler)
		}
		if got.Status == domain.StatusInProgress && got.AssignedHandler == nil {
			t.Error("torn state: in progress with no handler")
		}
	}

	for {
		select {
		case <-done:
			checkInvariants()
			return
		default:
			checkInvariants()
			if t.Failed() {
				return
			}
		}
	}
}
