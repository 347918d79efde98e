package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/broncodesk/ticket-tracker/internal/domain"
)

func strPtr(v string) *string { return &v }

func seedStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		{ID: "t-1", Title: "Login broken", CreatedBy: "u-1", CreatedAt: base, Status: domain.StatusOpen},
		{ID: "t-2", Title: "Invoice wrong", CreatedBy: "u-2", CreatedAt: base.Add(time.Minute), Status: domain.StatusInProgress, AssignedGroup: strPtr("billing"), AssignedHandler: strPtr("Charlie Fox")},
		{ID: "t-3", Title: "Slow dashboard", CreatedBy: "u-1", CreatedAt: base.Add(2 * time.Minute), Status: domain.StatusOpen, AssignedGroup: strPtr("technical-support")},
	}
	for i := range tickets {
		if err := s.Create(context.Background(), &tickets[i]); err != nil {
			t.Fatalf("Create(%s): %v", tickets[i].ID, err)
		}
	}
	return s
}

func ids(tickets []domain.Ticket) []string {
	out := make([]string, 0, len(tickets))
	for i := range tickets {
		out = append(out, tickets[i].ID)
	}
	return out
}

func TestListVisibleScoping(t *testing.T) {
	s := seedStore(t)

	tests := []struct {
		name   string
		caller domain.Caller
		want   []string
	}{
		{
			name:   "end user sees only own tickets",
			caller: domain.Caller{ID: "u-1", Role: domain.RoleEndUser},
			want:   []string{"t-1", "t-3"},
		},
		{
			name:   "teamless admin sees everything",
			caller: domain.Caller{ID: "a-1", Role: domain.RoleAdmin},
			want:   []string{"t-1", "t-2", "t-3"},
		},
		{
			name:   "team admin sees team tickets plus untriaged",
			caller: domain.Caller{ID: "a-2", Role: domain.RoleAdmin, Team: strPtr("billing")},
			want:   []string{"t-1", "t-2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible, err := s.ListVisible(context.Background(), tt.caller)
			if err != nil {
				t.Fatalf("ListVisible: %v", err)
			}
			got := ids(visible)
			if len(got) != len(tt.want) {
				t.Fatalf("visible = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("visible = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestReadsAreDetached(t *testing.T) {
	s := seedStore(t)
	admin := domain.Caller{ID: "a-1", Role: domain.RoleAdmin}

	visible, err := s.ListVisible(context.Background(), admin)
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}
	visible[0].Title = "mutated"
	*visible[1].AssignedGroup = "mutated"

	fresh, err := s.Get(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fresh.Title != "Login broken" {
		t.Errorf("stored title changed through returned slice: %q", fresh.Title)
	}
	fresh2, err := s.Get(context.Background(), "t-2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if *fresh2.AssignedGroup != "billing" {
		t.Errorf("stored group changed through returned pointer: %q", *fresh2.AssignedGroup)
	}
}

func TestUpdateAppliesResolvedPatch(t *testing.T) {
	s := seedStore(t)
	closed := domain.StatusClosed

	updated, err := s.Update(context.Background(), "t-2", domain.TicketPatch{
		Status:  &closed,
		Handler: &domain.HandlerChange{Handler: nil},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != domain.StatusClosed {
		t.Errorf("status = %s, want CLOSED", updated.Status)
	}
	if updated.AssignedHandler != nil {
		t.Errorf("handler = %v, want cleared", *updated.AssignedHandler)
	}
	if updated.AssignedGroup == nil || *updated.AssignedGroup != "billing" {
		t.Errorf("group should be untouched by a nil change")
	}
}

func TestAppendCommentOrdering(t *testing.T) {
	s := seedStore(t)
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	for i, body := range []string{"first", "second"} {
		if _, err := s.AppendComment(context.Background(), "t-1", domain.Comment{
			ID:        "c-" + body,
			Author:    "Uma User",
			Timestamp: now.Add(time.Duration(i) * time.Minute),
			Body:      body,
		}); err != nil {
			t.Fatalf("AppendComment: %v", err)
		}
	}

	ticket, err := s.Get(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(ticket.Comments) != 2 {
		t.Fatalf("comments = %d, want 2", len(ticket.Comments))
	}
	if ticket.Comments[0].Body != "first" || ticket.Comments[1].Body != "second" {
		t.Errorf("comment order = %q, %q", ticket.Comments[0].Body, ticket.Comments[1].Body)
	}
}
