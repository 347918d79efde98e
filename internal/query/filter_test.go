package query

import (
	"testing"

	"github.com/broncodesk/ticket-tracker/internal/domain"
)

func strPtr(v string) *string { return &v }

func statusPtr(s domain.Status) *domain.Status { return &s }

// Mirrors the seed data the admin dashboard was built around.
func sampleSnapshot() []domain.Ticket {
	support := "Support"
	billing := "Billing"
	development := "Development"
	john := "John Doe"
	jane := "Jane Smith"
	return []domain.Ticket{
		{ID: "1", Title: "Issue with Login", Description: "Users are unable to log in to their accounts.", Status: domain.StatusOpen, AssignedGroup: &support},
		{ID: "2", Title: "Payment Failure", Description: "Payment processing is failing for some users.", Status: domain.StatusInProgress, AssignedGroup: &billing, AssignedHandler: &john},
		{ID: "3", Title: "Feature Request", Description: "Request to add new feature X.", Status: domain.StatusClosed, AssignedGroup: &development, AssignedHandler: &jane},
		{ID: "4", Title: "Slow dashboard", Description: "Admin dashboard takes 10s to load.", Status: domain.StatusOpen},
	}
}

func ids(tickets []domain.Ticket) []string {
	result := make([]string, len(tickets))
	for i := range tickets {
		result[i] = tickets[i].ID
	}
	return result
}

func assertIDs(t *testing.T, got []domain.Ticket, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("result = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("result = %v, want %v", gotIDs, want)
		}
	}
}

func TestApplySearchCriteria(t *testing.T) {
	snapshot := sampleSnapshot()
	cases := []struct {
		name   string
		search SearchParams
		want   []string
	}{
		{"empty text is identity", SearchParams{Criteria: CriteriaTitle, Text: "  "}, []string{"1", "2", "3", "4"}},
		{"title case-insensitive", SearchParams{Criteria: CriteriaTitle, Text: "PAYMENT"}, []string{"2"}},
		{"description substring", SearchParams{Criteria: CriteriaDescription, Text: "users"}, []string{"1", "2"}},
		{"id string form", SearchParams{Criteria: CriteriaID, Text: "3"}, []string{"3"}},
		{"no match", SearchParams{Criteria: CriteriaTitle, Text: "zzz"}, nil},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(snapshot, Params{Search: tt.search, View: ViewAll})
			assertIDs(t, got, tt.want...)
		})
	}
}

func TestApplyViews(t *testing.T) {
	snapshot := sampleSnapshot()

	active := Apply(snapshot, Params{View: ViewActive})
	assertIDs(t, active, "1", "2", "4")
	for _, ticket := range active {
		if ticket.Status == domain.StatusClosed {
			t.Errorf("active view leaked closed ticket %s", ticket.ID)
		}
	}

	open := Apply(snapshot, Params{View: ViewOpen})
	assertIDs(t, open, "1", "4")
	for _, ticket := range open {
		if ticket.AssignedHandler != nil {
			t.Errorf("open view leaked assigned ticket %s", ticket.ID)
		}
	}

	all := Apply(snapshot, Params{View: ViewAll})
	assertIDs(t, all, "1", "2", "3", "4")
}

func TestApplyStructuredFilters(t *testing.T) {
	snapshot := sampleSnapshot()
	cases := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"unset filters are no-ops", Filters{}, []string{"1", "2", "3", "4"}},
		{"status", Filters{Status: statusPtr(domain.StatusOpen)}, []string{"1", "4"}},
		{"group", Filters{Group: strPtr("Billing")}, []string{"2"}},
		{"handler", Filters{Handler: strPtr("Jane Smith")}, []string{"3"}},
		{"set filters are ANDed", Filters{Status: statusPtr(domain.StatusOpen), Group: strPtr("Support")}, []string{"1"}},
		{"group filter skips untriaged", Filters{Group: strPtr("Support")}, []string{"1"}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(snapshot, Params{View: ViewAll, Filters: tt.filters})
			assertIDs(t, got, tt.want...)
		})
	}
}

func TestApplyStagesComposeInOrder(t *testing.T) {
	snapshot := sampleSnapshot()

	// Search narrows first, then the view predicate applies.
	got := Apply(snapshot, Params{
		Search: SearchParams{Criteria: CriteriaDescription, Text: "users"},
		View:   ViewOpen,
	})
	assertIDs(t, got, "1")
}

func TestApplyIsDeterministic(t *testing.T) {
	snapshot := sampleSnapshot()
	params := Params{
		Search:  SearchParams{Criteria: CriteriaTitle, Text: "e"},
		View:    ViewAll,
		Filters: Filters{Status: statusPtr(domain.StatusOpen)},
	}

	first := Apply(snapshot, params)
	for i := 0; i < 10; i++ {
		again := Apply(snapshot, params)
		assertIDs(t, again, ids(first)...)
	}
}

func TestApplyDoesNotMutateSnapshot(t *testing.T) {
	snapshot := sampleSnapshot()
	before := ids(snapshot)

	_ = Apply(snapshot, Params{View: ViewActive})

	after := ids(snapshot)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("snapshot reordered: %v -> %v", before, after)
		}
	}
}
