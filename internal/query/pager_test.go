package query

import (
	"fmt"
	"testing"

	"github.com/broncodesk/ticket-tracker/internal/domain"
)

func makeTickets(n int) []domain.Ticket {
	tickets := make([]domain.Ticket, n)
	for i := range tickets {
		tickets[i] = domain.Ticket{ID: fmt.Sprintf("t-%02d", i+1), Status: domain.StatusOpen}
	}
	return tickets
}

func TestNewPagerRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := NewPager(size); err == nil {
			t.Errorf("NewPager(%d) accepted", size)
		}
	}
}

func TestTotalPages(t *testing.T) {
	pager, err := NewPager(5)
	if err != nil {
		t.Fatalf("NewPager: %v", err)
	}

	cases := []struct {
		count int
		want  int
	}{
		{0, 0},
		{1, 1},
		{5, 1},
		{6, 2},
		{11, 3},
	}
	for _, tt := range cases {
		if got := pager.TotalPages(tt.count); got != tt.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestWindow(t *testing.T) {
	pager, _ := NewPager(5)
	tickets := makeTickets(11)

	first := pager.Window(tickets, 1)
	assertIDs(t, first, "t-01", "t-02", "t-03", "t-04", "t-05")

	last := pager.Window(tickets, 3)
	assertIDs(t, last, "t-11")

	beyond := pager.Window(tickets, 4)
	if len(beyond) != 0 {
		t.Errorf("page beyond bounds = %v, want empty", ids(beyond))
	}

	if got := pager.Window(nil, 1); len(got) != 0 {
		t.Errorf("empty set window = %v, want empty", ids(got))
	}
}

func TestSessionResetsPageOnParamChange(t *testing.T) {
	pager, _ := NewPager(5)
	session := NewSession(pager)

	params := Params{View: ViewAll}
	session.SetParams(params)
	session.SetPage(3)
	if session.Page() != 3 {
		t.Fatalf("page = %d, want 3", session.Page())
	}

	// Same params: the page survives a re-query.
	session.SetParams(Params{View: ViewAll})
	if session.Page() != 3 {
		t.Errorf("page reset on identical params: %d", session.Page())
	}

	// A view change resets to 1.
	session.SetParams(Params{View: ViewOpen})
	if session.Page() != 1 {
		t.Errorf("page = %d after view change, want 1", session.Page())
	}

	// So does any structured filter change.
	session.SetPage(2)
	session.SetParams(Params{View: ViewOpen, Filters: Filters{Group: strPtr("Support")}})
	if session.Page() != 1 {
		t.Errorf("page = %d after filter change, want 1", session.Page())
	}

	// And any search change.
	session.SetPage(2)
	session.SetParams(Params{View: ViewOpen, Filters: Filters{Group: strPtr("Support")}, Search: SearchParams{Criteria: CriteriaTitle, Text: "x"}})
	if session.Page() != 1 {
		t.Errorf("page = %d after search change, want 1", session.Page())
	}
}

func TestSessionWindow(t *testing.T) {
	pager, _ := NewPager(5)
	session := NewSession(pager)
	tickets := makeTickets(11)

	session.SetParams(Params{View: ViewAll})
	session.SetPage(3)
	assertIDs(t, session.Window(tickets), "t-11")
}
