package query

import (
	"strings"

	"github.com/broncodesk/ticket-tracker/internal/domain"
)

// Criteria selects which field free-text search matches against.
type Criteria string

const (
	CriteriaID          Criteria = "id"
	CriteriaTitle       Criteria = "title"
	CriteriaDescription Criteria = "description"
)

// View is a named predicate over the visible ticket set.
type View string

const (
	// ViewActive selects tickets whose status is not Closed.
	ViewActive View = "activeTickets"
	// ViewOpen selects tickets with no assigned handler.
	ViewOpen View = "openTickets"
	// ViewAll applies no implicit predicate; structured filters apply.
	ViewAll View = "allTickets"
)

// SearchParams is the free-text search stage. Empty text is a no-op.
type SearchParams struct {
	Criteria Criteria
	Text     string
}

// Filters are the structured equality predicates, meaningful only under
// the allTickets view. An unset filter is a no-op; set filters are ANDed.
type Filters struct {
	Status  *domain.Status
	Group   *string
	Handler *string
}

// Params bundles the three filter stages.
type Params struct {
	Search  SearchParams
	View    View
	Filters Filters
}

// Equal reports whether two parameter sets select the same result set.
// Pagination uses it to decide when the current page must reset.
func (p Params) Equal(other Params) bool {
	return p.Search == other.Search &&
		p.view() == other.view() &&
		equalStatusPtr(p.Filters.Status, other.Filters.Status) &&
		equalStringPtr(p.Filters.Group, other.Filters.Group) &&
		equalStringPtr(p.Filters.Handler, other.Filters.Handler)
}

func (p Params) view() View {
	if p.View == "" {
		return ViewAll
	}
	return p.View
}

// Apply narrows a snapshot through the three stages in fixed order:
// free-text search, view selection, then structured filters. It is a
// pure function: identical inputs yield identical ordered output, and
// the snapshot's relative order is preserved.
func Apply(snapshot []domain.Ticket, params Params) []domain.Ticket {
	result := make([]domain.Ticket, 0, len(snapshot))
	for i := range snapshot {
		if matches(&snapshot[i], params) {
			result = append(result, snapshot[i])
		}
	}
	return result
}

func matches(ticket *domain.Ticket, params Params) bool {
	if !matchesSearch(ticket, params.Search) {
		return false
	}
	switch params.view() {
	case ViewActive:
		return ticket.Status != domain.StatusClosed
	case ViewOpen:
		return ticket.AssignedHandler == nil
	}
	return matchesFilters(ticket, params.Filters)
}

func matchesSearch(ticket *domain.Ticket, search SearchParams) bool {
	text := strings.ToLower(strings.TrimSpace(search.Text))
	if text == "" {
		return true
	}
	var field string
	switch search.Criteria {
	case CriteriaID:
		field = ticket.ID
	case CriteriaDescription:
		field = ticket.Description
	default:
		field = ticket.Title
	}
	return strings.Contains(strings.ToLower(field), text)
}

func matchesFilters(ticket *domain.Ticket, filters Filters) bool {
	if filters.Status != nil && ticket.Status != *filters.Status {
		return false
	}
	if filters.Group != nil {
		if ticket.AssignedGroup == nil || *ticket.AssignedGroup != *filters.Group {
			return false
		}
	}
	if filters.Handler != nil {
		if ticket.AssignedHandler == nil || *ticket.AssignedHandler != *filters.Handler {
			return false
		}
	}
	return true
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalStatusPtr(a, b *domain.Status) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
