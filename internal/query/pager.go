package query

import (
	"github.com/broncodesk/ticket-tracker/internal/domain"
	"github.com/broncodesk/ticket-tracker/pkg/apperrors"
)

// Pager windows a filtered result set deterministically.
type Pager struct {
	size int
}

// NewPager constructs a pager with a fixed page size k > 0.
func NewPager(size int) (Pager, error) {
	if size <= 0 {
		return Pager{}, apperrors.NewValidation("page size must be positive", map[string]any{"page_size": size})
	}
	return Pager{size: size}, nil
}

// Size returns the page size.
func (p Pager) Size() int {
	return p.size
}

// TotalPages returns ceil(count / k); zero when the set is empty.
func (p Pager) TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + p.size - 1) / p.size
}

// Window returns the contiguous slice [(page-1)k, page*k) clipped to
// the set's bounds. Pages beyond the last valid page yield an empty
// window, not an error.
func (p Pager) Window(items []domain.Ticket, page int) []domain.Ticket {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * p.size
	if start >= len(items) {
		return []domain.Ticket{}
	}
	end := start + p.size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Session tracks the caller's current page across queries. Changing the
// active view or any filter resets the page to 1, so a stale offset
// into a different result set is never shown.
type Session struct {
	pager  Pager
	params Params
	page   int
}

// NewSession starts a session on page 1.
func NewSession(pager Pager) *Session {
	return &Session{pager: pager, page: 1}
}

// SetParams records the active filter parameters, resetting the current
// page when they differ from the previous ones.
func (s *Session) SetParams(params Params) {
	if !s.params.Equal(params) {
		s.page = 1
	}
	s.params = params
}

// SetPage moves to the requested page; pages below 1 clamp to 1.
func (s *Session) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page
}

// Page returns the current page.
func (s *Session) Page() int {
	return s.page
}

// Params returns the active filter parameters.
func (s *Session) Params() Params {
	return s.params
}

// Window applies the session's parameters and page to a snapshot.
func (s *Session) Window(snapshot []domain.Ticket) []domain.Ticket {
	return s.pager.Window(Apply(snapshot, s.params), s.page)
}
