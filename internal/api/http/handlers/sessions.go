package handlers

import (
	"strconv"
	"sync"

	"github.com/broncodesk/ticket-tracker/internal/query"
)

// pageSessions tracks each caller's current page across requests, so a
// filter or view change lands the caller back on page 1 instead of a
// stale offset into a different result set.
type pageSessions struct {
	pager query.Pager

	mu       sync.Mutex
	byCaller map[string]*query.Session
}

func newPageSessions(pager query.Pager) *pageSessions {
	return &pageSessions{pager: pager, byCaller: map[string]*query.Session{}}
}

// page records the request's parameters and returns the page to serve.
// An explicit page query overrides the session's remembered page.
func (s *pageSessions) page(callerID string, params query.Params, pageQuery string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byCaller[callerID]
	if !ok {
		sess = query.NewSession(s.pager)
		s.byCaller[callerID] = sess
	}
	sess.SetParams(params)
	if pageQuery != "" {
		if page, err := strconv.Atoi(pageQuery); err == nil {
			sess.SetPage(page)
		}
	}
	return sess.Page()
}
