package domain

// Group is a team/queue that tickets are triaged into.
type Group struct {
	ID             string
	Name           string
	Members        []string
	DefaultHandler *string
}

// HasMember reports whether the handler belongs to the group.
func (g *Group) HasMember(handlerID string) bool {
	if g == nil {
		return false
	}
	for _, member := range g.Members {
		if member == handlerID {
			return true
		}
	}
	return false
}

// FirstMember returns the first member in roster order, or nil for an
// empty group.
func (g *Group) FirstMember() *string {
	if g == nil || len(g.Members) == 0 {
		return nil
	}
	first := g.Members[0]
	return &first
}
