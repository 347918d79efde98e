package domain

// GroupChange sets the assigned group to Group, or clears it when Group
// is nil.
type GroupChange struct {
	Group *string
}

// HandlerChange sets the assigned handler to Handler, or clears it when
// Handler is nil.
type HandlerChange struct {
	Handler *string
}

// TicketPatch enumerates exactly the mutable fields of a ticket. A nil
// change means the field is untouched; unknown fields are impossible by
// construction. The whole patch is applied atomically or not at all.
type TicketPatch struct {
	Status  *Status
	Group   *GroupChange
	Handler *HandlerChange
}

// Empty reports whether the patch changes nothing.
func (p TicketPatch) Empty() bool {
	return p.Status == nil && p.Group == nil && p.Handler == nil
}
