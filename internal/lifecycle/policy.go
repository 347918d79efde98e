package lifecycle

import (
	"fmt"

	"github.com/broncodesk/ticket-tracker/internal/domain"
)

// HandlerPolicy names the rule for picking a ticket's handler when its
// group changes without an explicit handler in the same patch.
type HandlerPolicy string

const (
	// PolicyNone clears the handler on group change.
	PolicyNone HandlerPolicy = "none"
	// PolicyGroupDefault assigns the new group's default handler, or
	// clears when the group has none.
	PolicyGroupDefault HandlerPolicy = "group-default"
	// PolicyFirstMember assigns the first member of the new group's
	// roster, or clears when the group is empty.
	PolicyFirstMember HandlerPolicy = "first-member"
)

// ParseHandlerPolicy validates a configured policy name.
func ParseHandlerPolicy(value string) (HandlerPolicy, error) {
	switch HandlerPolicy(value) {
	case PolicyNone, PolicyGroupDefault, PolicyFirstMember:
		return HandlerPolicy(value), nil
	case "":
		return PolicyGroupDefault, nil
	}
	return "", fmt.Errorf("unknown handler policy %q", value)
}

// defaultHandler picks the policy's handler for a group. The result is
// clamped to the group's membership so the handler/group invariant can
// never be broken by directory data.
func (p HandlerPolicy) defaultHandler(group *domain.Group) *string {
	if group == nil {
		return nil
	}
	var candidate *string
	switch p {
	case PolicyGroupDefault:
		candidate = group.DefaultHandler
	case PolicyFirstMember:
		candidate = group.FirstMember()
	}
	if candidate == nil || !group.HasMember(*candidate) {
		return nil
	}
	handler := *candidate
	return &handler
}
