package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/broncodesk/ticket-tracker/pkg/apperrors"
)

// Status enumerates ticket lifecycle states.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusClosed     Status = "CLOSED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID              string
	Title           string
	Description     string
	Contact         string
	CreatedBy       string
	CreatorName     string
	CreatedAt       time.Time
	Status          Status
	AssignedGroup   *string
	AssignedHandler *string
	Comments        []Comment
}

// Draft carries the caller-supplied fields for ticket creation.
type Draft struct {
	Title       string
	Description string
	Contact     string
}

// NewTicket validates a draft and builds a ticket with server-assigned
// defaults. No ticket is returned when any required field is blank.
func NewTicket(draft Draft, creator Caller, now time.Time) (*Ticket, error) {
	title := strings.TrimSpace(draft.Title)
	description := strings.TrimSpace(draft.Description)
	contact := strings.TrimSpace(draft.Contact)

	switch {
	case title == "":
		return nil, apperrors.NewFieldRequired("title")
	case description == "":
		return nil, apperrors.NewFieldRequired("description")
	case contact == "":
		return nil, apperrors.NewFieldRequired("contact")
	case creator.ID == "":
		return nil, apperrors.NewFieldRequired("createdBy")
	}

	return &Ticket{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Contact:     contact,
		CreatedBy:   creator.ID,
		CreatorName: creator.DisplayName(),
		CreatedAt:   now,
		Status:      StatusOpen,
		Comments:    []Comment{},
	}, nil
}

// Clone returns a deep copy so store snapshots never alias live state.
func (t *Ticket) Clone() *Ticket {
	if t == nil {
		return nil
	}
	dup := *t
	if t.AssignedGroup != nil {
		group := *t.AssignedGroup
		dup.AssignedGroup = &group
	}
	if t.AssignedHandler != nil {
		handler := *t.AssignedHandler
		dup.AssignedHandler = &handler
	}
	dup.Comments = make([]Comment, len(t.Comments))
	copy(dup.Comments, t.Comments)
	return &dup
}
