package dto

import (
	"encoding/json"
	"time"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
}

// OptionalString distinguishes an absent JSON field from an explicit
// null, so a patch can clear a field without inventing sentinel values.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON marks the field present and captures null as a nil value.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// PatchTicketRequest payload. Absent fields are untouched.
type PatchTicketRequest struct {
	Status  *string        `json:"status"`
	Group   OptionalString `json:"assigned_group"`
	Handler OptionalString `json:"assigned_handler"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// TicketSummary response.
type TicketSummary struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Contact         string    `json:"contact"`
	CreatedBy       string    `json:"created_by"`
	Status          string    `json:"status"`
	AssignedGroup   *string   `json:"assigned_group"`
	AssignedHandler *string   `json:"assigned_handler"`
	CreatedAt       time.Time `json:"created_at"`
	CommentCount    int       `json:"comment_count"`
}

// TicketDetail response, including the comment thread.
type TicketDetail struct {
	TicketSummary
	Comments []CommentResponse `json:"comments"`
}

// CommentResponse represents one thread entry.
type CommentResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body"`
}

// TicketPage is one pagination window over a filtered listing.
type TicketPage struct {
	Items      []TicketSummary `json:"items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	TotalCount int             `json:"total_count"`
}

// GroupResponse describes an assignable group.
type GroupResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Members        []string `json:"members"`
	DefaultHandler *string  `json:"default_handler"`
}
