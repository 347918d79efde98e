package domain

import "time"

// Comment is one immutable entry in a ticket's append-only thread.
type Comment struct {
	ID        string
	Author    string
	Timestamp time.Time
	Body      string
}
