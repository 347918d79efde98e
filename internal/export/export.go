package export

import (
	"encoding/csv"
	"io"

	"github.com/broncodesk/ticket-tracker/internal/domain"
)

// Unassigned is rendered in place of a missing handler.
const Unassigned = "Unassigned"

// Options control the projection shape.
type Options struct {
	// IncludeRequester appends the creator's display name and contact
	// columns; administrator exports set it.
	IncludeRequester bool
}

// Rows is a lazy, finite, restartable iterator over the flat projection
// of a filtered ticket set. It operates on the filtered set, never a
// windowed page.
type Rows struct {
	tickets []domain.Ticket
	opts    Options
	pos     int
	current []string
}

// NewRows builds an iterator positioned before the first row.
func NewRows(tickets []domain.Ticket, opts Options) *Rows {
	return &Rows{tickets: tickets, opts: opts}
}

// Header returns the fixed column order.
func (r *Rows) Header() []string {
	header := []string{"Ticket ID", "Title", "Description", "Status", "Assigned Group", "Assigned Handler"}
	if r.opts.IncludeRequester {
		header = append(header, "Created By", "Contact")
	}
	return header
}

// Next advances to the next row, returning false past the end.
func (r *Rows) Next() bool {
	if r.pos >= len(r.tickets) {
		r.current = nil
		return false
	}
	r.current = project(&r.tickets[r.pos], r.opts)
	r.pos++
	return true
}

// Row returns the current row. Valid only after a true Next.
func (r *Rows) Row() []string {
	return r.current
}

// Reset rewinds the iterator to before the first row.
func (r *Rows) Reset() {
	r.pos = 0
	r.current = nil
}

func project(ticket *domain.Ticket, opts Options) []string {
	group := ""
	if ticket.AssignedGroup != nil {
		group = *ticket.AssignedGroup
	}
	handler := Unassigned
	if ticket.AssignedHandler != nil {
		handler = *ticket.AssignedHandler
	}
	row := []string{
		ticket.ID,
		ticket.Title,
		ticket.Description,
		string(ticket.Status),
		group,
		handler,
	}
	if opts.IncludeRequester {
		row = append(row, ticket.CreatorName, ticket.Contact)
	}
	return row
}

// WriteCSV emits the header row followed by every data row. The
// iterator is rewound first, so a consumed Rows can be written whole.
func WriteCSV(w io.Writer, rows *Rows) error {
	rows.Reset()
	writer := csv.NewWriter(w)
	if err := writer.Write(rows.Header()); err != nil {
		return err
	}
	for rows.Next() {
		if err := writer.Write(rows.Row()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
