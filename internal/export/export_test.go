package export

import (
	"strings"
	"testing"

	"github.com/broncodesk/ticket-tracker/internal/domain"
)

func sampleTickets() []domain.Ticket {
	billing := "Billing"
	john := "John Doe"
	return []domain.Ticket{
		{
			ID:          "1",
			Title:       "Issue with Login",
			Description: "Users are unable to log in.",
			Status:      domain.StatusOpen,
			CreatorName: "Pat Doe",
			Contact:     "user@example.com",
		},
		{
			ID:              "2",
			Title:           "Payment Failure",
			Description:     "Payment processing is failing.",
			Status:          domain.StatusInProgress,
			AssignedGroup:   &billing,
			AssignedHandler: &john,
			CreatorName:     "Sam Lee",
			Contact:         "sam@example.com",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf strings.Builder
	if err := WriteCSV(&buf, NewRows(sampleTickets(), Options{})); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 data rows", len(lines))
	}
	if lines[0] != "Ticket ID,Title,Description,Status,Assigned Group,Assigned Handler" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "1,Issue with Login,Users are unable to log in.,OPEN,,Unassigned" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "2,Payment Failure,Payment processing is failing.,IN_PROGRESS,Billing,John Doe" {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestAdminColumns(t *testing.T) {
	rows := NewRows(sampleTickets(), Options{IncludeRequester: true})

	header := rows.Header()
	want := []string{"Ticket ID", "Title", "Description", "Status", "Assigned Group", "Assigned Handler", "Created By", "Contact"}
	if len(header) != len(want) {
		t.Fatalf("header = %v", header)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("header = %v, want %v", header, want)
		}
	}

	if !rows.Next() {
		t.Fatal("expected first row")
	}
	row := rows.Row()
	if row[6] != "Pat Doe" || row[7] != "user@example.com" {
		t.Errorf("requester columns = %q, %q", row[6], row[7])
	}
}

func TestRowsAreRestartable(t *testing.T) {
	rows := NewRows(sampleTickets(), Options{})

	count := 0
	for rows.Next() {
		count++
	}
	if count != 2 {
		t.Fatalf("first pass rows = %d, want 2", count)
	}
	if rows.Next() {
		t.Fatal("iterator advanced past the end")
	}

	rows.Reset()
	if !rows.Next() {
		t.Fatal("Reset did not rewind")
	}
	if rows.Row()[0] != "1" {
		t.Errorf("first row after reset = %q", rows.Row()[0])
	}
}

func TestCSVEscapesCommas(t *testing.T) {
	tickets := []domain.Ticket{{
		ID:          "1",
		Title:       "Broken, badly",
		Description: `He said "help"`,
		Status:      domain.StatusOpen,
	}}

	var buf strings.Builder
	if err := WriteCSV(&buf, NewRows(tickets, Options{})); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.Contains(buf.String(), `"Broken, badly"`) {
		t.Errorf("comma field not quoted: %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"He said ""help"""`) {
		t.Errorf("quotes not escaped: %q", buf.String())
	}
}
