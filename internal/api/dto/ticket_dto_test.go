package dto

import (
	"encoding/json"
	"testing"
)

func TestPatchTicketRequestFieldPresence(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantSet   bool
		wantValue *string
	}{
		{name: "absent field is untouched", payload: `{"status":"CLOSED"}`, wantSet: false},
		{name: "null clears the field", payload: `{"assigned_handler":null}`, wantSet: true, wantValue: nil},
		{name: "value sets the field", payload: `{"assigned_handler":"John Doe"}`, wantSet: true, wantValue: ptr("John Doe")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req PatchTicketRequest
			if err := json.Unmarshal([]byte(tt.payload), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if req.Handler.Set != tt.wantSet {
				t.Fatalf("Set = %v, want %v", req.Handler.Set, tt.wantSet)
			}
			if (req.Handler.Value == nil) != (tt.wantValue == nil) {
				t.Fatalf("Value = %v, want %v", req.Handler.Value, tt.wantValue)
			}
			if tt.wantValue != nil && *req.Handler.Value != *tt.wantValue {
				t.Fatalf("Value = %q, want %q", *req.Handler.Value, *tt.wantValue)
			}
		})
	}
}

func ptr(v string) *string { return &v }
