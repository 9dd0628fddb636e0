package core

import (
	"strings"
	"testing"
)

func TestProject(t *testing.T) {
	today := date("2025-01-01")
	records := []CustomerRecord{
		{ID: 1, Name: "A", DeviceInfo: "PC", RegDate: "31/12/2024", Duration: 1},
		{ID: 2, Name: "B", DeviceInfo: "PS5", RegDate: "01/11/2024", Duration: 1},
		{ID: 3, Name: "C", DeviceInfo: "", RegDate: "not-a-date", Duration: 3},
	}

	rows := Project(records, today)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	// 31/12/2024 + 1 month = 31/01/2025, 30 days out.
	if rows[0].ExpiryDate != "31/01/2025" {
		t.Errorf("row 0 expiry = %q", rows[0].ExpiryDate)
	}
	if rows[0].Status.Kind != StatusActive || rows[0].Status.Days != 30 {
		t.Errorf("row 0 status = %+v", rows[0].Status)
	}
	if rows[0].Plan != "1 month" {
		t.Errorf("row 0 plan = %q", rows[0].Plan)
	}

	// 01/11/2024 + 1 month = 01/12/2024, a month overdue.
	if rows[1].Status.Kind != StatusExpired || rows[1].Status.Days != 31 {
		t.Errorf("row 1 status = %+v", rows[1].Status)
	}

	// The bad-date record stays in the listing with the error sentinel —
	// unlike revenue aggregation, which drops it.
	if rows[2].ExpiryDate != "Error" {
		t.Errorf("row 2 expiry = %q, want Error", rows[2].ExpiryDate)
	}
	if rows[2].Status.Kind != StatusDateError {
		t.Errorf("row 2 status = %+v, want date error", rows[2].Status)
	}
	if rows[2].Plan != "3 months" {
		t.Errorf("row 2 plan = %q", rows[2].Plan)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{Status{StatusExpired, 5}, "EXPIRED (5 days)"},
		{Status{StatusExpiringSoon, 2}, "Expires in 2 days"},
		{Status{StatusActive, 40}, "40 days left"},
		{Status{StatusDateError, 0}, "Date error"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.expected {
			t.Errorf("Status%+v = %q, want %q", tt.status, got, tt.expected)
		}
	}
}

func TestFilterByName(t *testing.T) {
	records := []CustomerRecord{
		{Name: "Nguyễn Văn A"},
		{Name: "Trần Thị B"},
		{Name: "nguyen van c"},
	}

	tests := []struct {
		query    string
		expected int
	}{
		{"", 3},
		{"   ", 3},
		{"văn", 1},
		{"trần", 1},
		{"nobody", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := FilterByName(records, tt.query); len(got) != tt.expected {
				t.Errorf("FilterByName(%q) returned %d records, want %d", tt.query, len(got), tt.expected)
			}
		})
	}
}

func TestRenderTableIncludesAllRows(t *testing.T) {
	rows := Project([]CustomerRecord{
		{ID: 1, Name: "A", RegDate: "01/01/2025", Duration: 1},
		{ID: 2, Name: "B", RegDate: "garbage", Duration: 1},
	}, date("2025-01-01"))

	var buf strings.Builder
	RenderTable(&buf, rows)
	out := buf.String()

	for _, want := range []string{"A", "B", "Error"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
