package core

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string // ISO, or "" for a parse failure
	}{
		{"day-first wins over month-first", "01/02/2025", "2025-02-01"},
		{"iso", "2025-02-01", "2025-02-01"},
		{"dash day-first", "01-02-2025", "2025-02-01"},
		{"us fallback when day-first impossible", "12/25/2025", "2025-12-25"},
		{"two digit year", "01/02/25", "2025-02-01"},
		{"surrounding whitespace", "  20/12/2025  ", "2025-12-20"},
		{"unpadded day and month", "5/3/2025", "2025-03-05"},
		{"unpadded iso", "2025-3-5", "2025-03-05"},
		{"unpadded two digit year", "5/3/25", "2025-03-05"},
		{"garbage", "not-a-date", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if tt.expected == "" {
				if ok {
					t.Errorf("ParseDate(%q) = %v, want failure", tt.input, got)
				}
				return
			}
			if !ok {
				t.Fatalf("ParseDate(%q) failed, want %s", tt.input, tt.expected)
			}
			if got.Format("2006-01-02") != tt.expected {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.expected)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		months   int
		expected string
	}{
		{"plain month step", "2025-03-15", 1, "2025-04-15"},
		{"day clamp non-leap", "2025-01-31", 1, "2025-02-28"},
		{"day clamp leap", "2024-01-31", 1, "2024-02-29"},
		{"clamp past year boundary", "2025-01-31", 13, "2026-02-28"},
		{"december rollover", "2024-12-31", 2, "2025-02-28"},
		{"twelve months", "2025-06-10", 12, "2026-06-10"},
		{"many years", "2025-06-10", 36, "2028-06-10"},
		{"may 31 to june 30", "2025-05-31", 1, "2025-06-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(date(tt.start), tt.months)
			if got.Format("2006-01-02") != tt.expected {
				t.Errorf("AddMonths(%s, %d) = %s, want %s",
					tt.start, tt.months, got.Format("2006-01-02"), tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	today := date("2025-01-01")

	tests := []struct {
		name   string
		expiry string
		kind   StatusKind
		days   int
	}{
		{"well in the future", "2025-03-01", StatusActive, 59},
		{"exactly past the window", "2025-01-05", StatusActive, 4},
		{"window boundary inclusive", "2025-01-04", StatusExpiringSoon, 3},
		{"expires today", "2025-01-01", StatusExpiringSoon, 0},
		{"expired yesterday", "2024-12-31", StatusExpired, 1},
		{"long expired", "2024-11-01", StatusExpired, 61},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(date(tt.expiry), today)
			if got.Kind != tt.kind || got.Days != tt.days {
				t.Errorf("Classify(%s) = {%s %d}, want {%s %d}",
					tt.expiry, got.Kind, got.Days, tt.kind, tt.days)
			}
		})
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	// A late-evening "today" must not shrink the whole-day difference.
	today := time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)
	got := Classify(date("2025-01-04"), today)
	if got.Kind != StatusExpiringSoon || got.Days != 3 {
		t.Errorf("Classify = {%s %d}, want {%s 3}", got.Kind, got.Days, StatusExpiringSoon)
	}
}

func TestExpiry(t *testing.T) {
	rec := CustomerRecord{RegDate: "31/01/2025", Duration: 1}
	expiry, ok := Expiry(rec)
	if !ok {
		t.Fatal("Expiry failed for a valid date")
	}
	if expiry.Format("2006-01-02") != "2025-02-28" {
		t.Errorf("Expiry = %s, want 2025-02-28", expiry.Format("2006-01-02"))
	}

	if _, ok := Expiry(CustomerRecord{RegDate: "not-a-date", Duration: 1}); ok {
		t.Error("Expiry succeeded for an unparsable date")
	}
}
