package core

import (
	"fmt"
	"time"
)

// CustomerRecord is one rental/subscription entry. RegDate is kept as the
// raw text the user entered; it is parsed on every read so a bad date shows
// up as a status instead of blocking the record.
type CustomerRecord struct {
	ID         uint   `json:"id,omitempty"`
	Owner      string `json:"-"` // empty in guest mode
	Name       string `json:"name"`
	DeviceInfo string `json:"device_info"`
	RegDate    string `json:"reg_date"`
	Duration   int    `json:"duration"` // months, >= 1
}

type StatusKind string

const (
	StatusExpired      StatusKind = "expired"
	StatusExpiringSoon StatusKind = "expiring"
	StatusActive       StatusKind = "active"
	StatusDateError    StatusKind = "date-error"
)

// Status is the derived expiry classification of a record.
// Days is days remaining (Active/ExpiringSoon) or days overdue (Expired).
type Status struct {
	Kind StatusKind
	Days int
}

func (s Status) String() string {
	switch s.Kind {
	case StatusExpired:
		return fmt.Sprintf("EXPIRED (%d days)", s.Days)
	case StatusExpiringSoon:
		return fmt.Sprintf("Expires in %d days", s.Days)
	case StatusActive:
		return fmt.Sprintf("%d days left", s.Days)
	default:
		return "Date error"
	}
}

// DisplayRow is one fully derived table row, recomputed on every listing.
type DisplayRow struct {
	ID         uint
	Name       string
	DeviceInfo string
	RegDate    string
	Plan       string // "3 months"
	ExpiryDate string // formatted DD/MM/YYYY, or "Error"
	Status     Status
}

// YearMonth is the grouping key for revenue buckets.
type YearMonth struct {
	Year  int
	Month time.Month
}

func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// MonthlyRevenue is one calendar-month aggregation bucket.
type MonthlyRevenue struct {
	Month         YearMonth
	CustomerCount int
	Revenue       int64
}
