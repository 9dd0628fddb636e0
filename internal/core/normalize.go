package core

import (
	"strconv"
	"strings"
	"time"
)

// Field is one of the four canonical record fields an import column can
// map onto.
type Field string

const (
	FieldName     Field = "name"
	FieldDevice   Field = "device"
	FieldDate     Field = "date"
	FieldDuration Field = "duration"
)

// fieldKeywords maps each target field to the header keywords that select
// it. The table is ordered: fields are resolved top to bottom, and a header
// that could match several fields goes to the first one scanned. Keywords
// cover both the Vietnamese headers the tool grew up with and common
// English ones.
var fieldKeywords = []struct {
	Field    Field
	Keywords []string
}{
	{FieldName, []string{"ten", "name", "khach", "user"}},
	{FieldDevice, []string{"thiet", "device", "may", "note", "ghi", "thông tin"}},
	{FieldDate, []string{"ngay", "date", "time", "dang ki", "reg"}},
	{FieldDuration, []string{"thang", "duration", "goi", "han"}},
}

// DefaultName is the placeholder used when an import has no name column.
const DefaultName = "Unknown"

// ColumnMapping records which raw column (by index) feeds each field.
// Missing entries mean the field falls back to its default.
type ColumnMapping map[Field]int

// MapColumns infers the column mapping for a set of raw headers. Headers
// are lower-cased and trimmed, then matched by substring against the
// keyword table. Per field, the first matching column in original order
// wins; a column claimed by one field is not reused by a later one.
func MapColumns(headers []string) ColumnMapping {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	mapping := make(ColumnMapping)
	claimed := make(map[int]bool)

	for _, entry := range fieldKeywords {
		for col, header := range lowered {
			if claimed[col] {
				continue
			}
			if containsAny(header, entry.Keywords) {
				mapping[entry.Field] = col
				claimed[col] = true
				break
			}
		}
	}
	return mapping
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// Normalize turns an arbitrary raw table into customer records, one per
// input row in input order. Missing columns and bad cells fall back to
// defaults; nothing here rejects a row. Dates are not validated at this
// stage — an unparsable date surfaces later as a date-error status.
func Normalize(raw RawTable, today time.Time) []CustomerRecord {
	mapping := MapColumns(raw.Headers)
	todayStr := today.Format(DisplayDateLayout)

	records := make([]CustomerRecord, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		rec := CustomerRecord{
			Name:       cellOr(row, mapping, FieldName, DefaultName),
			DeviceInfo: cellOr(row, mapping, FieldDevice, ""),
			RegDate:    cellOr(row, mapping, FieldDate, todayStr),
			Duration:   parseDuration(cell(row, mapping, FieldDuration)),
		}
		if strings.TrimSpace(rec.RegDate) == "" {
			rec.RegDate = todayStr
		}
		if strings.TrimSpace(rec.Name) == "" {
			rec.Name = DefaultName
		}
		records = append(records, rec)
	}
	return records
}

// cell returns the raw cell value for a mapped field, or "" when the field
// is unmapped or the row is short.
func cell(row []string, mapping ColumnMapping, field Field) string {
	col, ok := mapping[field]
	if !ok || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func cellOr(row []string, mapping ColumnMapping, field Field, fallback string) string {
	if _, ok := mapping[field]; !ok {
		return fallback
	}
	return cell(row, mapping, field)
}

// parseDuration coerces a duration cell to a month count. Non-numeric,
// missing or sub-1 values clamp to 1 — bad durations never fail an import.
func parseDuration(s string) int {
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Spreadsheet exports often render integers as "3.0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 1
		}
		n = int(f)
	}
	if n < 1 {
		return 1
	}
	return n
}
