package core

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Project derives the display rows for a set of records: parse the
// registration date, advance it by the duration, classify against today.
// Pure and order-preserving; a record with a bad date still gets a row,
// carrying the "Error" sentinel and a date-error status.
func Project(records []CustomerRecord, today time.Time) []DisplayRow {
	rows := make([]DisplayRow, 0, len(records))
	for _, rec := range records {
		row := DisplayRow{
			ID:         rec.ID,
			Name:       rec.Name,
			DeviceInfo: rec.DeviceInfo,
			RegDate:    rec.RegDate,
			Plan:       formatPlan(rec.Duration),
		}
		if expiry, ok := Expiry(rec); ok {
			row.ExpiryDate = expiry.Format(DisplayDateLayout)
			row.Status = Classify(expiry, today)
		} else {
			row.ExpiryDate = "Error"
			row.Status = Status{Kind: StatusDateError}
		}
		rows = append(rows, row)
	}
	return rows
}

func formatPlan(months int) string {
	if months == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", months)
}

// FilterByName returns records whose name contains the query,
// case-insensitively. An empty query keeps everything.
func FilterByName(records []CustomerRecord, query string) []CustomerRecord {
	if strings.TrimSpace(query) == "" {
		return records
	}
	query = strings.ToLower(query)
	var result []CustomerRecord
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Name), query) {
			result = append(result, rec)
		}
	}
	return result
}

// RenderTable prints display rows as a formatted table. Status cells are
// colored: red for expired, yellow for expiring soon.
func RenderTable(w io.Writer, rows []DisplayRow) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Name", "Device / Note", "Registered", "Plan", "Expires", "Status"})

	for _, row := range rows {
		t.AppendRow(table.Row{
			row.ID,
			row.Name,
			row.DeviceInfo,
			row.RegDate,
			row.Plan,
			row.ExpiryDate,
			colorStatus(row.Status),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Render()
}

func colorStatus(s Status) string {
	switch s.Kind {
	case StatusExpired:
		return text.FgRed.Sprint(s.String())
	case StatusExpiringSoon:
		return text.FgYellow.Sprint(s.String())
	case StatusDateError:
		return text.FgHiBlack.Sprint(s.String())
	default:
		return text.FgGreen.Sprint(s.String())
	}
}

// RenderRevenue prints the monthly revenue report with an all-time total
// footer, amounts formatted in the given currency.
func RenderRevenue(w io.Writer, total int64, buckets []MonthlyRevenue, unitPrice int64, cur Currency) {
	fmt.Fprintf(w, "Unit price: %s / month\n\n", cur.Format(unitPrice))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Month", "Customers", "Revenue"})

	customerTotal := 0
	for _, b := range buckets {
		t.AppendRow(table.Row{b.Month.String(), b.CustomerCount, cur.Format(b.Revenue)})
		customerTotal += b.CustomerCount
	}

	t.AppendSeparator()
	t.AppendFooter(table.Row{
		text.Bold.Sprint("Total"),
		text.Bold.Sprint(customerTotal),
		text.Bold.Sprint(cur.Format(total)),
	})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}
