package core

import "sort"

// Aggregate groups records by the calendar month of their registration
// date and sums duration × unitPrice per month. Records whose date does
// not parse are excluded entirely — they are neither counted nor bucketed,
// unlike the table view which still shows them with a date-error status.
// Buckets come back sorted ascending by (year, month).
func Aggregate(records []CustomerRecord, unitPrice int64) (total int64, buckets []MonthlyRevenue) {
	byMonth := make(map[YearMonth]*MonthlyRevenue)

	for _, rec := range records {
		reg, ok := ParseDate(rec.RegDate)
		if !ok {
			continue
		}
		key := YearMonth{Year: reg.Year(), Month: reg.Month()}
		bucket := byMonth[key]
		if bucket == nil {
			bucket = &MonthlyRevenue{Month: key}
			byMonth[key] = bucket
		}
		bucket.CustomerCount++
		bucket.Revenue += int64(rec.Duration) * unitPrice
	}

	buckets = make([]MonthlyRevenue, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, *b)
		total += b.Revenue
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month.Before(buckets[j].Month)
	})
	return total, buckets
}
