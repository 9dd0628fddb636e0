package core

import "time"

// SampleRecords returns the demo customers a fresh guest store is seeded
// with, so guest mode has something to show.
func SampleRecords(today time.Time) []CustomerRecord {
	return []CustomerRecord{
		{Name: "Nguyễn Văn A", DeviceInfo: "PC Gaming 01", RegDate: today.Format(DisplayDateLayout), Duration: 1},
		{Name: "Trần Thị B", DeviceInfo: "PS5 Standard", RegDate: "01/01/2026", Duration: 3},
		{Name: "Lê Văn C", DeviceInfo: "Steam Deck OLED", RegDate: "20/12/2025", Duration: 6},
	}
}
