// Package dateutil provides the small amount of calendar math the planner
// needs: turning a month count into a human completion label.
package dateutil

import "time"

// MonthLabel returns the "January 2006" style label for now plus months.
// Negative month counts are treated as zero.
func MonthLabel(now time.Time, months int) string {
	if months < 0 {
		months = 0
	}
	return now.AddDate(0, months, 0).Format("January 2006")
}
