package pricing

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// RentalDays counts billable days between pickup and dropoff. Any started
// 24h block counts as a full day; exact multiples do not round up. A
// degenerate range still bills one day.
func RentalDays(pickup, dropoff time.Time) int {
	d := dropoff.Sub(pickup)
	if d <= 0 {
		return 1
	}
	days := int(d / day)
	if d%day > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// CombineDateTime glues the search widget's split date (YYYY-MM-DD) and
// clock (HH:MM) fields into a single UTC instant. An empty clock means
// midnight.
func CombineDateTime(date, clock string) (time.Time, error) {
	if clock == "" {
		clock = "00:00"
	}
	t, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}
