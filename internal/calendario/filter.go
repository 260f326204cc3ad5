// Package calendario is the computation core: period filtering, per-day and
// per-month aggregation, and month-grid construction. Everything here is a
// pure function over normalized records; selection state lives with the
// caller.
package calendario

import (
	"sort"
	"time"

	"github.com/fante86/calenpag/internal/model"
)

// FilterMonth selects the records due in (year, month), preserving order.
func FilterMonth(records []*model.PaymentRecord, year, month int) []*model.PaymentRecord {
	out := make([]*model.PaymentRecord, 0)
	for _, r := range records {
		y, m, _ := r.DueDate.Date()
		if y == year && int(m) == month {
			out = append(out, r)
		}
	}
	return out
}

// AvailableYears lists the distinct due-date years, ascending.
func AvailableYears(records []*model.PaymentRecord) []int {
	seen := make(map[int]bool)
	for _, r := range records {
		seen[r.DueDate.Year()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// RecordsOn returns the ordered records due on the exact date. An empty
// result is a normal outcome, not an error.
func RecordsOn(records []*model.PaymentRecord, year int, month time.Month, day int) []*model.PaymentRecord {
	out := make([]*model.PaymentRecord, 0)
	for _, r := range records {
		if r.DueOn(year, month, day) {
			out = append(out, r)
		}
	}
	return out
}
