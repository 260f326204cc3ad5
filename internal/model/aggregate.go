package model

// DayAggregate sums one calendar day of the month-filtered ledger, split by
// status. Records keeps the day's rows in original file order for the
// drilldown panel.
type DayAggregate struct {
	PendingCount      int              `json:"pendingCount"`
	PendingTotalCents int64            `json:"pendingTotalCents"`
	PaidCount         int              `json:"paidCount"`
	PaidTotalCents    int64            `json:"paidTotalCents"`
	Records           []*PaymentRecord `json:"records,omitempty"`
}

// MonthAggregate sums the whole month-filtered ledger.
type MonthAggregate struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	PendingCount      int   `json:"pendingCount"`
	PendingTotalCents int64 `json:"pendingTotalCents"`
	PaidCount         int   `json:"paidCount"`
	PaidTotalCents    int64 `json:"paidTotalCents"`
}

// Add folds one record into the day aggregate.
func (a *DayAggregate) Add(r *PaymentRecord) {
	switch r.Status {
	case StatusPending:
		a.PendingCount++
		a.PendingTotalCents += r.AmountOpenCents
	case StatusPaid:
		a.PaidCount++
		a.PaidTotalCents += r.AmountPaidCents
	}
	a.Records = append(a.Records, r)
}

// Add folds one record into the month aggregate.
func (a *MonthAggregate) Add(r *PaymentRecord) {
	switch r.Status {
	case StatusPending:
		a.PendingCount++
		a.PendingTotalCents += r.AmountOpenCents
	case StatusPaid:
		a.PaidCount++
		a.PaidTotalCents += r.AmountPaidCents
	}
}
