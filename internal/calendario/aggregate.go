package calendario

import "github.com/fante86/calenpag/internal/model"

// AggregateMonth computes month-level totals and per-day buckets for the
// month-filtered record set. The day map only holds days that have records;
// absent days read as the zero aggregate. Month totals and the sum of day
// totals are the same integer fold over the same set, so they agree exactly.
func AggregateMonth(year, month int, monthRecords []*model.PaymentRecord) (*model.MonthAggregate, map[int]*model.DayAggregate) {
	monthAgg := &model.MonthAggregate{Year: year, Month: month}
	days := make(map[int]*model.DayAggregate)

	for _, r := range monthRecords {
		monthAgg.Add(r)

		day := r.DueDate.Day()
		agg, ok := days[day]
		if !ok {
			agg = &model.DayAggregate{}
			days[day] = agg
		}
		agg.Add(r)
	}

	return monthAgg, days
}
