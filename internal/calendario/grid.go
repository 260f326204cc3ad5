package calendario

import (
	"time"

	"github.com/fante86/calenpag/internal/format"
	"github.com/fante86/calenpag/internal/model"
)

// MonthGrid builds the Monday-first week matrix for a month. Each week has
// exactly seven entries; 0 marks a padding cell outside the month.
func MonthGrid(year, month int) [][7]int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	offset := (int(first.Weekday()) + 6) % 7 // Monday = 0
	days := daysInMonth(year, month)

	weeks := make([][7]int, 0, 6)
	var week [7]int
	pos := offset
	for day := 1; day <= days; day++ {
		week[pos] = day
		pos++
		if pos == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			pos = 0
		}
	}
	if pos > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// BuildCalendar assembles the full month view: headers, the grid with each
// day cell paired to its aggregate and today flag, and month stats with
// BRL-formatted totals. monthRecords must already be filtered to the month.
func BuildCalendar(year, month int, monthRecords []*model.PaymentRecord, today time.Time) *model.Calendar {
	monthAgg, days := AggregateMonth(year, month, monthRecords)

	ty, tm, td := today.Date()
	weeks := make([]model.Week, 0, 6)
	for _, row := range MonthGrid(year, month) {
		var week model.Week
		for i, day := range row {
			cell := model.DayCell{Day: day}
			if day > 0 {
				cell.IsToday = ty == year && int(tm) == month && td == day
				agg := days[day]
				if agg == nil {
					agg = &model.DayAggregate{}
				}
				cell.PendingCount = agg.PendingCount
				cell.PendingTotal = format.Real(agg.PendingTotalCents)
				cell.PaidCount = agg.PaidCount
				cell.PaidTotal = format.Real(agg.PaidTotalCents)
			}
			week[i] = cell
		}
		weeks = append(weeks, week)
	}

	return &model.Calendar{
		Year:      year,
		Month:     month,
		MonthName: format.NomeMes(month),
		Weekdays:  format.DiasSemana(),
		Weeks:     weeks,
		Stats: model.MonthStats{
			PendingCount: monthAgg.PendingCount,
			PendingTotal: format.Real(monthAgg.PendingTotalCents),
			PaidCount:    monthAgg.PaidCount,
			PaidTotal:    format.Real(monthAgg.PaidTotalCents),
		},
	}
}
