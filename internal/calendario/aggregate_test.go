package calendario

import (
	"reflect"
	"testing"
	"time"

	"github.com/fante86/calenpag/internal/model"
)

func TestAggregateMonthDayAndMonthTotalsAgree(t *testing.T) {
	t.Parallel()

	records := []*model.PaymentRecord{
		pending("A", date(2024, time.March, 1), 12345),
		pending("B", date(2024, time.March, 15), 10000),
		pending("C", date(2024, time.March, 15), 5000),
		paid("D", date(2024, time.March, 15), 7777),
		paid("E", date(2024, time.March, 31), 100),
	}

	monthAgg, days := AggregateMonth(2024, 3, records)

	var pendingSum, paidSum int64
	var pendingCount, paidCount int
	for _, agg := range days {
		pendingSum += agg.PendingTotalCents
		paidSum += agg.PaidTotalCents
		pendingCount += agg.PendingCount
		paidCount += agg.PaidCount
	}
	if pendingSum != monthAgg.PendingTotalCents {
		t.Errorf("pending rollup %d != month total %d", pendingSum, monthAgg.PendingTotalCents)
	}
	if paidSum != monthAgg.PaidTotalCents {
		t.Errorf("paid rollup %d != month total %d", paidSum, monthAgg.PaidTotalCents)
	}
	if pendingCount != monthAgg.PendingCount || paidCount != monthAgg.PaidCount {
		t.Errorf("count rollup (%d,%d) != month (%d,%d)",
			pendingCount, paidCount, monthAgg.PendingCount, monthAgg.PaidCount)
	}

	day15 := days[15]
	if day15 == nil {
		t.Fatal("day 15 missing")
	}
	if day15.PendingTotalCents != 15000 || day15.PendingCount != 2 {
		t.Errorf("day 15 pending = %d cents / %d, want 15000 / 2", day15.PendingTotalCents, day15.PendingCount)
	}
	if day15.PaidTotalCents != 7777 || day15.PaidCount != 1 {
		t.Errorf("day 15 paid = %d cents / %d", day15.PaidTotalCents, day15.PaidCount)
	}
	if len(day15.Records) != 3 {
		t.Errorf("day 15 records = %d, want 3", len(day15.Records))
	}
	// Original file order within the day.
	if day15.Records[0].Supplier != "B" || day15.Records[2].Supplier != "D" {
		t.Errorf("day 15 record order: %s, %s, %s",
			day15.Records[0].Supplier, day15.Records[1].Supplier, day15.Records[2].Supplier)
	}
}

func TestFilterMonth(t *testing.T) {
	t.Parallel()

	records := []*model.PaymentRecord{
		pending("A", date(2024, time.February, 29), 1),
		pending("B", date(2024, time.March, 1), 1),
		pending("C", date(2024, time.March, 31), 1),
		pending("D", date(2024, time.April, 1), 1),
		pending("E", date(2023, time.March, 10), 1),
	}

	got := FilterMonth(records, 2024, 3)
	if len(got) != 2 {
		t.Fatalf("filtered %d records, want 2", len(got))
	}
	if got[0].Supplier != "B" || got[1].Supplier != "C" {
		t.Errorf("order not preserved: %s, %s", got[0].Supplier, got[1].Supplier)
	}
}

func TestAvailableYears(t *testing.T) {
	t.Parallel()

	records := []*model.PaymentRecord{
		pending("A", date(2025, time.January, 1), 1),
		pending("B", date(2023, time.June, 1), 1),
		pending("C", date(2025, time.December, 1), 1),
	}
	if got := AvailableYears(records); !reflect.DeepEqual(got, []int{2023, 2025}) {
		t.Errorf("AvailableYears = %v", got)
	}
	if got := AvailableYears(nil); len(got) != 0 {
		t.Errorf("AvailableYears(nil) = %v, want empty", got)
	}
}

func TestRecordsOnEmptyDay(t *testing.T) {
	t.Parallel()

	records := []*model.PaymentRecord{
		pending("A", date(2024, time.March, 15), 1),
	}
	got := RecordsOn(records, 2024, time.March, 16)
	if got == nil || len(got) != 0 {
		t.Errorf("RecordsOn empty day = %v, want non-nil empty slice", got)
	}
}

func TestPipelineDeterministic(t *testing.T) {
	t.Parallel()

	records := []*model.PaymentRecord{
		pending("A", date(2024, time.March, 1), 12345),
		paid("B", date(2024, time.March, 15), 7777),
		pending("C", date(2024, time.March, 15), 5000),
	}
	today := date(2024, time.March, 2)

	first := BuildCalendar(2024, 3, FilterMonth(records, 2024, 3), today)
	for i := 0; i < 5; i++ {
		again := BuildCalendar(2024, 3, FilterMonth(records, 2024, 3), today)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}
