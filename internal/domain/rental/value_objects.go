package rental

import (
	"time"

	"bookstand/internal/domain/book"
)

// EndDate computes the rental end date for a term starting at start.
// TwoWeeks adds 14 calendar days. Month terms use calendar month addition
// that preserves the day of month and clamps on overflow to the last day
// of the target month: 2024-01-31 + 1 month = 2024-02-29. This is a
// deliberate departure from time.AddDate, which would normalize the
// overflow into the following month.
func (t Term) EndDate(start time.Time) time.Time {
	switch t {
	case TermTwoWeeks:
		return start.AddDate(0, 0, 14)
	case TermOneMonth:
		return addMonthsClamped(start, 1)
	case TermThreeMonths:
		return addMonthsClamped(start, 3)
	default:
		return start
	}
}

// PriceFrom selects the tier price snapshot for this term.
func (t Term) PriceFrom(prices book.TierPrices) (book.Money, error) {
	switch t {
	case TermTwoWeeks:
		return prices.TwoWeeks, nil
	case TermOneMonth:
		return prices.OneMonth, nil
	case TermThreeMonths:
		return prices.ThreeMonths, nil
	default:
		return book.Money{}, ErrInvalidTerm
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	m := int(month) + months
	y := year + (m-1)/12
	m = (m-1)%12 + 1

	if last := daysIn(y, time.Month(m)); day > last {
		day = last
	}

	return time.Date(y, time.Month(m), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
