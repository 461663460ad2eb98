//go:build unit

package rental_test

import (
	"testing"
	"time"

	"bookstand/internal/domain/book"
	"bookstand/internal/domain/rental"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestTermEndDate(t *testing.T) {
	cases := []struct {
		name     string
		term     rental.Term
		start    time.Time
		expected time.Time
	}{
		{
			name:     "two weeks adds 14 days",
			term:     rental.TermTwoWeeks,
			start:    date(2024, time.June, 1),
			expected: date(2024, time.June, 15),
		},
		{
			name:     "two weeks crosses month boundary",
			term:     rental.TermTwoWeeks,
			start:    date(2024, time.June, 25),
			expected: date(2024, time.July, 9),
		},
		{
			name:     "one month keeps day of month",
			term:     rental.TermOneMonth,
			start:    date(2024, time.June, 15),
			expected: date(2024, time.July, 15),
		},
		{
			name:     "one month clamps to leap February",
			term:     rental.TermOneMonth,
			start:    date(2024, time.January, 31),
			expected: date(2024, time.February, 29),
		},
		{
			name:     "one month clamps to non-leap February",
			term:     rental.TermOneMonth,
			start:    date(2023, time.January, 31),
			expected: date(2023, time.February, 28),
		},
		{
			name:     "one month clamps 31st to 30-day month",
			term:     rental.TermOneMonth,
			start:    date(2024, time.May, 31),
			expected: date(2024, time.June, 30),
		},
		{
			name:     "three months keeps day of month",
			term:     rental.TermThreeMonths,
			start:    date(2024, time.March, 10),
			expected: date(2024, time.June, 10),
		},
		{
			name:     "three months crosses year boundary",
			term:     rental.TermThreeMonths,
			start:    date(2024, time.November, 15),
			expected: date(2025, time.February, 15),
		},
		{
			name:     "three months clamps November 30th to February",
			term:     rental.TermThreeMonths,
			start:    date(2023, time.November, 30),
			expected: date(2024, time.February, 29),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, c.term.EndDate(c.start))
		})
	}
}

func TestTermEndDatePreservesClock(t *testing.T) {
	start := time.Date(2024, time.June, 1, 9, 30, 45, 123, time.UTC)
	end := rental.TermOneMonth.EndDate(start)

	assert.Equal(t, 9, end.Hour())
	assert.Equal(t, 30, end.Minute())
	assert.Equal(t, 45, end.Second())
}

func TestTermPriceFrom(t *testing.T) {
	prices := book.TierPrices{
		TwoWeeks:    book.MustMoney(500),
		OneMonth:    book.MustMoney(800),
		ThreeMonths: book.MustMoney(1800),
	}

	cases := []struct {
		term     rental.Term
		expected int64
	}{
		{term: rental.TermTwoWeeks, expected: 500},
		{term: rental.TermOneMonth, expected: 800},
		{term: rental.TermThreeMonths, expected: 1800},
	}

	for _, c := range cases {
		t.Run(c.term.String(), func(t *testing.T) {
			price, err := c.term.PriceFrom(prices)
			require.NoError(t, err)
			assert.Equal(t, c.expected, price.Cents())
		})
	}

	t.Run("invalid term", func(t *testing.T) {
		_, err := rental.Term("1week").PriceFrom(prices)
		require.ErrorIs(t, err, rental.ErrInvalidTerm)
	})
}

func TestNewTerm(t *testing.T) {
	for _, valid := range []string{"2weeks", "1month", "3months"} {
		term, err := rental.NewTerm(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, term.String())
	}

	_, err := rental.NewTerm("6months")
	require.ErrorIs(t, err, rental.ErrInvalidTerm)
}

func TestNewStatus(t *testing.T) {
	for _, valid := range []string{"active", "returned", "overdue"} {
		status, err := rental.NewStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	_, err := rental.NewStatus("lost")
	require.ErrorIs(t, err, rental.ErrInvalidStatus)
}

func TestStatusEffective(t *testing.T) {
	end := date(2024, time.June, 15)

	cases := []struct {
		name     string
		status   rental.Status
		now      time.Time
		expected rental.Status
	}{
		{
			name:     "active before end date stays active",
			status:   rental.StatusActive,
			now:      end.Add(-time.Hour),
			expected: rental.StatusActive,
		},
		{
			name:     "active exactly at end date stays active",
			status:   rental.StatusActive,
			now:      end,
			expected: rental.StatusActive,
		},
		{
			name:     "active past end date reads as overdue",
			status:   rental.StatusActive,
			now:      end.Add(time.Hour),
			expected: rental.StatusOverdue,
		},
		{
			name:     "returned is terminal even past end date",
			status:   rental.StatusReturned,
			now:      end.Add(24 * time.Hour),
			expected: rental.StatusReturned,
		},
		{
			name:     "persisted overdue stays overdue before end date",
			status:   rental.StatusOverdue,
			now:      end.Add(-24 * time.Hour),
			expected: rental.StatusOverdue,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, c.status.Effective(end, c.now))
		})
	}
}

func TestStatusIsReturnable(t *testing.T) {
	assert.True(t, rental.StatusActive.IsReturnable())
	assert.True(t, rental.StatusOverdue.IsReturnable())
	assert.False(t, rental.StatusReturned.IsReturnable())
}
