//go:build unit

package rental_test

import (
	"testing"
	"time"

	"bookstand/internal/domain/rental"
	"bookstand/internal/pkg/clock"
	"bookstand/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCreateRental(t *testing.T) {
	now := date(2024, time.June, 1)
	factory := rental.NewFactory(clock.NewMockClock(now))

	t.Run("snapshots the tier price at creation", func(t *testing.T) {
		b, err := builder.NewBookBuilder().BuildDomain()
		require.NoError(t, err)
		userID := uuid.New()

		r, err := factory.CreateRental(b, userID, rental.TermOneMonth)
		require.NoError(t, err)
		require.NotNil(t, r)

		assert.Equal(t, userID, r.UserID())
		assert.Equal(t, b.ID(), r.BookID())
		assert.Equal(t, rental.StatusActive, r.Status())
		assert.Equal(t, int64(800), r.PricePaid().Cents())
		assert.Equal(t, now, r.StartDate())
		assert.Equal(t, rental.TermOneMonth.EndDate(now), r.EndDate())
	})

	t.Run("rejects delisted book", func(t *testing.T) {
		b, err := builder.NewBookBuilder().AsUnavailable().BuildDomain()
		require.NoError(t, err)

		_, err = factory.CreateRental(b, uuid.New(), rental.TermTwoWeeks)
		require.ErrorIs(t, err, rental.ErrBookNotRentable)
	})

	t.Run("rejects invalid term", func(t *testing.T) {
		b, err := builder.NewBookBuilder().BuildDomain()
		require.NoError(t, err)

		_, err = factory.CreateRental(b, uuid.New(), rental.Term("forever"))
		require.ErrorIs(t, err, rental.ErrInvalidTerm)
	})
}
