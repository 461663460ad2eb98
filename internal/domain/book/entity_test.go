//go:build unit

package book_test

import (
	"testing"

	"bookstand/internal/domain/book"
	"bookstand/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	prices := book.TierPrices{
		TwoWeeks:    book.MustMoney(500),
		OneMonth:    book.MustMoney(800),
		ThreeMonths: book.MustMoney(1800),
	}

	t.Run("basic success case", func(t *testing.T) {
		actual, err := book.NewBook(
			"The Go Programming Language", "Alan Donovan", "programming",
			2015, "A comprehensive guide.", "https://example.com/gopl.jpg",
			book.MustMoney(4500), prices, 3,
		)
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, int32(3), actual.TotalCopies())
		assert.Equal(t, int32(3), actual.AvailableCopies())
		assert.True(t, actual.IsAvailable())
		assert.True(t, actual.CanCheckout())
	})

	t.Run("trims title and author", func(t *testing.T) {
		actual, err := book.NewBook(
			"  Title  ", "  Author  ", " fiction ",
			2020, "", "", book.MustMoney(0), prices, 1,
		)
		require.NoError(t, err)

		assert.Equal(t, "Title", actual.Title())
		assert.Equal(t, "Author", actual.Author())
		assert.Equal(t, "fiction", actual.Category())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name        string
			title       string
			author      string
			year        int
			totalCopies int32
			errIs       error
		}{
			{name: "empty title", title: "", author: "Author", year: 2020, totalCopies: 1, errIs: book.ErrEmptyTitle},
			{name: "whitespace only title", title: "   ", author: "Author", year: 2020, totalCopies: 1, errIs: book.ErrEmptyTitle},
			{name: "empty author", title: "Title", author: "", year: 2020, totalCopies: 1, errIs: book.ErrEmptyAuthor},
			{name: "negative year", title: "Title", author: "Author", year: -1, totalCopies: 1, errIs: book.ErrInvalidYear},
			{name: "zero copies", title: "Title", author: "Author", year: 2020, totalCopies: 0, errIs: book.ErrInvalidCopyCount},
			{name: "negative copies", title: "Title", author: "Author", year: 2020, totalCopies: -2, errIs: book.ErrInvalidCopyCount},
			{name: "single copy is valid", title: "Title", author: "Author", year: 2020, totalCopies: 1},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				actual, err := book.NewBook(
					c.title, c.author, "", c.year, "", "",
					book.MustMoney(0), prices, c.totalCopies,
				)

				if c.errIs == nil {
					require.NoError(t, err)
					require.NotNil(t, actual)
				} else {
					require.Nil(t, actual)
					require.ErrorIs(t, err, c.errIs)
				}
			})
		}
	})
}

func TestReconstructBook(t *testing.T) {
	t.Run("copy count invariant", func(t *testing.T) {
		cases := []struct {
			name      string
			total     int32
			available int32
			errIs     error
		}{
			{name: "all copies available", total: 3, available: 3},
			{name: "no copies available", total: 3, available: 0},
			{name: "negative available", total: 3, available: -1, errIs: book.ErrCopyCountInvariant},
			{name: "available exceeds total", total: 3, available: 4, errIs: book.ErrCopyCountInvariant},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				actual, err := builder.NewBookBuilder().
					WithTotalCopies(c.total).
					WithAvailableCopies(c.available).
					BuildDomain()

				if c.errIs == nil {
					require.NoError(t, err)
					require.NotNil(t, actual)
				} else {
					require.Nil(t, actual)
					require.ErrorIs(t, err, c.errIs)
				}
			})
		}
	})
}

func TestCanCheckout(t *testing.T) {
	t.Run("exhausted stock blocks checkout", func(t *testing.T) {
		actual, err := builder.NewBookBuilder().WithAvailableCopies(0).BuildDomain()
		require.NoError(t, err)

		assert.False(t, actual.CanCheckout())
	})

	t.Run("delisted book blocks checkout even with stock", func(t *testing.T) {
		actual, err := builder.NewBookBuilder().AsUnavailable().BuildDomain()
		require.NoError(t, err)

		assert.False(t, actual.CanCheckout())
	})
}

func TestMoney(t *testing.T) {
	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := book.NewMoney(-1)
		require.ErrorIs(t, err, book.ErrNegativeMoney)
	})

	t.Run("zero is valid", func(t *testing.T) {
		m, err := book.NewMoney(0)
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("add", func(t *testing.T) {
		total := book.MustMoney(500).Add(book.MustMoney(1800))
		assert.Equal(t, int64(2300), total.Cents())
	})
}
