package commands

import (
	"context"

	"bookstand/internal/domain/book"
	"bookstand/internal/infra"
	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/errs"
	"bookstand/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBookParams struct {
	Title                   string
	Author                  string
	Category                string
	YearPublished           int
	Description             string
	CoverImageURL           string
	PurchasePriceCents      int64
	RentalPrice2WeeksCents  int64
	RentalPrice1MonthCents  int64
	RentalPrice3MonthsCents int64
	TotalCopies             int32
}

// CatalogCommands is the admin-only write side of the book catalog.
type CatalogCommands interface {
	CreateBook(ctx context.Context, params CreateBookParams) (*queries.BookView, error)
	UpdateBook(ctx context.Context, id uuid.UUID, params UpdateBookParams) (*queries.BookView, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
}

type catalogCommandsImpl struct {
	bookRepo    BookRepository
	bookQueries queries.BookQueries
	db          db.DBTX
}

func NewCatalogCommands(bookRepo BookRepository, bookQueries queries.BookQueries, dbtx db.DBTX) CatalogCommands {
	return &catalogCommandsImpl{
		bookRepo:    bookRepo,
		bookQueries: bookQueries,
		db:          dbtx,
	}
}

func (u *catalogCommandsImpl) CreateBook(ctx context.Context, params CreateBookParams) (*queries.BookView, error) {
	purchasePrice, err := book.NewMoney(params.PurchasePriceCents)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	prices, err := tierPricesFromCents(params.RentalPrice2WeeksCents, params.RentalPrice1MonthCents, params.RentalPrice3MonthsCents)
	if err != nil {
		return nil, err
	}

	bookEntity, err := book.NewBook(
		params.Title,
		params.Author,
		params.Category,
		params.YearPublished,
		params.Description,
		params.CoverImageURL,
		purchasePrice,
		prices,
		params.TotalCopies,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	id, err := u.bookRepo.Create(ctx, u.db, bookEntity)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := u.bookQueries.Get(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *catalogCommandsImpl) UpdateBook(ctx context.Context, id uuid.UUID, params UpdateBookParams) (*queries.BookView, error) {
	if err := validateUpdateParams(params); err != nil {
		return nil, err
	}

	if err := u.bookRepo.Update(ctx, u.db, id, params); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := u.bookQueries.Get(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// DeleteBook removes the catalog entry. Rental and purchase history
// survives with a detached book reference.
func (u *catalogCommandsImpl) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := u.bookRepo.Delete(ctx, u.db, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func validateUpdateParams(params UpdateBookParams) error {
	for _, cents := range []*int64{
		params.PurchasePriceCents,
		params.RentalPrice2WeeksCents,
		params.RentalPrice1MonthCents,
		params.RentalPrice3MonthsCents,
	} {
		if cents != nil && *cents < 0 {
			return errs.Mark(book.ErrNegativeMoney, ErrDomainValidation)
		}
	}
	if params.TotalCopies != nil && *params.TotalCopies <= 0 {
		return errs.Mark(book.ErrInvalidCopyCount, ErrDomainValidation)
	}
	if params.YearPublished != nil && *params.YearPublished < 0 {
		return errs.Mark(book.ErrInvalidYear, ErrDomainValidation)
	}
	return nil
}

func tierPricesFromCents(twoWeeks, oneMonth, threeMonths int64) (book.TierPrices, error) {
	var prices book.TierPrices
	var err error

	if prices.TwoWeeks, err = book.NewMoney(twoWeeks); err != nil {
		return book.TierPrices{}, errs.Mark(err, ErrDomainValidation)
	}
	if prices.OneMonth, err = book.NewMoney(oneMonth); err != nil {
		return book.TierPrices{}, errs.Mark(err, ErrDomainValidation)
	}
	if prices.ThreeMonths, err = book.NewMoney(threeMonths); err != nil {
		return book.TierPrices{}, errs.Mark(err, ErrDomainValidation)
	}
	return prices, nil
}
