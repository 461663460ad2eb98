package book

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrEmptyAuthor        = errors.New("author cannot be empty")
	ErrInvalidYear        = errors.New("invalid publication year")
	ErrInvalidCopyCount   = errors.New("total copies must be positive")
	ErrCopyCountInvariant = errors.New("available copies must be between 0 and total copies")
)

// TierPrices holds the rental price for each term tier.
type TierPrices struct {
	TwoWeeks    Money
	OneMonth    Money
	ThreeMonths Money
}

type Book struct {
	id              uuid.UUID
	title           string
	author          string
	category        string
	yearPublished   int
	description     string
	coverImageURL   string
	purchasePrice   Money
	rentalPrices    TierPrices
	totalCopies     int32
	availableCopies int32
	isAvailable     bool
	createdAt       time.Time
	updatedAt       time.Time
}

func NewBook(
	title, author, category string,
	yearPublished int,
	description, coverImageURL string,
	purchasePrice Money,
	rentalPrices TierPrices,
	totalCopies int32,
) (*Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if title == "" {
		return nil, ErrEmptyTitle
	}
	if author == "" {
		return nil, ErrEmptyAuthor
	}
	if yearPublished < 0 {
		return nil, ErrInvalidYear
	}
	if totalCopies <= 0 {
		return nil, ErrInvalidCopyCount
	}

	return &Book{
		id:              uuid.New(),
		title:           title,
		author:          author,
		category:        strings.TrimSpace(category),
		yearPublished:   yearPublished,
		description:     description,
		coverImageURL:   coverImageURL,
		purchasePrice:   purchasePrice,
		rentalPrices:    rentalPrices,
		totalCopies:     totalCopies,
		availableCopies: totalCopies,
		isAvailable:     true,
	}, nil
}

func ReconstructBook(
	id uuid.UUID,
	title, author, category string,
	yearPublished int,
	description, coverImageURL string,
	purchasePrice Money,
	rentalPrices TierPrices,
	totalCopies, availableCopies int32,
	isAvailable bool,
	createdAt, updatedAt time.Time,
) (*Book, error) {
	if availableCopies < 0 || availableCopies > totalCopies {
		return nil, ErrCopyCountInvariant
	}

	return &Book{
		id:              id,
		title:           title,
		author:          author,
		category:        category,
		yearPublished:   yearPublished,
		description:     description,
		coverImageURL:   coverImageURL,
		purchasePrice:   purchasePrice,
		rentalPrices:    rentalPrices,
		totalCopies:     totalCopies,
		availableCopies: availableCopies,
		isAvailable:     isAvailable,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

// CanCheckout reports whether a purchase or rental may be attempted.
// The ledger still performs the authoritative atomic check.
func (b *Book) CanCheckout() bool {
	return b.isAvailable && b.availableCopies > 0
}

func (b *Book) ID() uuid.UUID            { return b.id }
func (b *Book) Title() string            { return b.title }
func (b *Book) Author() string           { return b.author }
func (b *Book) Category() string         { return b.category }
func (b *Book) YearPublished() int       { return b.yearPublished }
func (b *Book) Description() string      { return b.description }
func (b *Book) CoverImageURL() string    { return b.coverImageURL }
func (b *Book) PurchasePrice() Money     { return b.purchasePrice }
func (b *Book) RentalPrices() TierPrices { return b.rentalPrices }
func (b *Book) TotalCopies() int32       { return b.totalCopies }
func (b *Book) AvailableCopies() int32   { return b.availableCopies }
func (b *Book) IsAvailable() bool        { return b.isAvailable }
func (b *Book) CreatedAt() time.Time     { return b.createdAt }
func (b *Book) UpdatedAt() time.Time     { return b.updatedAt }
