package components

import (
	"bookstand/internal/infra/db"
	"bookstand/internal/infra/readstore"
	"bookstand/internal/infra/repository"
	"bookstand/internal/usecase/commands"
	"bookstand/internal/usecase/queries"
	"bookstand/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		shared.NewTxRunner,
		// Write side
		fx.Annotate(
			repository.NewBookRepository,
			fx.As(new(commands.BookRepository)),
		),
		fx.Annotate(
			repository.NewRentalRepository,
			fx.As(new(commands.RentalRepository)),
		),
		fx.Annotate(
			repository.NewPurchaseRepository,
			fx.As(new(commands.PurchaseRepository)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		// Read side
		fx.Annotate(
			readstore.NewBookReadStore,
			fx.As(new(queries.BookReadStore)),
		),
		fx.Annotate(
			readstore.NewRentalReadStore,
			fx.As(new(queries.RentalReadStore)),
		),
		fx.Annotate(
			readstore.NewPurchaseReadStore,
			fx.As(new(queries.PurchaseReadStore)),
		),
		fx.Annotate(
			readstore.NewNotificationReadStore,
			fx.As(new(queries.NotificationReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
