package components

import (
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/infra/invoice"
	"pousada-pms/internal/infra/readstore"
	"pousada-pms/internal/infra/uow"
	"pousada-pms/internal/pkg/config"
	"pousada-pms/internal/usecase"
	"pousada-pms/internal/usecase/commands"
	"pousada-pms/internal/usecase/queries"
	"pousada-pms/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		NewPropertyReadStore,

		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),

		// Read stores
		fx.Annotate(
			readstore.NewPricingReadStore,
			fx.As(new(queries.PricingReadStore)),
		),
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityReadStore)),
		),
		fx.Annotate(
			readstore.NewCancellationReadStore,
			fx.As(new(queries.CancellationReadStore)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
		fx.Annotate(
			readstore.NewBlockReadStore,
			fx.As(new(queries.BlockReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(usecase.UserRepository)),
		),

		// External collaborators
		NewInvoiceService,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewPropertyReadStore(pool db.DBTX, cfg config.Config) *readstore.PropertyReadStore {
	return readstore.NewPropertyReadStore(pool, cfg.Pricing.SettingsCacheTTL)
}

func NewInvoiceService(cfg config.Config) commands.InvoiceService {
	return invoice.NewClient(cfg.Invoice.BaseURL, cfg.Invoice.Timeout)
}
