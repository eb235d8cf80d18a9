package components

import (
	"pousada-pms/internal/handler"
	"pousada-pms/internal/handler/api"
	"pousada-pms/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewAvailabilityHandler,
		api.NewPricingHandler,
		api.NewReservationHandler,
		api.NewPolicyHandler,
		api.NewBlockHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
