package components

import (
	"bookstand/internal/handler"
	"bookstand/internal/handler/api"
	"bookstand/internal/handler/middleware"
	"bookstand/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		api.NewAuthHandler,
		api.NewBookHandler,
		api.NewRentalHandler,
		api.NewPurchaseHandler,
		api.NewNotificationHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
