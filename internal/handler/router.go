package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pousada-pms/internal/domain/user"
	"pousada-pms/internal/handler/api"
	"pousada-pms/internal/handler/middleware"
	"pousada-pms/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	availabilityHandler *api.AvailabilityHandler,
	pricingHandler *api.PricingHandler,
	reservationHandler *api.ReservationHandler,
	policyHandler *api.PolicyHandler,
	blockHandler *api.BlockHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, availabilityHandler, pricingHandler, reservationHandler, policyHandler, blockHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	availabilityHandler *api.AvailabilityHandler,
	pricingHandler *api.PricingHandler,
	reservationHandler *api.ReservationHandler,
	policyHandler *api.PolicyHandler,
	blockHandler *api.BlockHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	operatorOnly := authMiddleware.RequireRoleAtLeast(user.RoleOperator)
	adminOnly := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		availability := apiGroup.Group("/availability")
		availability.Use(authMiddleware.RequireAuth())
		{
			addRoutes(availability, []route{
				{Method: http.MethodPost, Path: "/search", Handler: availabilityHandler.Search},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "/calculate", Handler: pricingHandler.Calculate},
				{Method: http.MethodPost, Path: "/calculate-detailed", Handler: pricingHandler.CalculateDetailed},
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.Create, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodGet, Path: "", Handler: reservationHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: reservationHandler.Update, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: reservationHandler.Confirm, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPost, Path: "/:id/check-in", Handler: reservationHandler.CheckIn, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPost, Path: "/:id/check-out", Handler: reservationHandler.CheckOut, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPost, Path: "/:id/cancel-with-policy", Handler: reservationHandler.Cancel, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodGet, Path: "/:id/preview-cancellation", Handler: reservationHandler.PreviewCancellation},
				{Method: http.MethodPost, Path: "/:id/no-show", Handler: reservationHandler.MarkNoShow, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPost, Path: "/:id/price-override", Handler: reservationHandler.OverridePrice, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodGet, Path: "/:id/consumptions", Handler: reservationHandler.ListConsumptions},
				{Method: http.MethodPost, Path: "/:id/consumptions", Handler: reservationHandler.RegisterConsumption, Mw: []gin.HandlerFunc{operatorOnly}},
			})
		}

		properties := apiGroup.Group("/properties")
		properties.Use(authMiddleware.RequireAuth())
		{
			addRoutes(properties, []route{
				{Method: http.MethodGet, Path: "/:id/cancellation-policy", Handler: policyHandler.GetActive},
				{Method: http.MethodGet, Path: "/:id/cancellation-policies", Handler: policyHandler.List},
				{Method: http.MethodPut, Path: "/:id/cancellation-policy", Handler: policyHandler.Upsert, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		blocks := apiGroup.Group("/blocks")
		blocks.Use(authMiddleware.RequireAuth())
		{
			addRoutes(blocks, []route{
				{Method: http.MethodPost, Path: "", Handler: blockHandler.Create, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: blockHandler.Delete, Mw: []gin.HandlerFunc{operatorOnly}},
			})
		}

		rooms := apiGroup.Group("/rooms")
		rooms.Use(authMiddleware.RequireAuth())
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "/:id/blocks", Handler: blockHandler.ListByRoom},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
