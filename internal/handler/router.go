package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"groupbook/internal/handler/api"
	"groupbook/internal/handler/middleware"
	"groupbook/internal/pkg/config"
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
	groupHandler *api.GroupReservationHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, groupHandler, bookingHandler, authMiddleware)
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
	groupHandler *api.GroupReservationHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		// The marketplace browse is the only anonymous surface.
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/marketplace/group-reservations", Handler: groupHandler.BrowseMarketplace},
		})

		groups := apiGroup.Group("/group-reservations")
		groups.Use(authMiddleware.RequireAuth())
		{
			addRoutes(groups, []route{
				{Method: http.MethodPost, Path: "", Handler: groupHandler.CreateGroupReservation,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(middleware.RoleStaff)}},
				{Method: http.MethodGet, Path: "/:id", Handler: groupHandler.GetGroupReservation},
				{Method: http.MethodGet, Path: "/code/:code", Handler: groupHandler.GetGroupReservationByCode},
				{Method: http.MethodPost, Path: "/:id/join", Handler: groupHandler.JoinGroupReservation},
				{Method: http.MethodPost, Path: "/:id/leave", Handler: groupHandler.LeaveGroupReservation},
				{Method: http.MethodPost, Path: "/:id/status", Handler: groupHandler.TransitionStatus,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(middleware.RoleStaff)}},
			})
		}

		offerings := apiGroup.Group("/offerings")
		offerings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(offerings, []route{
				{Method: http.MethodGet, Path: "/:id/group-reservations", Handler: groupHandler.ListByOffering},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.GetUserBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPost, Path: "/:id/payment", Handler: bookingHandler.MarkPaid},
				{Method: http.MethodPost, Path: "/:id/refund", Handler: bookingHandler.MarkRefunded},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
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
