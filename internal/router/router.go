package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"worklink/internal/config"
	"worklink/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	orderHandler *handler.OrderHandler,
	bidHandler *handler.BidHandler,
	reportHandler *handler.ReportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Public catalog routes
	api.GET("/orders", orderHandler.ListOpen)
	api.GET("/orders/:id", orderHandler.GetOrder)
	api.GET("/orders/:id/bids", bidHandler.ListBids)
	api.GET("/executors", orderHandler.ListExecutors)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	// Profile routes
	secured.GET("/me/profile", profileHandler.GetProfile)
	secured.PUT("/me/profile", profileHandler.UpdateProfile)

	// Role-gated listings
	secured.GET("/me/orders", orderHandler.MyOrders)
	secured.GET("/me/assignments", orderHandler.MyAssignments)

	// Order workflow routes
	secured.POST("/orders", orderHandler.CreateOrder)
	secured.PUT("/orders/:id", orderHandler.UpdateOrder)
	secured.POST("/orders/:id/assign", orderHandler.AssignExecutor)
	secured.POST("/orders/:id/unassign", orderHandler.UnassignExecutor)
	secured.POST("/orders/:id/status", orderHandler.ChangeStatus)
	secured.POST("/orders/:id/bids", bidHandler.SubmitBid)

	// Reporting routes
	secured.GET("/reports/profiles.csv", reportHandler.ExportProfiles)
	secured.GET("/reports/orders.csv", reportHandler.ExportOrders)
	secured.GET("/reports/bids.csv", reportHandler.ExportBids)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
