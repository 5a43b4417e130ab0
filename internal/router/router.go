package router

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/nordbook/eid-gateway/internal/config"
	"github.com/nordbook/eid-gateway/internal/handlers"
)

// SetupEIDRoutes mounts the single action endpoint the booking frontend
// polls during authentication.
func SetupEIDRoutes(app *echo.Echo, eidHandler *handlers.EIDHandler) {
	api := app.Group("/api/eid")

	api.POST("", eidHandler.Handle) // action: auth | status | cancel
}

// SetupCheckoutRoutes mounts the credit decision endpoint. It requires the
// identity token minted when authentication completed, so a credit check
// can never run for an unverified identity number.
func SetupCheckoutRoutes(app *echo.Echo, checkoutHandler *handlers.CheckoutHandler, cfg *config.Config) {
	api := app.Group("/api/checkout")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Token.Secret),
	}))

	api.POST("/decision", checkoutHandler.Decision)
}
