package handlers

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/nordbook/eid-gateway/internal/service"
)

// CheckoutHandler answers the "may this booking proceed" question. The
// route is guarded by the identity token middleware, so the personal
// number always comes from verified claims, never from the request body.
type CheckoutHandler struct {
	Gate service.CheckoutGate
}

func NewCheckoutHandler(gate service.CheckoutGate) *CheckoutHandler {
	return &CheckoutHandler{Gate: gate}
}

func (h *CheckoutHandler) Decision(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing identity token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid identity token")
	}
	personalNumber, _ := claims["sub"].(string)
	if personalNumber == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid identity token")
	}

	decision, err := h.Gate.Evaluate(c.Request().Context(), personalNumber, c.RealIP())
	if err != nil {
		if errors.Is(err, service.ErrInvalidPersonalNumber) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Invalid personal number")
		}
		log.Error().Err(err).Msg("Checkout evaluation failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Checkout decision unavailable")
	}

	return c.JSON(http.StatusOK, decision)
}
