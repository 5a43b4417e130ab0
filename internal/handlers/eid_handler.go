package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/nordbook/eid-gateway/internal/models"
	"github.com/nordbook/eid-gateway/internal/personalnumber"
	"github.com/nordbook/eid-gateway/internal/service"
)

// EIDHandler serves the single action endpoint the booking frontend drives
// the authentication flow through.
type EIDHandler struct {
	Provider service.IdentityProvider
	Gate     service.CheckoutGate
}

func NewEIDHandler(provider service.IdentityProvider, gate service.CheckoutGate) *EIDHandler {
	return &EIDHandler{Provider: provider, Gate: gate}
}

// Handle dispatches on the action field: auth starts a session, status
// polls one, cancel drops one.
func (h *EIDHandler) Handle(c echo.Context) error {
	req := new(models.EIDRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	switch req.Action {
	case models.ActionAuth:
		return h.initiate(c, req)
	case models.ActionStatus:
		return h.collect(c, req)
	case models.ActionCancel:
		return h.cancel(c, req)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown action")
	}
}

func (h *EIDHandler) initiate(c echo.Context, req *models.EIDRequest) error {
	// Empty personal number is the same-device flow; a present one must be
	// well-formed before it goes anywhere near the provider.
	if req.PersonalNumber != "" && !personalnumber.Valid(req.PersonalNumber) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid personal number")
	}
	pn := ""
	if req.PersonalNumber != "" {
		pn = personalnumber.Normalize(req.PersonalNumber)
	}

	clientIP := req.EndUserIP
	if clientIP == "" {
		clientIP = c.RealIP()
	}

	session, err := h.Provider.Initiate(c.Request().Context(), pn, clientIP)
	if err != nil {
		log.Error().Err(err).Msg("Failed to start authentication session")
		return echo.NewHTTPError(http.StatusBadGateway, "Authentication could not be started")
	}

	return c.JSON(http.StatusOK, models.EIDResponse{
		Success:        true,
		OrderRef:       session.OrderRef,
		AutoStartToken: session.AutoStartToken,
		QrStartToken:   session.QrStartToken,
		QrStartSecret:  session.QrStartSecret,
		BankIDURL:      "bankid:///?autostarttoken=" + session.AutoStartToken + "&redirect=null",
		Status:         session.Status,
	})
}

func (h *EIDHandler) collect(c echo.Context, req *models.EIDRequest) error {
	if req.OrderRef == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "orderRef is required")
	}

	session, err := h.Provider.Collect(c.Request().Context(), req.OrderRef)
	if err != nil {
		log.Error().Err(err).Str("orderRef", req.OrderRef).Msg("Status poll failed")
		return echo.NewHTTPError(http.StatusBadGateway, "Authentication status is unavailable")
	}

	resp := models.EIDResponse{
		Success:  true,
		OrderRef: session.OrderRef,
		Status:   session.Status,
		HintCode: session.HintCode,
	}

	if session.Status == models.StatusComplete {
		resp.Completion = session.Completion
		token, err := h.Gate.IssueIdentityToken(session.Completion)
		if err != nil {
			log.Error().Err(err).Str("orderRef", req.OrderRef).Msg("Failed to issue identity token")
			return echo.NewHTTPError(http.StatusInternalServerError, "Authentication completed but could not be finalized")
		}
		resp.Token = token
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *EIDHandler) cancel(c echo.Context, req *models.EIDRequest) error {
	if req.OrderRef == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "orderRef is required")
	}

	// Best-effort by contract: the local session is cancelled regardless
	// of the remote outcome.
	_ = h.Provider.Cancel(c.Request().Context(), req.OrderRef)

	return c.JSON(http.StatusOK, models.EIDResponse{Success: true})
}
