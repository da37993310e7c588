package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cementrack/tracking-api/internal/core/ports"
)

// TrackingHandler serves the public, unauthenticated tracking lookup.
type TrackingHandler struct {
	service ports.TrackingService
}

func NewTrackingHandler(service ports.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// Track handles GET /rastrear/:tracking_code.
//
// @Summary      Public delivery lookup by tracking code
// @Tags         tracking
// @Produce      json
// @Param        tracking_code  path      string  true  "Tracking code (case-insensitive)"
// @Success      200            {object}  publicDeliveryResponse
// @Failure      404            {object}  errorResponse
// @Router       /rastrear/{tracking_code} [get]
func (h *TrackingHandler) Track(c echo.Context) error {
	public, err := h.service.Lookup(c.Request().Context(), c.Param("tracking_code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPublicResponse(public))
}
