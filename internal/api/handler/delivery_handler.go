package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cementrack/tracking-api/internal/core/domain"
	"github.com/cementrack/tracking-api/internal/core/ports"
)

// DeliveryHandler handles all authenticated delivery routes.
type DeliveryHandler struct {
	service ports.DeliveryService
}

func NewDeliveryHandler(service ports.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{service: service}
}

// Create handles POST /v1/deliveries.
//
// @Summary      Create a new delivery
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDeliveryRequest  true  "Delivery details"
// @Success      201   {object}  createDeliveryResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/deliveries [post]
func (h *DeliveryHandler) Create(c echo.Context) error {
	operatorID, err := ctxOperator(c)
	if err != nil {
		return err
	}

	var req createDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.CreateDelivery(c.Request().Context(), ports.CreateDeliveryInput{
		CustomerID:         req.CustomerID,
		CementType:         req.CementType,
		Quantity:           req.Quantity,
		OriginAddress:      req.OriginAddress,
		DestinationAddress: req.DestinationAddress,
		DestinationLat:     req.DestinationLat,
		DestinationLng:     req.DestinationLng,
		DriverName:         req.DriverName,
		DriverPhone:        req.DriverPhone,
		VehiclePlate:       req.VehiclePlate,
		Notes:              req.Notes,
		EstimatedArrival:   req.EstimatedArrival,
		CreatedBy:          operatorID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createDeliveryResponse{
		ID:           result.Delivery.ID,
		TrackingCode: result.Delivery.TrackingCode,
		Status:       string(result.Delivery.Status),
		TrackingURL:  result.TrackingURL,
		CreatedAt:    fmtTime(result.Delivery.CreatedAt),
	})
}

// List handles GET /v1/deliveries.
//
// @Summary      List deliveries
// @Tags         deliveries
// @Produce      json
// @Security     BearerAuth
// @Param        status       query     string  false  "Filter by status"
// @Param        cement_type  query     string  false  "Filter by cement type"
// @Param        search       query     string  false  "Partial match on tracking code or driver name"
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Success      200          {object}  listDeliveriesResponse
// @Failure      401          {object}  errorResponse
// @Router       /v1/deliveries [get]
func (h *DeliveryHandler) List(c echo.Context) error {
	filter := ports.ListDeliveriesFilter{
		Status:     c.QueryParam("status"),
		CementType: c.QueryParam("cement_type"),
		Search:     c.QueryParam("search"),
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	if from := c.QueryParam("date_from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_from must be RFC3339")
		}
		filter.DateFrom = t
	}
	if to := c.QueryParam("date_to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_to must be RFC3339")
		}
		filter.DateTo = t
	}

	result, err := h.service.ListDeliveries(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	items := make([]deliveryResponse, 0, len(result.Items))
	for _, d := range result.Items {
		items = append(items, toDeliveryResponse(d))
	}
	return c.JSON(http.StatusOK, listDeliveriesResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /v1/deliveries/:id.
//
// @Summary      Get a delivery with its tracking history
// @Tags         deliveries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Delivery id"
// @Success      200  {object}  deliveryDetailResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/deliveries/{id} [get]
func (h *DeliveryHandler) Get(c echo.Context) error {
	detail, err := h.service.GetDelivery(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetailResponse(detail))
}

// UpdateStatus handles PATCH /v1/deliveries/:id/status.
//
// @Summary      Apply a status transition
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Delivery id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  deliveryResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/deliveries/{id}/status [patch]
func (h *DeliveryHandler) UpdateStatus(c echo.Context) error {
	operatorID, err := ctxOperator(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateStatusInput{
		DeliveryID: c.Param("id"),
		Status:     domain.DeliveryStatus(req.Status),
		Notes:      req.Notes,
		UpdatedBy:  operatorID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDeliveryResponse(updated))
}

// ReportLocation handles POST /v1/deliveries/:id/location.
//
// @Summary      Report the truck's current location as a raw address
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Delivery id"
// @Param        body  body      reportLocationRequest  true  "Location report"
// @Success      200   {object}  deliveryResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/deliveries/{id}/location [post]
func (h *DeliveryHandler) ReportLocation(c echo.Context) error {
	operatorID, err := ctxOperator(c)
	if err != nil {
		return err
	}

	var req reportLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.ReportLocation(c.Request().Context(), ports.ReportLocationInput{
		DeliveryID: c.Param("id"),
		Address:    req.Address,
		Notes:      req.Notes,
		ReportedBy: operatorID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDeliveryResponse(updated))
}

// Progress handles GET /v1/deliveries/:id/progress.
//
// @Summary      Estimate remaining distance and arrival time
// @Tags         deliveries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Delivery id"
// @Success      200  {object}  progressResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/deliveries/{id}/progress [get]
func (h *DeliveryHandler) Progress(c echo.Context) error {
	est, err := h.service.EstimateProgress(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	resp := progressResponse{Known: est.Known}
	if est.Known {
		resp.DistanceKm = est.DistanceKm
		resp.EtaMinutes = est.EtaMinutes
		eta := fmtTime(est.EtaTime)
		resp.EtaTime = &eta
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /v1/deliveries/:id. Admin only (enforced by RBAC).
//
// @Summary      Delete a delivery and its tracking history
// @Tags         deliveries
// @Security     BearerAuth
// @Param        id  path  string  true  "Delivery id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/deliveries/{id} [delete]
func (h *DeliveryHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteDelivery(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /v1/deliveries/stats.
//
// @Summary      Delivery counters grouped by status
// @Tags         deliveries
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Router       /v1/deliveries/stats [get]
func (h *DeliveryHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{
		Total:     stats.Total,
		Pending:   stats.Pending,
		InTransit: stats.InTransit,
		Delivered: stats.Delivered,
		Cancelled: stats.Cancelled,
	})
}
