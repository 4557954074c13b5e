package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/api/metrics"
	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// MaintenanceHandler exposes the maintenance logging and history endpoints.
type MaintenanceHandler struct {
	maintenanceService ports.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService ports.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

type maintenanceRequest struct {
	ItemID        string     `json:"item_id" validate:"required"`
	Type          string     `json:"type" validate:"required,oneof=Preventiva Corretiva Emergencial"`
	Description   string     `json:"description" validate:"required"`
	PerformedAt   time.Time  `json:"performed_at" validate:"required"`
	Technician    string     `json:"technician" validate:"required"`
	NextScheduled *time.Time `json:"next_scheduled,omitempty"`
}

// List returns all maintenance records.
//
// @Summary      List maintenance records
// @Tags         maintenance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Maintenance
// @Failure      401  {object}  map[string]string
// @Router       /v1/maintenance [get]
func (h *MaintenanceHandler) List(c echo.Context) error {
	records, err := h.maintenanceService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Create logs a maintenance event against an item.
//
// @Summary      Log a maintenance event
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      maintenanceRequest  true  "Maintenance details"
// @Success      201   {object}  domain.Maintenance
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/maintenance [post]
func (h *MaintenanceHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req maintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.maintenanceService.Log(c.Request().Context(), actor, ports.MaintenanceInput{
		ItemID:        req.ItemID,
		Type:          domain.MaintenanceType(req.Type),
		Description:   req.Description,
		PerformedAt:   req.PerformedAt,
		Technician:    req.Technician,
		NextScheduled: req.NextScheduled,
	})
	if err != nil {
		return err
	}
	metrics.MaintenanceLoggedTotal.WithLabelValues(req.Type).Inc()

	return c.JSON(http.StatusCreated, record)
}

// History returns all maintenance records for a single item.
//
// @Summary      Maintenance history for an item
// @Tags         maintenance
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      string  true  "Item id"
// @Success      200     {array}   domain.Maintenance
// @Failure      404     {object}  map[string]string
// @Router       /v1/maintenance/history/{itemId} [get]
func (h *MaintenanceHandler) History(c echo.Context) error {
	records, err := h.maintenanceService.HistoryByItem(c.Request().Context(), c.Param("itemId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}
