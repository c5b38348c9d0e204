package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// VehicleHandler serves /api/vehicles.
type VehicleHandler struct {
	resource[domain.Vehicle, ports.VehicleFilter, ports.VehicleInput]
}

func NewVehicleHandler(service ports.VehicleService) *VehicleHandler {
	return &VehicleHandler{resource[domain.Vehicle, ports.VehicleFilter, ports.VehicleInput]{
		service: service,
		name:    "vehicle",
		filter:  vehicleFilter,
	}}
}

// List handles GET /api/vehicles.
//
// @Summary      List vehicles
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  ports.ListResult[domain.Vehicle]
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /vehicles [get]
func (h *VehicleHandler) List(c echo.Context) error { return h.list(c) }

// Get handles GET /api/vehicles/:id.
//
// @Summary      Get a vehicle
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "vehicle id"
// @Success      200  {object}  dataResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /vehicles/{id} [get]
func (h *VehicleHandler) Get(c echo.Context) error { return h.get(c) }

// Create handles POST /api/vehicles.
//
// @Summary      Create a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.VehicleInput  true  "vehicle"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /vehicles [post]
func (h *VehicleHandler) Create(c echo.Context) error { return h.create(c) }

// Update handles PUT /api/vehicles/:id. Only the fields present in the body change.
//
// @Summary      Update a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "vehicle id"
// @Param        body  body      ports.VehicleInput  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /vehicles/{id} [put]
func (h *VehicleHandler) Update(c echo.Context) error { return h.update(c) }

// Delete handles DELETE /api/vehicles/:id.
//
// @Summary      Delete a vehicle
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "vehicle id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c echo.Context) error { return h.delete(c) }

func vehicleFilter(c echo.Context) (ports.VehicleFilter, error) {
	return ports.VehicleFilter{
		State:   query(c, "state"),
		Type:    query(c, "type"),
		Project: query(c, "project"),
	}, nil
}
