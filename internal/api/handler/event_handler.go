package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// EventHandler serves /api/events.
type EventHandler struct {
	resource[domain.Event, ports.EventFilter, ports.EventInput]
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{resource[domain.Event, ports.EventFilter, ports.EventInput]{
		service: service,
		name:    "event",
		filter:  eventFilter,
	}}
}

// List handles GET /api/events.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  ports.ListResult[domain.Event]
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error { return h.list(c) }

// Get handles GET /api/events/:id.
//
// @Summary      Get a event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "event id"
// @Success      200  {object}  dataResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error { return h.get(c) }

// Create handles POST /api/events.
//
// @Summary      Create a event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.EventInput  true  "event"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error { return h.create(c) }

// Update handles PUT /api/events/:id. Only the fields present in the body change.
//
// @Summary      Update a event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "event id"
// @Param        body  body      ports.EventInput  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error { return h.update(c) }

// Delete handles DELETE /api/events/:id.
//
// @Summary      Delete a event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "event id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error { return h.delete(c) }

func eventFilter(c echo.Context) (ports.EventFilter, error) {
	return ports.EventFilter{Name: query(c, "name")}, nil
}
