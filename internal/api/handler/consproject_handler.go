package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// ConsProjectHandler serves /api/cons-projects.
type ConsProjectHandler struct {
	resource[domain.ConsProject, ports.ConsProjectFilter, ports.ConsProjectInput]
}

func NewConsProjectHandler(service ports.ConsProjectService) *ConsProjectHandler {
	return &ConsProjectHandler{resource[domain.ConsProject, ports.ConsProjectFilter, ports.ConsProjectInput]{
		service: service,
		name:    "construction project",
		filter:  consProjectFilter,
	}}
}

// List handles GET /api/cons-projects.
//
// @Summary      List construction projects
// @Tags         cons-projects
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  ports.ListResult[domain.ConsProject]
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /cons-projects [get]
func (h *ConsProjectHandler) List(c echo.Context) error { return h.list(c) }

// Get handles GET /api/cons-projects/:id.
//
// @Summary      Get a construction project
// @Tags         cons-projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "construction project id"
// @Success      200  {object}  dataResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /cons-projects/{id} [get]
func (h *ConsProjectHandler) Get(c echo.Context) error { return h.get(c) }

// Create handles POST /api/cons-projects.
//
// @Summary      Create a construction project
// @Tags         cons-projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.ConsProjectInput  true  "construction project"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /cons-projects [post]
func (h *ConsProjectHandler) Create(c echo.Context) error { return h.create(c) }

// Update handles PUT /api/cons-projects/:id. Only the fields present in the body change.
//
// @Summary      Update a construction project
// @Tags         cons-projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "construction project id"
// @Param        body  body      ports.ConsProjectInput  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /cons-projects/{id} [put]
func (h *ConsProjectHandler) Update(c echo.Context) error { return h.update(c) }

// Delete handles DELETE /api/cons-projects/:id.
//
// @Summary      Delete a construction project
// @Tags         cons-projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "construction project id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /cons-projects/{id} [delete]
func (h *ConsProjectHandler) Delete(c echo.Context) error { return h.delete(c) }

func consProjectFilter(c echo.Context) (ports.ConsProjectFilter, error) {
	return ports.ConsProjectFilter{
		Status: query(c, "status"),
		Client: query(c, "client"),
		Place:  query(c, "place"),
	}, nil
}
