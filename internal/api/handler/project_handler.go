package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// ProjectHandler serves /api/projects.
type ProjectHandler struct {
	resource[domain.Project, ports.ProjectFilter, ports.ProjectInput]
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{resource[domain.Project, ports.ProjectFilter, ports.ProjectInput]{
		service: service,
		name:    "project",
		filter:  projectFilter,
	}}
}

// List handles GET /api/projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  ports.ListResult[domain.Project]
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error { return h.list(c) }

// Get handles GET /api/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "project id"
// @Success      200  {object}  dataResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error { return h.get(c) }

// Create handles POST /api/projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.ProjectInput  true  "project"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error { return h.create(c) }

// Update handles PUT /api/projects/:id. Only the fields present in the body change.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "project id"
// @Param        body  body      ports.ProjectInput  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error { return h.update(c) }

// Delete handles DELETE /api/projects/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "project id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error { return h.delete(c) }

func projectFilter(c echo.Context) (ports.ProjectFilter, error) {
	return ports.ProjectFilter{
		Status: query(c, "status"),
		Title:  query(c, "title"),
	}, nil
}
