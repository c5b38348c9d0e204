package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// PatientHandler serves /api/patients.
type PatientHandler struct {
	resource[domain.Patient, ports.PatientFilter, ports.PatientInput]
	patients ports.PatientService
}

func NewPatientHandler(service ports.PatientService) *PatientHandler {
	return &PatientHandler{resource[domain.Patient, ports.PatientFilter, ports.PatientInput]{
		service: service,
		name:    "patient",
		filter:  patientFilter,
	}, service}
}

// List handles GET /api/patients.
//
// @Summary      List patients
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  ports.ListResult[domain.Patient]
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /patients [get]
func (h *PatientHandler) List(c echo.Context) error { return h.list(c) }

// Get handles GET /api/patients/:id.
//
// @Summary      Get a patient
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "patient id"
// @Success      200  {object}  dataResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /patients/{id} [get]
func (h *PatientHandler) Get(c echo.Context) error { return h.get(c) }

// Create handles POST /api/patients.
//
// @Summary      Create a patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.PatientInput  true  "patient"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /patients [post]
func (h *PatientHandler) Create(c echo.Context) error { return h.create(c) }

// Update handles PUT /api/patients/:id. Only the fields present in the body change.
//
// @Summary      Update a patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "patient id"
// @Param        body  body      ports.PatientInput  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /patients/{id} [put]
func (h *PatientHandler) Update(c echo.Context) error { return h.update(c) }

// Delete handles DELETE /api/patients/:id.
//
// @Summary      Delete a patient
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "patient id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /patients/{id} [delete]
func (h *PatientHandler) Delete(c echo.Context) error { return h.delete(c) }

// Seed handles POST /api/patients/cargar-datos.
//
// @Summary      Load the sample patients
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /patients/cargar-datos [post]
func (h *PatientHandler) Seed(c echo.Context) error {
	patients, err := h.patients.Seed(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "sample patients loaded", Data: patients})
}

func patientFilter(c echo.Context) (ports.PatientFilter, error) {
	return ports.PatientFilter{
		Genero: query(c, "genero"),
		Nombre: query(c, "nombre"),
	}, nil
}
