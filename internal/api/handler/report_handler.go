package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/topicosweb/backend/internal/api/middleware"
	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

const accessReportLimit = 50

// ReportHandler serves /api/reports.
type ReportHandler struct {
	access  ports.AccessService
	reports ports.ReportService
}

func NewReportHandler(access ports.AccessService, reports ports.ReportService) *ReportHandler {
	return &ReportHandler{access: access, reports: reports}
}

// Access handles GET /api/reports/access.
//
// @Summary      Access log report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from      query     string  false  "Lower bound (RFC3339 or YYYY-MM-DD)"
// @Param        to        query     string  false  "Upper bound (RFC3339 or YYYY-MM-DD, inclusive day)"
// @Param        resource  query     string  false  "Resource tag"
// @Param        action    query     string  false  "create, retrieve, update or delete"
// @Param        user      query     string  false  "User id"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (default 50)"
// @Success      200       {object}  ports.AccessReport
// @Failure      400       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Router       /reports/access [get]
func (h *ReportHandler) Access(c echo.Context) error {
	f, err := accessFilter(c)
	if err != nil {
		return err
	}
	p, err := pageParams(c, accessReportLimit)
	if err != nil {
		return err
	}

	report, err := h.access.Report(c.Request().Context(), f, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// Collection handles POST /api/reports/collection.
//
// @Summary      Aggregate report over a collection
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.CollectionReportInput  true  "Report request"
// @Success      200   {object}  domain.CollectionReport
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /reports/collection [post]
func (h *ReportHandler) Collection(c echo.Context) error {
	id := middleware.IdentityFrom(c)
	if id == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "access denied: token not provided")
	}

	var req ports.CollectionReportInput
	if err := bindValid(c, &req); err != nil {
		return err
	}

	report, err := h.reports.Collection(c.Request().Context(), *id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

func accessFilter(c echo.Context) (domain.AccessFilter, error) {
	var f domain.AccessFilter

	if raw := query(c, "from"); raw != "" {
		t, _, err := parseBound(raw)
		if err != nil {
			return f, domain.NewValidationError("from must be an RFC3339 timestamp or YYYY-MM-DD date")
		}
		f.From = &t
	}
	if raw := query(c, "to"); raw != "" {
		t, dateOnly, err := parseBound(raw)
		if err != nil {
			return f, domain.NewValidationError("to must be an RFC3339 timestamp or YYYY-MM-DD date")
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = &t
	}
	if raw := query(c, "resource"); raw != "" {
		tag, ok := domain.ParseResourceTag(raw)
		if !ok {
			return f, domain.NewValidationError("resource is not a known resource")
		}
		f.Resource = tag
	}
	if raw := query(c, "action"); raw != "" {
		a := domain.Action(raw)
		if !a.Valid() {
			return f, domain.NewValidationError("action must be one of: create, retrieve, update, delete")
		}
		f.Action = a
	}
	f.User = query(c, "user")
	return f, nil
}

// parseBound accepts a full timestamp or a bare date; dateOnly reports the latter.
func parseBound(raw string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	if t, err = time.Parse(time.DateOnly, raw); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, err
}
