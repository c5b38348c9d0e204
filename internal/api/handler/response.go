package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type dataResponse struct {
	Data any `json:"data"`
}

type messageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// bindValid decodes the request body into dst and runs the registered validator.
func bindValid(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(dst)
}

// pageParams reads ?page= and ?limit=. Missing values fall back to defaults;
// non-numeric values are rejected.
func pageParams(c echo.Context, defLimit int64) (ports.Page, error) {
	page, err := intParam(c, "page")
	if err != nil {
		return ports.Page{}, err
	}
	limit, err := intParam(c, "limit")
	if err != nil {
		return ports.Page{}, err
	}
	return ports.NewPage(page, limit, defLimit), nil
}

func intParam(c echo.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(name + " must be a number")
	}
	return n, nil
}

// boolParam returns nil when the parameter is absent.
func boolParam(c echo.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewValidationError(name + " must be true or false")
	}
	return &b, nil
}

func query(c echo.Context, name string) string {
	return strings.TrimSpace(c.QueryParam(name))
}
