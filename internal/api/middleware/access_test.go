package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topicosweb/backend/internal/core/domain"
)

var admin = &domain.Identity{ID: "u1", Role: domain.RoleAdmin}

func routeContext(e *echo.Echo, method, path string, id *domain.Identity, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newContext(e, method, path, "")
	if len(params) > 0 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}
	setIdentity(c, id)
	return c, rec
}

func TestLogAccess_RecordsParamID(t *testing.T) {
	e := echo.New()
	sink := &recordingSink{}
	c, rec := routeContext(e, http.MethodDelete, "/api/vehicles/v1", admin, "id", "v1")

	serve(e, c, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"message": "deleted"})
	}, LogAccess(sink, domain.ResourceVehicle, domain.ActionDelete))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sink.all(), 1)
	assert.Equal(t, domain.AccessRecord{
		User: "u1", Resource: domain.ResourceVehicle, ResourceID: "v1", Action: domain.ActionDelete,
	}, sink.all()[0])
}

func TestLogAccess_CreateExtractsPayloadID(t *testing.T) {
	cases := map[string]any{
		"top level":  map[string]any{"_id": "abc123"},
		"nested":     map[string]any{"message": "created", "data": map[string]any{"_id": "abc123"}},
		"numeric id": map[string]any{"data": map[string]any{"_id": 7}},
	}
	want := map[string]string{"top level": "abc123", "nested": "abc123", "numeric id": "7"}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			sink := &recordingSink{}
			c, rec := routeContext(e, http.MethodPost, "/api/vehicles", admin)

			serve(e, c, func(c echo.Context) error {
				return c.JSON(http.StatusCreated, body)
			}, LogAccess(sink, domain.ResourceVehicle, domain.ActionCreate))

			require.Equal(t, http.StatusCreated, rec.Code)
			require.Len(t, sink.all(), 1)
			assert.Equal(t, want[name], sink.all()[0].ResourceID)
			assert.Equal(t, domain.ActionCreate, sink.all()[0].Action)
		})
	}
}

func TestLogAccess_ResponseUnchanged(t *testing.T) {
	e := echo.New()
	sink := &recordingSink{}
	c, rec := routeContext(e, http.MethodPost, "/api/vehicles", admin)

	serve(e, c, func(c echo.Context) error {
		return c.JSONBlob(http.StatusCreated, []byte(`{"message":"ok","data":{"_id":"x1","plate":"ABC"}}`))
	}, LogAccess(sink, domain.ResourceVehicle, domain.ActionCreate))

	assert.Equal(t, `{"message":"ok","data":{"_id":"x1","plate":"ABC"}}`, rec.Body.String())
	assert.Same(t, rec, c.Response().Writer, "writer must be restored after the handler")
}

func TestLogAccess_NoRecord(t *testing.T) {
	cases := []struct {
		name    string
		id      *domain.Identity
		handler echo.HandlerFunc
		params  []string
	}{
		{
			name:    "anonymous",
			id:      nil,
			handler: func(c echo.Context) error { return c.JSON(http.StatusOK, map[string]any{"_id": "a"}) },
			params:  []string{"id", "a"},
		},
		{
			name:    "non 2xx",
			id:      admin,
			handler: func(c echo.Context) error { return c.JSON(http.StatusNotFound, map[string]any{"error": "nope"}) },
			params:  []string{"id", "a"},
		},
		{
			name:    "handler error",
			id:      admin,
			handler: func(c echo.Context) error { return errors.New("boom") },
			params:  []string{"id", "a"},
		},
		{
			name:    "create without id in payload",
			id:      admin,
			handler: func(c echo.Context) error { return c.JSON(http.StatusCreated, map[string]any{"total": 5}) },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			sink := &recordingSink{}
			c, _ := routeContext(e, http.MethodPost, "/", tc.id, tc.params...)
			serve(e, c, tc.handler, LogAccess(sink, domain.ResourceVehicle, domain.ActionCreate))
			assert.Empty(t, sink.all())
		})
	}
}

func TestLogListAccess(t *testing.T) {
	e := echo.New()
	sink := &recordingSink{}
	c, _ := routeContext(e, http.MethodGet, "/api/cons-projects", admin)

	serve(e, c, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"data": []any{}})
	}, LogListAccess(sink, domain.ResourceConsProject))

	require.Len(t, sink.all(), 1)
	assert.Equal(t, domain.ListPlaceholderID, sink.all()[0].ResourceID)
	assert.Equal(t, domain.ActionRetrieve, sink.all()[0].Action)
	assert.Equal(t, domain.ResourceConsProject, sink.all()[0].Resource)
}

func TestLogListAccess_SkipsFailures(t *testing.T) {
	e := echo.New()
	sink := &recordingSink{}
	c, _ := routeContext(e, http.MethodGet, "/api/patients", admin)

	serve(e, c, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "no patients")
	}, LogListAccess(sink, domain.ResourcePatient))

	assert.Empty(t, sink.all())
}
