package middleware

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/topicosweb/backend/internal/core/domain"
)

func TestRequireRole(t *testing.T) {
	cases := []struct {
		role domain.Role
		min  domain.Role
		want int
	}{
		{domain.RoleVisitor, domain.RoleAnalyst, http.StatusForbidden},
		{domain.RoleAnalyst, domain.RoleAnalyst, http.StatusOK},
		{domain.RoleAdmin, domain.RoleAnalyst, http.StatusOK},
		{domain.RoleVisitor, domain.RoleAdmin, http.StatusForbidden},
		{domain.RoleAnalyst, domain.RoleAdmin, http.StatusForbidden},
		{domain.RoleAdmin, domain.RoleAdmin, http.StatusOK},
		{domain.Role("root"), domain.RoleVisitor, http.StatusForbidden},
	}

	for _, tc := range cases {
		e := echo.New()
		c, rec := newContext(e, http.MethodGet, "/", "")
		setIdentity(c, &domain.Identity{ID: "u1", Role: tc.role})

		serve(e, c, func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		}, RequireRole(tc.min))

		if rec.Code != tc.want {
			t.Errorf("role %s, min %s: expected %d, got %d", tc.role, tc.min, tc.want, rec.Code)
		}
	}
}

func TestRequireRole_FailsClosedWithoutIdentity(t *testing.T) {
	e := echo.New()
	c, rec := newContext(e, http.MethodGet, "/", "")

	serve(e, c, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}, RequireRole(domain.RoleVisitor))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
