package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/topicosweb/backend/internal/api/metrics"
	"github.com/topicosweb/backend/internal/core/domain"
)

// RequireRole admits identities whose role is at least min. It must run after
// Authenticate; a request without identity is rejected.
func RequireRole(min domain.Role) echo.MiddlewareFunc {
	msg := fmt.Sprintf("access denied: %s role or higher required", min)
	if min == domain.RoleAdmin {
		msg = "access denied: admin role required"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IdentityFrom(c)
			if id == nil || !id.Role.AtLeast(min) {
				metrics.AuthRejectionsTotal.WithLabelValues("insufficient_role").Inc()
				return echo.NewHTTPError(http.StatusForbidden, msg)
			}
			return next(c)
		}
	}
}
