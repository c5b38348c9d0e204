package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/topicosweb/backend/internal/core/domain"
)

// Echo context keys set by the auth gate.
const (
	ctxIdentity  = "identity"
	ctxAuthError = "auth_error"
)

// IdentityFrom returns the ambient identity, or nil when the request is anonymous.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(ctxIdentity).(*domain.Identity)
	return id
}

// AuthErrorFrom returns why an optional-mode gate could not authenticate the request.
func AuthErrorFrom(c echo.Context) error {
	err, _ := c.Get(ctxAuthError).(error)
	return err
}

func setIdentity(c echo.Context, id *domain.Identity) {
	c.Set(ctxIdentity, id)
	if id != nil {
		req := c.Request()
		c.SetRequest(req.WithContext(domain.WithIdentity(req.Context(), *id)))
	}
}
