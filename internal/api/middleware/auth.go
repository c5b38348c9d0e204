package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/topicosweb/backend/internal/api/metrics"
	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// AuthMode selects whether a route can be reached anonymously.
type AuthMode int

const (
	// Optional attaches an identity when one can be extracted and always proceeds.
	Optional AuthMode = iota
	// Required rejects requests without a valid credential.
	Required
)

const (
	msgTokenMissing = "access denied: token not provided"
	msgTokenExpired = "token expired"
	msgTokenInvalid = "invalid token, use 'Bearer <token>'"
)

// Authenticate resolves the request's Authorization header into the ambient identity.
//
//	no header                    → Required: 401, Optional: anonymous
//	valid credential             → proceed with identity
//	expired credential           → Required: 401, Optional: anonymous + auth error
//	malformed or forged          → Required: 403, Optional: anonymous + auth error
func Authenticate(verifier ports.TokenVerifier, mode AuthMode, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := ExtractIdentity(c.Request().Header.Get(echo.HeaderAuthorization), verifier)

			if mode == Optional {
				if err != nil {
					c.Set(ctxAuthError, err)
					log.Debug().Err(err).Str("path", c.Path()).Msg("optional auth failed, continuing anonymously")
				}
				setIdentity(c, id)
				return next(c)
			}

			switch {
			case err == nil && id == nil:
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenMissing)
			case errors.Is(err, domain.ErrTokenExpired):
				metrics.AuthRejectionsTotal.WithLabelValues("expired").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenExpired)
			case err != nil:
				metrics.AuthRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusForbidden, msgTokenInvalid)
			}

			setIdentity(c, id)
			return next(c)
		}
	}
}
