package middleware

import (
	"strings"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

const bearerScheme = "Bearer"

// ExtractIdentity parses an Authorization header value. An absent header
// yields (nil, nil). Anything other than exactly "Bearer <credential>" fails
// with domain.ErrMalformedHeader; codec failures are returned unchanged.
func ExtractIdentity(header string, verifier ports.TokenVerifier) (*domain.Identity, error) {
	if header == "" {
		return nil, nil
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != bearerScheme || parts[1] == "" {
		return nil, domain.ErrMalformedHeader
	}
	id, err := verifier.Verify(parts[1])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
