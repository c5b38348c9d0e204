package ports

import "github.com/topicosweb/backend/internal/core/domain"

// TokenIssuer signs credentials for an identity.
type TokenIssuer interface {
	Issue(subjectID string, role domain.Role) (string, error)
}

// TokenVerifier decodes a credential into exactly one identity or fails with
// domain.ErrTokenMalformed, domain.ErrTokenExpired or domain.ErrTokenSignature.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

type TokenCodec interface {
	TokenIssuer
	TokenVerifier
}
