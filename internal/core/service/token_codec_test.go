package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/topicosweb/backend/internal/core/domain"
)

func codecAt(secret string, now time.Time) *TokenCodec {
	return NewTokenCodec(secret, time.Hour, WithClock(func() time.Time { return now }))
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := codecAt("secret", fixedTime)

	tok, err := codec.Issue("u1", domain.RoleAnalyst)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	id, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if id != (domain.Identity{ID: "u1", Role: domain.RoleAnalyst}) {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestTokenCodec_UniqueTokenIDs(t *testing.T) {
	codec := codecAt("secret", fixedTime)
	a, _ := codec.Issue("u1", domain.RoleAdmin)
	b, _ := codec.Issue("u1", domain.RoleAdmin)
	if a == b {
		t.Fatal("two tokens issued at the same instant should differ by jti")
	}
}

func TestTokenCodec_IssueRejectsBadInput(t *testing.T) {
	codec := codecAt("secret", fixedTime)
	if _, err := codec.Issue("", domain.RoleAdmin); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("empty subject: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := codec.Issue("u1", domain.Role("root")); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown role: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	tok, _ := codecAt("secret", fixedTime).Issue("u1", domain.RoleAdmin)

	_, err := codecAt("secret", fixedTime.Add(2*time.Hour)).Verify(tok)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	tok, _ := codecAt("one", fixedTime).Issue("u1", domain.RoleAdmin)

	_, err := codecAt("two", fixedTime).Verify(tok)
	if !errors.Is(err, domain.ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := codecAt("secret", fixedTime)
	sign := func(claims jwt.Claims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return tok
	}
	exp := jwt.NewNumericDate(fixedTime.Add(time.Hour))

	cases := map[string]string{
		"garbage":      "not.a.token",
		"no expiry":    sign(tokenClaims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}),
		"no subject":   sign(tokenClaims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}),
		"unknown role": sign(tokenClaims{Role: "root", RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", ExpiresAt: exp}}),
	}
	for name, tok := range cases {
		if _, err := codec.Verify(tok); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Errorf("%s: expected ErrTokenMalformed, got %v", name, err)
		}
	}
}

func TestTokenCodec_RejectsOtherAlgorithms(t *testing.T) {
	claims := tokenClaims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := codecAt("secret", fixedTime).Verify(tok); err == nil {
		t.Fatal("HS512 token must be rejected")
	}
}
