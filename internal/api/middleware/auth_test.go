package middleware

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/service"
)

func TestAuthenticate_Required(t *testing.T) {
	expiredCodec := service.NewTokenCodec(testSecret, time.Minute, service.WithClock(func() time.Time {
		return fixedNow.Add(-time.Hour)
	}))
	expired, _ := expiredCodec.Issue("u1", domain.RoleAdmin)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"malformed header", "Basic abc", http.StatusForbidden},
		{"garbage token", "Bearer abc.def.ghi", http.StatusForbidden},
		{"valid", "Bearer " + mustIssue(t, "u1", domain.RoleVisitor), http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			c, rec := newContext(e, http.MethodGet, "/", tc.header)
			called := false
			serve(e, c, func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			}, Authenticate(testCodec(), Required, zerolog.Nop()))

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, rec.Code, rec.Body.String())
			}
			if called != (tc.want == http.StatusOK) {
				t.Fatalf("handler called = %v for status %d", called, tc.want)
			}
		})
	}
}

func TestAuthenticate_RequiredAttachesIdentity(t *testing.T) {
	e := echo.New()
	c, _ := newContext(e, http.MethodGet, "/", "Bearer "+mustIssue(t, "u42", domain.RoleAnalyst))

	serve(e, c, func(c echo.Context) error {
		id := IdentityFrom(c)
		if id == nil || id.ID != "u42" || id.Role != domain.RoleAnalyst {
			t.Fatalf("unexpected identity: %+v", id)
		}
		ctxID, ok := domain.IdentityFromContext(c.Request().Context())
		if !ok || ctxID.ID != "u42" {
			t.Fatalf("identity not on request context")
		}
		return c.NoContent(http.StatusOK)
	}, Authenticate(testCodec(), Required, zerolog.Nop()))
}

func TestAuthenticate_OptionalAnonymous(t *testing.T) {
	e := echo.New()
	c, rec := newContext(e, http.MethodGet, "/", "")

	serve(e, c, func(c echo.Context) error {
		if IdentityFrom(c) != nil {
			t.Fatalf("expected no identity")
		}
		if AuthErrorFrom(c) != nil {
			t.Fatalf("absent header is not an error")
		}
		return c.NoContent(http.StatusOK)
	}, Authenticate(testCodec(), Optional, zerolog.Nop()))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_OptionalRecordsFailure(t *testing.T) {
	e := echo.New()
	c, rec := newContext(e, http.MethodGet, "/", "Token xyz")

	serve(e, c, func(c echo.Context) error {
		if IdentityFrom(c) != nil {
			t.Fatalf("expected no identity")
		}
		if !errors.Is(AuthErrorFrom(c), domain.ErrMalformedHeader) {
			t.Fatalf("expected malformed header reason, got %v", AuthErrorFrom(c))
		}
		return c.NoContent(http.StatusOK)
	}, Authenticate(testCodec(), Optional, zerolog.Nop()))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_VerifyIsIdempotent(t *testing.T) {
	tok := mustIssue(t, "u1", domain.RoleAdmin)
	codec := testCodec()
	a, err1 := codec.Verify(tok)
	b, err2 := codec.Verify(tok)
	if err1 != nil || err2 != nil || a != b {
		t.Fatalf("verification not idempotent: %v/%v %v/%v", a, err1, b, err2)
	}
}
