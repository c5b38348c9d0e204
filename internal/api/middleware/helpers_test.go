package middleware

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/service"
)

const testSecret = "test-secret"

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testCodec() *service.TokenCodec {
	return service.NewTokenCodec(testSecret, 2*time.Hour, service.WithClock(func() time.Time { return fixedNow }))
}

func mustIssue(t *testing.T, id string, role domain.Role) string {
	t.Helper()
	tok, err := testCodec().Issue(id, role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// serve runs h through mws for a single request and lets echo's error handler
// render any returned error.
func serve(e *echo.Echo, c echo.Context, h echo.HandlerFunc, mws ...echo.MiddlewareFunc) {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

func newContext(e *echo.Echo, method, target, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type recordingSink struct {
	mu      sync.Mutex
	records []domain.AccessRecord
}

func (s *recordingSink) Record(rec domain.AccessRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

func (s *recordingSink) all() []domain.AccessRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AccessRecord(nil), s.records...)
}
