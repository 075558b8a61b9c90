package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type staticIssuer struct {
	userID uint
	err    error
}

func (s *staticIssuer) Issue(ctx context.Context, userID uint) (string, error) { return "", nil }
func (s *staticIssuer) Revoke(ctx context.Context, token string) error         { return nil }

func (s *staticIssuer) Authenticate(ctx context.Context, token string) (uint, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.userID, nil
}

func TestRequireToken_InjectsUserIDIntoContext(t *testing.T) {
	e := echo.New()

	var gotUserID uint
	var gotOK bool
	e.GET("/protected", func(c echo.Context) error {
		gotUserID, gotOK = UserIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}, RequireToken(&staticIssuer{userID: 42}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer some-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOK)
	assert.Equal(t, uint(42), gotUserID)
}

func TestRequireToken_UniformUnauthorized(t *testing.T) {
	tests := []struct {
		name   string
		header string
		issuer IssuerInterface
	}{
		{name: "missing header", header: "", issuer: &staticIssuer{userID: 42}},
		{name: "malformed header", header: "Token abc", issuer: &staticIssuer{userID: 42}},
		{name: "rejected token", header: "Bearer abc", issuer: &staticIssuer{err: errors.New("invalid or expired token")}},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/protected", func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}, RequireToken(tt.issuer))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			bodies = append(bodies, rec.Body.String())
		})
	}

	// Every failure mode produces the identical response body.
	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i])
	}
}

func TestUserIDFromContext_Absent(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)
}
