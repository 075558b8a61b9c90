package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"localehub/internal/errors"
)

type contextKey struct{}

var userIDKey contextKey

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext recovers the authenticated user id set by the bearer
// middleware.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(userIDKey).(uint)
	return userID, ok
}

// RequireToken returns middleware that authenticates the bearer token and
// injects the resolved user id into the request context. Every failure mode
// (missing header, malformed header, unknown, revoked or expired token) yields
// the same 401 response.
func RequireToken(issuer IssuerInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := BearerFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return unauthenticated()
			}

			userID, err := issuer.Authenticate(c.Request().Context(), token)
			if err != nil {
				return unauthenticated()
			}

			ctx := WithUserID(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// BearerFromHeader extracts the opaque token from an Authorization header.
func BearerFromHeader(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func unauthenticated() error {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: "unauthenticated",
		Code:  "UNAUTHENTICATED",
	})
}
