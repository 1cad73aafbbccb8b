package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stylora-be/internal/auth"
)

const userIDContextKey = "auth.user_id"

// RequireAuth rejects requests without a valid bearer token and stores
// the authenticated user id on the echo context.
func RequireAuth(tokens *auth.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := auth.ExtractToken(c.Request())
			if tokenStr == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			}

			c.Set(userIDContextKey, claims.UserID)
			return next(c)
		}
	}
}

// CurrentUserID reads the user id stored by RequireAuth.
func CurrentUserID(c echo.Context) (int, bool) {
	id, ok := c.Get(userIDContextKey).(int)
	return id, ok
}
