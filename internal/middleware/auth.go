package middleware

import (
	"strings"

	"brandregistry/internal/common"
	"brandregistry/internal/services"

	"github.com/labstack/echo/v4"
)

// BearerAuth resolves the Authorization header into a caller identity
// and stashes it in the request context. Every failure mode is the same
// 401; the response never says why the token was rejected.
func BearerAuth(authSvc services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return common.SendUnauthorizedError(c)
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return common.SendUnauthorizedError(c)
			}

			userID, err := authSvc.Resolve(c.Request().Context(), tokenString)
			if err != nil {
				return common.SendUnauthorizedError(c)
			}

			ctx := common.WithUserID(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
