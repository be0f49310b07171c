package handlers

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Redestrov/CyberMaker-site/internal/model"
)

const (
	HeaderAdminKey = "X-Admin-Key"
	contextUserID  = "userID"
)

// RequestTimeout bounds the request context and with it every store call made on its behalf.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireSession accepts "Authorization: Bearer <token>" issued at login.
func RequireSession(sessions SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || token == "" {
				return model.ErrorInvalidSession
			}
			claims, err := sessions.Verify(strings.TrimSpace(token))
			if err != nil {
				return model.ErrorInvalidSession
			}
			c.Set(contextUserID, model.UserID(claims.UserID))
			return next(c)
		}
	}
}

// RequireAdminKey guards operator endpoints. An empty key disables them.
func RequireAdminKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			given := c.Request().Header.Get(HeaderAdminKey)
			if key == "" || subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
				return model.ErrorInvalidSession
			}
			return next(c)
		}
	}
}

func currentUser(c echo.Context) (model.UserID, error) {
	userID, ok := c.Get(contextUserID).(model.UserID)
	if !ok || userID <= 0 {
		return 0, model.ErrorInvalidSession
	}
	return userID, nil
}
