package middleware

import (
	"context"
	"net/http"

	"ninjashop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// jtiのセッションが生きているか確認してPrincipalを組み立てる
type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string, userID int64) (usecase.Principal, error)
}

// AuthJWTの後ろに置く。ログアウト済みのトークンはここで401になる。
func SessionGuard(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(CtxUserIDKey).(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			sessionID, ok := c.Get(CtxSessionIDKey).(string)
			if !ok || sessionID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			p, err := auth.Authenticate(c.Request().Context(), sessionID, userID)
			if err != nil {
				if he, ok := usecase.AsHTTPError(err); ok {
					return c.JSON(he.Status, errorJSON(he.Message))
				}
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			c.Set(CtxPrincipalKey, p)
			return next(c)
		}
	}
}

// 未認証なら空のPrincipal
func PrincipalFrom(c echo.Context) usecase.Principal {
	p, _ := c.Get(CtxPrincipalKey).(usecase.Principal)
	return p
}
