package handler

import (
	"net/http"

	"ninjashop/internal/middleware"
	"ninjashop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group, auth ...echo.MiddlewareFunc) {
	g.POST("/registration", h.register)
	g.POST("/login", h.login)

	g.POST("/logout", h.logout, auth...)
	g.GET("/me", h.me, auth...)
	g.GET("/users", h.users, auth...)
}

// POST /registration
func (h *AuthHandler) register(c echo.Context) error {
	var req usecase.RegisterInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// POST /login
func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.LoginInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// User-Agentはセッションに残す
	out, err := h.uc.Login(c.Request().Context(), req, c.Request().UserAgent())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context(), middleware.PrincipalFrom(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}

func (h *AuthHandler) me(c echo.Context) error {
	out, err := h.uc.Me(c.Request().Context(), middleware.PrincipalFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) users(c echo.Context) error {
	out, err := h.uc.ListUsers(c.Request().Context(), middleware.PrincipalFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
