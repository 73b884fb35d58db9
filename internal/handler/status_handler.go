package handler

import (
	"net/http"

	"ninjashop/internal/middleware"
	"ninjashop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type StatusHandler struct {
	uc *usecase.StatusUsecase
}

func NewStatusHandler(uc *usecase.StatusUsecase) *StatusHandler {
	return &StatusHandler{uc: uc}
}

func (h *StatusHandler) RegisterRoutes(g *echo.Group, auth ...echo.MiddlewareFunc) {
	g.GET("/statuses", h.list)
	g.POST("/statuses", h.create, auth...)
	g.DELETE("/statuses/:id", h.delete, auth...)
}

func (h *StatusHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StatusHandler) create(c echo.Context) error {
	var req usecase.StatusInput
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Create(c.Request().Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *StatusHandler) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), middleware.PrincipalFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
