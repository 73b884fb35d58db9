package handler

import (
	"net/http"

	"ninjashop/internal/middleware"
	"ninjashop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group, auth ...echo.MiddlewareFunc) {
	g.POST("/order", h.create, auth...)
	g.GET("/order/:user_id", h.listByUser, auth...)
	g.GET("/orders", h.list, auth...)
	g.GET("/orders/:id", h.detail, auth...)
	g.GET("/orders/:id/history", h.history, auth...)
	g.DELETE("/orders/:id", h.delete, auth...)
	g.PUT("/change_status", h.changeStatus, auth...)
}

// body: [wishlist_id, ...]
func (h *OrderHandler) create(c echo.Context) error {
	var ids []int64
	if err := c.Bind(&ids); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), middleware.PrincipalFrom(c), ids)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.ListOrders(c.Request().Context(), middleware.PrincipalFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) listByUser(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ListUserOrders(c.Request().Context(), middleware.PrincipalFrom(c), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.GetOrder(c.Request().Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) history(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.History(c.Request().Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), middleware.PrincipalFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

// ?order_id=&status_id=
func (h *OrderHandler) changeStatus(c echo.Context) error {
	orderID, err := queryID(c, "order_id")
	if err != nil {
		return writeError(c, err)
	}
	statusID, err := queryID(c, "status_id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ChangeStatus(c.Request().Context(), middleware.PrincipalFrom(c), orderID, statusID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
