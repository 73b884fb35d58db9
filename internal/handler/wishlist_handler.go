package handler

import (
	"net/http"

	"ninjashop/internal/middleware"
	"ninjashop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type WishlistHandler struct {
	uc *usecase.WishlistUsecase
}

func NewWishlistHandler(uc *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{uc: uc}
}

// 数量を減らして行が消えたときのレスポンス
type wishlistDeletedResponse struct {
	Deleted bool  `json:"deleted"`
	ID      int64 `json:"id"`
}

// すべて認証必須
func (h *WishlistHandler) RegisterRoutes(g *echo.Group, auth ...echo.MiddlewareFunc) {
	g.GET("/wishlist/:user_id", h.list, auth...)
	g.POST("/wishlist", h.upsert, auth...)
	g.PUT("/wishlist_add", h.increment, auth...)
	g.PUT("/wishlist_remove", h.decrement, auth...)
}

func (h *WishlistHandler) list(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), middleware.PrincipalFrom(c), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WishlistHandler) upsert(c echo.Context) error {
	var req usecase.WishlistInput
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Upsert(c.Request().Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ?wishlist_id=
func (h *WishlistHandler) increment(c echo.Context) error {
	id, err := queryID(c, "wishlist_id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Increment(c.Request().Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeWishlistChange(c, out)
}

// ?wishlist_id=
func (h *WishlistHandler) decrement(c echo.Context) error {
	id, err := queryID(c, "wishlist_id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Decrement(c.Request().Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeWishlistChange(c, out)
}

func writeWishlistChange(c echo.Context, ch usecase.WishlistChange) error {
	if ch.Deleted {
		return c.JSON(http.StatusOK, wishlistDeletedResponse{Deleted: true, ID: ch.ID})
	}
	return c.JSON(http.StatusOK, ch.Item)
}
