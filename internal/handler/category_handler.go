package handler

import (
	"net/http"

	"ninjashop/internal/middleware"
	"ninjashop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	uc        *usecase.CategoryUsecase
	productUC *usecase.ProductUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase, productUC *usecase.ProductUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc, productUC: productUC}
}

// 参照は公開、更新系は認証必須
func (h *CategoryHandler) RegisterRoutes(g *echo.Group, auth ...echo.MiddlewareFunc) {
	g.GET("/categories", h.list)
	g.GET("/categories/:slug", h.detail)
	g.GET("/categories/:slug/products", h.products)

	g.POST("/categories", h.create, auth...)
	g.PUT("/categories/:slug", h.update, auth...)
	g.DELETE("/categories/:slug", h.delete, auth...)
}

func (h *CategoryHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) detail(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) products(c echo.Context) error {
	out, err := h.productUC.ListCategoryProducts(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req usecase.CategoryInput
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Create(c.Request().Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CategoryHandler) update(c echo.Context) error {
	var req usecase.CategoryInput
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Update(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("slug"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("slug")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
