package handler

import (
	"errors"
	"net/http"

	"ninjashop/internal/middleware"
	"ninjashop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products のAPI
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(g *echo.Group, auth ...echo.MiddlewareFunc) {
	g.GET("/products", h.list)
	g.GET("/products/:id", h.detail)
	g.GET("/products_name_search", h.search)

	g.POST("/products", h.create, auth...)
	g.PUT("/products/:id", h.update, auth...)
	g.DELETE("/products/:id", h.delete, auth...)
}

// ?category=&search=&min_price=&max_price=&sort=
func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		MinPrice: c.QueryParam("min_price"),
		MaxPrice: c.QueryParam("max_price"),
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) search(c echo.Context) error {
	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// multipart/form-data。imageは任意
func (h *ProductHandler) create(c echo.Context) error {
	in := usecase.ProductInput{
		Category:    c.FormValue("category"),
		Name:        c.FormValue("name"),
		Slug:        c.FormValue("slug"),
		Price:       c.FormValue("price"),
		Description: c.FormValue("description"),
	}
	if err := c.Validate(&in); err != nil {
		return writeError(c, err)
	}

	var upload *usecase.ImageUpload
	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid image"})
		}
		defer f.Close()
		upload = &usecase.ImageUpload{Filename: fh.Filename, Body: f}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		//画像なし
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form"})
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), middleware.PrincipalFrom(c), in, upload)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req usecase.ProductInput
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.UpdateProduct(c.Request().Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), middleware.PrincipalFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
