package handler

import (
	"net/http"
	"strconv"

	"ninjashop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// bind + validate。失敗時は400のHTTPErrorを返す
func bindAndValidate(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(dst); err != nil {
		if _, ok := usecase.AsHTTPError(err); ok {
			return err
		}
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid input")
	}
	return nil
}

// パスパラメータの正のID
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// クエリパラメータの正のID（必須）
func queryID(c echo.Context, name string) (int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, usecase.NewHTTPError(http.StatusBadRequest, name+" required")
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
