package validator

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"ninjashop/internal/usecase"

	playground "github.com/go-playground/validator/v10"
)

// echo.Validator の実装。c.Validate から呼ばれる
type RequestValidator struct {
	v *playground.Validate
}

func NewRequestValidator() *RequestValidator {
	v := playground.New()
	// エラーにはjsonのフィールド名を出す
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return usecase.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
	}
	return usecase.NewHTTPError(http.StatusBadRequest, "invalid input")
}
