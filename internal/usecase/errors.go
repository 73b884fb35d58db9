package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	repo "ninjashop/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// repositoryのエラーをHTTPErrorに変換する。
// すでにHTTPErrorならそのまま返す。
func repoError(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, notFound)
	case errors.Is(err, repo.ErrConflict):
		return NewHTTPError(http.StatusBadRequest, "conflict")
	case errors.Is(err, context.DeadlineExceeded):
		return NewHTTPError(http.StatusServiceUnavailable, "timeout")
	case errors.Is(err, repo.ErrTxAborted):
		return NewHTTPError(http.StatusServiceUnavailable, "please retry")
	default:
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
}
