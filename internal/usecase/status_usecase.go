package usecase

import (
	"context"
	"net/http"
	"strings"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"
)

type StatusUsecase struct {
	statusRepo repo.StatusRepository
}

func NewStatusUsecase(statusRepo repo.StatusRepository) *StatusUsecase {
	return &StatusUsecase{statusRepo: statusRepo}
}

type StatusInput struct {
	Name string `json:"name" validate:"required,max=250"`
}

func (u *StatusUsecase) List(ctx context.Context) ([]model.Status, error) {
	list, err := u.statusRepo.List(ctx)
	if err != nil {
		return []model.Status{}, repoError(err, "not found")
	}
	return list, nil
}

// 名前重複は400
func (u *StatusUsecase) Create(ctx context.Context, p Principal, in StatusInput) (model.Status, error) {
	if err := requirePerm(p, model.PermAddStatus); err != nil {
		return model.Status{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Status{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	s, err := u.statusRepo.Create(ctx, model.Status{Name: name})
	if err != nil {
		return model.Status{}, repoError(err, "not found")
	}
	return s, nil
}

// そのステータスの注文もCASCADEで消える
func (u *StatusUsecase) Delete(ctx context.Context, p Principal, statusID int64) error {
	if err := requirePerm(p, model.PermDeleteStatus); err != nil {
		return err
	}
	if statusID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.statusRepo.Delete(ctx, statusID); err != nil {
		return repoError(err, "status not found")
	}
	return nil
}
