package repository

import (
	"context"

	"ninjashop/internal/domain/model"
)

type StatusRepository interface {
	List(ctx context.Context) ([]model.Status, error)
	FindByID(ctx context.Context, id int64) (model.Status, error)
	Create(ctx context.Context, s model.Status) (model.Status, error)
	Delete(ctx context.Context, id int64) error
}
