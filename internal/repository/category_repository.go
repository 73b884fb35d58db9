package repository

import (
	"context"

	"ninjashop/internal/domain/model"
)

type CategoryRepository interface {
	//名前順で全件
	List(ctx context.Context) ([]model.Category, error)
	FindBySlug(ctx context.Context, slug string) (model.Category, error)
	//slug重複はErrConflict
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	//配下の商品もCASCADEで消える
	DeleteByID(ctx context.Context, id int64) error
}
