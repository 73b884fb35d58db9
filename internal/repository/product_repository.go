package repository

import (
	"context"

	"ninjashop/internal/domain/model"

	"github.com/shopspring/decimal"
)

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// 一覧検索。ページングは無し。
type ProductListQuery struct {
	CategoryID *int64
	//name または description の部分一致（大文字小文字無視）
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	//price_asc / price_desc 以外は名前順のまま
	Sort string
}

type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}
