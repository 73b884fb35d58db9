package repository

import (
	"context"

	"ninjashop/internal/domain/model"

	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)
	//StatusとItemsを読み込んで返す
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//行ロック付き。関連は読み込まない
	FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error)
	//作成日時順
	List(ctx context.Context) ([]model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)

	UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error
	UpdateStatus(ctx context.Context, orderID int64, statusID int64) error
	Delete(ctx context.Context, orderID int64) error
}
