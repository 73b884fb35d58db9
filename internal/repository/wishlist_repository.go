package repository

import (
	"context"

	"ninjashop/internal/domain/model"
)

type WishlistRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.Wishlist, error)
	FindByID(ctx context.Context, id int64) (model.Wishlist, error)
	//トランザクション内で行ロック（SELECT ... FOR UPDATE）を取って取得
	FindByIDForUpdate(ctx context.Context, id int64) (model.Wishlist, error)
	// 複数行をid昇順でロックする。存在しないidは結果に含まれない
	FindByIDsForUpdate(ctx context.Context, ids []int64) ([]model.Wishlist, error)

	// (user, product) があれば数量を上書き、無ければ作成
	Upsert(ctx context.Context, userID int64, productID int64, quantity int64) (model.Wishlist, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int64) error
	DeleteByID(ctx context.Context, id int64) error
}
