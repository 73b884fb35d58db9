package usecase

import (
	"context"
	"net/http"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"
)

type WishlistUsecase struct {
	tx        repo.TransactionManager
	wishlists repo.WishlistRepository
	users     repo.UserRepository
	products  repo.ProductRepository
}

func NewWishlistUsecase(
	tx repo.TransactionManager,
	wishlists repo.WishlistRepository,
	users repo.UserRepository,
	products repo.ProductRepository,
) *WishlistUsecase {
	return &WishlistUsecase{tx: tx, wishlists: wishlists, users: users, products: products}
}

type WishlistInput struct {
	User     int64 `json:"user" validate:"required,gt=0"`
	Product  int64 `json:"product" validate:"required,gt=0"`
	Quantity int64 `json:"quantity" validate:"required,gte=1"`
}

// 増減の結果。数量が0になった行は削除される
type WishlistChange struct {
	Deleted bool
	ID      int64
	Item    model.Wishlist
}

func (u *WishlistUsecase) List(ctx context.Context, p Principal, userID int64) ([]model.Wishlist, error) {
	if err := requireOwnerOr(p, userID, model.PermViewWishlist); err != nil {
		return []model.Wishlist{}, err
	}
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return []model.Wishlist{}, repoError(err, "user not found")
	}

	items, err := u.wishlists.ListByUserID(ctx, userID)
	if err != nil {
		return []model.Wishlist{}, repoError(err, "not found")
	}
	return items, nil
}

// (user, product)があれば数量を上書き、無ければ作成
func (u *WishlistUsecase) Upsert(ctx context.Context, p Principal, in WishlistInput) (model.Wishlist, error) {
	if in.Quantity < 1 {
		return model.Wishlist{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
	}
	if err := requireOwnerOr(p, in.User, model.PermChangeWishlist); err != nil {
		return model.Wishlist{}, err
	}

	if _, err := u.users.FindByID(ctx, in.User); err != nil {
		return model.Wishlist{}, repoError(err, "user not found")
	}
	if _, err := u.products.FindByID(ctx, in.Product); err != nil {
		return model.Wishlist{}, repoError(err, "product not found")
	}

	w, err := u.wishlists.Upsert(ctx, in.User, in.Product, in.Quantity)
	if err != nil {
		return model.Wishlist{}, repoError(err, "not found")
	}
	return w, nil
}

func (u *WishlistUsecase) Increment(ctx context.Context, p Principal, wishlistID int64) (WishlistChange, error) {
	return u.adjust(ctx, p, wishlistID, 1)
}

// 数量1から減らすと行ごと削除
func (u *WishlistUsecase) Decrement(ctx context.Context, p Principal, wishlistID int64) (WishlistChange, error) {
	return u.adjust(ctx, p, wishlistID, -1)
}

func (u *WishlistUsecase) adjust(ctx context.Context, p Principal, wishlistID int64, delta int64) (WishlistChange, error) {
	if !p.Authenticated() {
		return WishlistChange{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if wishlistID <= 0 {
		return WishlistChange{}, NewHTTPError(http.StatusBadRequest, "invalid wishlist id")
	}

	var deleted bool
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		w, err := r.Wishlists().FindByIDForUpdate(ctx, wishlistID)
		if err != nil {
			return repoError(err, "wishlist not found")
		}
		if err := requireOwnerOr(p, w.UserID, model.PermChangeWishlist); err != nil {
			return err
		}

		next := w.Quantity + delta
		if next <= 0 {
			deleted = true
			return r.Wishlists().DeleteByID(ctx, wishlistID)
		}
		return r.Wishlists().UpdateQuantity(ctx, wishlistID, next)
	})
	if err != nil {
		return WishlistChange{}, repoError(err, "wishlist not found")
	}

	if deleted {
		return WishlistChange{Deleted: true, ID: wishlistID}, nil
	}

	w, err := u.wishlists.FindByID(ctx, wishlistID)
	if err != nil {
		return WishlistChange{}, repoError(err, "wishlist not found")
	}
	return WishlistChange{ID: wishlistID, Item: w}, nil
}
