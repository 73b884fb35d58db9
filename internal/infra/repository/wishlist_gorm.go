package repository

import (
	"context"
	"time"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistGormRepository struct {
	db *gorm.DB
}

// DI
func NewWishlistGormRepository(db *gorm.DB) *WishlistGormRepository {
	return &WishlistGormRepository{db: db}
}

func (r *WishlistGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Wishlist, error) {
	var items []model.Wishlist
	if err := r.db.WithContext(ctx).
		Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.Wishlist{}, err
	}
	return items, nil
}

func (r *WishlistGormRepository) FindByID(ctx context.Context, id int64) (model.Wishlist, error) {
	var w model.Wishlist
	err := r.db.WithContext(ctx).Preload("Product.Category").First(&w, id).Error
	if err != nil {
		return model.Wishlist{}, translateError(err)
	}
	return w, nil
}

// 行ロック付き。商品は読み込まない（ロック対象を広げない）
func (r *WishlistGormRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.Wishlist, error) {
	var w model.Wishlist
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&w).Error
	if err != nil {
		return model.Wishlist{}, translateError(err)
	}
	return w, nil
}

// ロック順をid昇順に固定して、逆順の同時リクエストでもデッドロックしない
func (r *WishlistGormRepository) FindByIDsForUpdate(ctx context.Context, ids []int64) ([]model.Wishlist, error) {
	var items []model.Wishlist
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, translateError(err)
	}
	return items, nil
}

// (user_id, product_id)の一意制約でON CONFLICTして数量を上書き
func (r *WishlistGormRepository) Upsert(ctx context.Context, userID int64, productID int64, quantity int64) (model.Wishlist, error) {
	w := model.Wishlist{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   quantity,
				"updated_at": time.Now(),
			}),
		}).
		Create(&w).Error
	if err != nil {
		return model.Wishlist{}, translateError(err)
	}

	return r.FindByID(ctx, w.ID)
}

func (r *WishlistGormRepository) UpdateQuantity(ctx context.Context, id int64, quantity int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Wishlist{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *WishlistGormRepository) DeleteByID(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Wishlist{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
