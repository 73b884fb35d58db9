package repository

import (
	"context"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&order).Error; err != nil {
		return model.Order{}, translateError(err)
	}
	return order, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Status").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Where("id = ?", orderID).
		First(&o).Error
	if err != nil {
		return model.Order{}, translateError(err)
	}
	return o, nil
}

func (r *OrderGormRepository) FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", orderID).
		First(&o).Error
	if err != nil {
		return model.Order{}, translateError(err)
	}
	return o, nil
}

func (r *OrderGormRepository) List(ctx context.Context) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Preload("Status").
		Order("created_at asc").
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Preload("Status").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	return r.updateColumn(ctx, orderID, "total", total)
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, statusID int64) error {
	return r.updateColumn(ctx, orderID, "status_id", statusID)
}

func (r *OrderGormRepository) updateColumn(ctx context.Context, orderID int64, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update(column, value)

	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細はCASCADE
func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Order{}, orderID)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
