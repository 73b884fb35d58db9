package repository

import (
	"context"
	"fmt"

	"ninjashop/internal/domain/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&item).Error; err != nil {
		return model.OrderItem{}, translateError(err)
	}
	return item, nil
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

func (r *OrderItemGormRepository) SumCostByOrderID(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select("COALESCE(SUM(cost), 0)").
		Where("order_id = ?", orderID).
		Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum order items: %w", err)
	}
	return sum, nil
}
