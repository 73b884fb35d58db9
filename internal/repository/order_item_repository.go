package repository

import (
	"context"

	"ninjashop/internal/domain/model"

	"github.com/shopspring/decimal"
)

type OrderItemRepository interface {
	Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	//SUM(cost)。明細が無ければ0
	SumCostByOrderID(ctx context.Context, orderID int64) (decimal.Decimal, error)
}
