package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Costは作成時点の price × quantity。後から商品価格が変わっても変更しない。
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Product   Product         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Cost      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"cost"`
	Quantity  int64           `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
