package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totalは常にOrderItem.Costの合計と一致させる。
type Order struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64           `gorm:"not null;index" json:"user_id"`
	User      User            `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	StatusID  int64           `gorm:"not null;index" json:"-"`
	Status    Status          `gorm:"constraint:OnDelete:CASCADE" json:"status"`
	Total     decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"total"`
	Items     []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
