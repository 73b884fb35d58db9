package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  int64           `gorm:"not null;index" json:"-"`
	Category    Category        `gorm:"constraint:OnDelete:CASCADE" json:"category"`
	Name        string          `gorm:"type:varchar(250);not null;index" json:"name"`
	Slug        string          `gorm:"type:varchar(250);not null;index" json:"slug"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null;check:price >= 0" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	// MEDIA_DIRからの相対パス
	Image     string    `gorm:"type:varchar(255)" json:"image"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
