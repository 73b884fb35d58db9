package model

import "time"

// 購入予定の商品。(user, product)で一意、quantityは常に1以上。
// 0になった行は保存せず削除する。
type Wishlist struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_wishlist_user_product;index" json:"product_id"`
	Product   Product   `gorm:"constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int64     `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
