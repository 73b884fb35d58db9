package model

// 商品カテゴリ。slugはカタログ全体で一意。
type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(250);not null;index" json:"name"`
	Slug string `gorm:"type:varchar(250);not null;uniqueIndex" json:"slug"`
}
