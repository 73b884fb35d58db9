package model

// 注文ステータスの名前（migrateで投入する初期値）
const (
	StatusNew       = "new"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCanceled  = "canceled"
)

// DefaultStatuses はID順に投入する。先頭（ID=1）が新規注文の初期ステータス。
var DefaultStatuses = []string{
	StatusNew,
	StatusPaid,
	StatusShipped,
	StatusDelivered,
	StatusCanceled,
}

type Status struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(250);not null;uniqueIndex" json:"name"`
}
