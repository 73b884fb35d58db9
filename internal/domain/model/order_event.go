package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
)

// コミット後に外部へ通知する注文イベント
type OrderEvent struct {
	EventID    string          `json:"event_id"`
	Type       OrderEventType  `json:"type"`
	OrderID    int64           `json:"order_id"`
	UserID     int64           `json:"user_id"`
	Status     string          `json:"status"`
	PrevStatus string          `json:"prev_status,omitempty"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
	OccurredAt time.Time       `json:"occurred_at"`
}
