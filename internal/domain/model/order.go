package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// 許可される遷移だけを持つテーブル。ここに無い組み合わせは全部拒否。
// delivered / cancelled は終端。
var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending: {
		OrderStatusPaid:      true,
		OrderStatusCancelled: true,
	},
	OrderStatusPaid: {
		OrderStatusDelivered: true,
		OrderStatusCancelled: true,
	},
}

// CanTransition は from -> to が合法かを返す。
// pending -> delivered の飛び級は不可（配達は必ず入金後）。
func CanTransition(from OrderStatus, to OrderStatus) bool {
	return allowedTransitions[from][to]
}

// 注文時点のスナップショット。注文作成後は二度と書き換えない。
type OrderItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// 明細はjsonbに埋め込む（注文作成を1行のINSERTで済ませるため）。
// 作成後に更新できるのはStatusだけ。
type Order struct {
	ID          string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID      int64           `gorm:"not null;index" json:"user_id"`
	Nickname    string          `gorm:"type:varchar(64)" json:"nickname"`
	Items       []OrderItem     `gorm:"type:jsonb;serializer:json" json:"items"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
