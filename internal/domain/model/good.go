package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type GoodCategory string

const (
	CategoryVIP       GoodCategory = "vip"
	CategoryCurrency  GoodCategory = "currency"
	CategoryCosmetics GoodCategory = "cosmetics"
	CategoryOther     GoodCategory = "other"
)

func (c GoodCategory) Valid() bool {
	switch c {
	case CategoryVIP, CategoryCurrency, CategoryCosmetics, CategoryOther:
		return true
	}
	return false
}

// ストアの商品（デジタル特典なので在庫は持たない）
type Good struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Category    GoodCategory    `gorm:"type:varchar(20);not null;index" json:"category"`
	Image       string          `gorm:"type:varchar(512)" json:"image,omitempty"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
