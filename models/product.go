package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductCategory struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// Product is a minibar/shop item that can be charged to a stay.
type Product struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Code       string          `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name       string          `gorm:"size:200;not null;index" json:"name"`
	CategoryID uint            `gorm:"index;not null" json:"category_id"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock      int             `gorm:"not null;default:0" json:"stock"`
	MinStock   int             `gorm:"not null" json:"min_stock"`
	Unit       string          `gorm:"size:20;not null;default:'unit'" json:"unit"`
	Active     bool            `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Category ProductCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (p Product) NeedsRestock() bool {
	return p.Stock <= p.MinStock
}

type StockMovementKind string

const (
	StockConsumption      StockMovementKind = "consumption"
	StockManualAdjustment StockMovementKind = "manual_adjustment"
)

// StockMovement records every change to a product's stock.
type StockMovement struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	ProductID uint              `gorm:"index;not null" json:"product_id"`
	Kind      StockMovementKind `gorm:"size:30;not null" json:"kind"`
	Quantity  int               `gorm:"not null" json:"quantity"` // signed: negative leaves stock
	Before    int               `gorm:"not null" json:"before"`
	After     int               `gorm:"not null" json:"after"`
	Reason    string            `gorm:"type:text" json:"reason"`
	StayID    *uint             `gorm:"index" json:"stay_id,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
