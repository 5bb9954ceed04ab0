package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionLine is a product charged to a stay at the price it had when charged.
type ConsumptionLine struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	StayID    uint            `gorm:"index;not null" json:"stay_id"`
	ProductID uint            `gorm:"index;not null" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	CreatedBy string          `gorm:"size:150" json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`

	Stay    Stay    `gorm:"foreignKey:StayID;constraint:OnDelete:RESTRICT" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

type ServiceType struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	Name           string              `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description    string              `gorm:"type:text" json:"description"`
	SuggestedPrice decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"suggested_price"`
	RequiresPrice  bool                `gorm:"not null" json:"requires_price"`
	Active         bool                `gorm:"not null" json:"active"`
}

// ServiceLine is an additional service (laundry, transport...) charged to a stay.
type ServiceLine struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	StayID        uint            `gorm:"index;not null" json:"stay_id"`
	ServiceTypeID uint            `gorm:"index;not null" json:"service_type_id"`
	Quantity      int             `gorm:"not null;default:1" json:"quantity"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`

	Stay        Stay        `gorm:"foreignKey:StayID;constraint:OnDelete:RESTRICT" json:"-"`
	ServiceType ServiceType `gorm:"foreignKey:ServiceTypeID" json:"service_type,omitempty"`
}

type AdjustmentKind string

const (
	AdjustmentExtra    AdjustmentKind = "extra"
	AdjustmentDiscount AdjustmentKind = "discount"
)

func (k AdjustmentKind) Valid() bool {
	return k == AdjustmentExtra || k == AdjustmentDiscount
}

// PriceAdjustment is a manual extra or discount, fixed or a percentage of the stay subtotal.
type PriceAdjustment struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	StayID       uint            `gorm:"index;not null" json:"stay_id"`
	Kind         AdjustmentKind  `gorm:"size:20;not null" json:"kind"`
	Label        string          `gorm:"size:200;not null" json:"label"`
	IsPercentage bool            `gorm:"not null;default:false" json:"is_percentage"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	Percentage   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"percentage"`
	Active       bool            `gorm:"not null" json:"active"`
	CreatedBy    string          `gorm:"size:150" json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`

	Stay Stay `gorm:"foreignKey:StayID;constraint:OnDelete:RESTRICT" json:"-"`
}
