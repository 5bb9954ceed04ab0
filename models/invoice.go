package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Invoice snapshots a stay's totals at generation time; one per stay.
type Invoice struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Code     string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	StayID   uint      `gorm:"uniqueIndex;not null" json:"stay_id"`
	IssuedAt time.Time `gorm:"not null;index" json:"issued_at"`

	IssuerName  string `gorm:"size:255" json:"issuer_name"`
	IssuerTaxID string `gorm:"column:issuer_tax_id;size:20" json:"issuer_tax_id"`

	SubtotalRoom        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal_room"`
	SubtotalConsumption decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal_consumption"`
	SubtotalServices    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal_services"`
	SubtotalAdjustments decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal_adjustments"`
	TaxRate             decimal.Decimal `gorm:"type:decimal(5,4);not null" json:"tax_rate"`
	Tax                 decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax"`
	Total               decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	Breakdown datatypes.JSON `json:"breakdown"`
	Notes     string         `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Stay Stay `gorm:"foreignKey:StayID;constraint:OnDelete:RESTRICT" json:"stay,omitempty"`
}

// InvoiceLine is one row of the frozen breakdown stored on an invoice.
type InvoiceLine struct {
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}
