package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HotelSetting is the single issuer profile printed on invoices. TaxRate, when set,
// overrides the configured rate for invoices generated afterwards.
type HotelSetting struct {
	ID      uint                `gorm:"primaryKey" json:"id"`
	Name    string              `gorm:"size:255" json:"name"`
	TaxID   string              `gorm:"column:tax_id;size:20" json:"tax_id"`
	Address string              `gorm:"type:text" json:"address"`
	Phone   string              `gorm:"size:50" json:"phone"`
	Email   string              `gorm:"size:150" json:"email"`
	Website string              `gorm:"size:255" json:"website"`
	TaxRate decimal.NullDecimal `gorm:"type:decimal(5,4)" json:"tax_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
