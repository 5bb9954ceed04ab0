package models

import "time"

// Company is a billing party that guests can be linked to and that can carry debt.
type Company struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:200;not null" json:"name"`
	TaxID   string `gorm:"column:tax_id;size:20;uniqueIndex;not null" json:"tax_id"`
	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:150" json:"email"`
	Address string `gorm:"type:text" json:"address"`
	Contact string `gorm:"size:100" json:"contact"`
	Active  bool   `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
