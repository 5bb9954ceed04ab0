package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomType is the rate catalog entry: one nightly price and capacity shared by many rooms.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string          `gorm:"size:50;not null" json:"name"`
	NightlyPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"nightly_price"`
	Capacity     int             `gorm:"not null;default:1" json:"capacity"`
	Description  string          `gorm:"type:text" json:"description"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
