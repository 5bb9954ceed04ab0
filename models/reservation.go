package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReservationState string

const (
	ReservationPending   ReservationState = "pending"
	ReservationConfirmed ReservationState = "confirmed"
	ReservationCancelled ReservationState = "cancelled"
	ReservationConverted ReservationState = "converted"
)

// Active reservations hold their room for availability purposes.
func (s ReservationState) Active() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

// Terminal reservations are immutable.
func (s ReservationState) Terminal() bool {
	return s == ReservationCancelled || s == ReservationConverted
}

// ActiveReservationStates are the states scanned by availability checks.
var ActiveReservationStates = []ReservationState{ReservationPending, ReservationConfirmed}

// Reservation is a phone or desk booking that has not yet become a Stay.
type Reservation struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:20;uniqueIndex;not null" json:"code"`

	GuestID   uint  `gorm:"index;not null" json:"guest_id"`
	CompanyID *uint `gorm:"index" json:"company_id,omitempty"`
	RoomID    uint  `gorm:"index;not null" json:"room_id"`

	ExpectedCheckIn  time.Time  `gorm:"type:date;not null" json:"expected_check_in"`
	ExpectedCheckOut *time.Time `gorm:"type:date" json:"expected_check_out,omitempty"`
	Guests           int        `gorm:"not null;default:1" json:"guests"`

	State       ReservationState    `gorm:"size:20;not null;default:pending;index" json:"state"`
	AgreedPrice decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"agreed_price"`
	Notes       string              `gorm:"type:text" json:"notes"`
	CreatedBy   string              `gorm:"size:150" json:"created_by,omitempty"`

	StayID *uint `gorm:"uniqueIndex" json:"stay_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Guest   Guest    `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Company *Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL" json:"company,omitempty"`
	Room    Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (r Reservation) Range() DateRange {
	return RangeOf(r.ExpectedCheckIn, r.ExpectedCheckOut)
}
