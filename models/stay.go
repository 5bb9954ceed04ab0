package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type StayType string

const (
	StayContinuous StayType = "continuous"
	StayByPeriod   StayType = "by_period"
)

func (t StayType) Valid() bool {
	return t == StayContinuous || t == StayByPeriod
}

// CodePrefix is the reference-code prefix that tells the two stay types apart.
func (t StayType) CodePrefix() string {
	if t == StayByPeriod {
		return "HR"
	}
	return "HC"
}

type StayState string

const (
	StayPending    StayState = "pending"
	StayConfirmed  StayState = "confirmed"
	StayInProgress StayState = "in_progress"
	StayFinished   StayState = "finished"
	StayCancelled  StayState = "cancelled"
)

func (s StayState) Valid() bool {
	switch s {
	case StayPending, StayConfirmed, StayInProgress, StayFinished, StayCancelled:
		return true
	}
	return false
}

func (s StayState) Terminal() bool {
	return s == StayFinished || s == StayCancelled
}

// ActiveStayStates are the states that hold a room for availability purposes.
var ActiveStayStates = []StayState{StayConfirmed, StayInProgress}

// Stay (hospedada) is the billing unit: a room occupancy with its ledger.
type Stay struct {
	ID   uint     `gorm:"primaryKey" json:"id"`
	Code string   `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Type StayType `gorm:"size:20;not null;default:continuous" json:"type"`

	GuestID   uint  `gorm:"index;not null" json:"guest_id"`
	CompanyID *uint `gorm:"index" json:"company_id,omitempty"`
	RoomID    uint  `gorm:"index;not null" json:"room_id"`

	CheckIn  time.Time  `gorm:"type:date;not null" json:"check_in"`
	CheckOut *time.Time `gorm:"type:date" json:"check_out,omitempty"`
	Guests   int        `gorm:"not null;default:1" json:"guests"`

	State     StayState       `gorm:"size:20;not null;default:pending;index" json:"state"`
	RoomTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"room_total"`

	HasDebt      bool            `gorm:"not null;default:false;index" json:"has_debt"`
	DebtAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"debt_amount"`
	Debtor       Party           `gorm:"embedded;embeddedPrefix:debtor_" json:"debtor"`
	DebtNotes    string          `gorm:"type:text" json:"debt_notes"`
	CheckedOutAt *time.Time      `json:"checked_out_at,omitempty"`

	Notes     string `gorm:"type:text" json:"notes"`
	CreatedBy string `gorm:"size:150" json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Guest   Guest    `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Company *Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL" json:"company,omitempty"`
	Room    Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (s Stay) Range() DateRange {
	return RangeOf(s.CheckIn, s.CheckOut)
}

// Repriced returns a copy of s whose RoomTotal follows the pricing rule for its date range.
func (s Stay) Repriced(nightlyRate decimal.Decimal, today time.Time) Stay {
	s.RoomTotal = RoomTotal(s.Range(), nightlyRate, today, s.RoomTotal)
	return s
}

// DefaultDebtor is the company when the stay has one, otherwise the guest.
func (s Stay) DefaultDebtor() Party {
	if s.CompanyID != nil {
		return CompanyParty(*s.CompanyID)
	}
	return GuestParty(s.GuestID)
}
