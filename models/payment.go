package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentDebitCard    PaymentMethod = "debit_card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheck        PaymentMethod = "check"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentBankTransfer, PaymentCheck:
		return true
	}
	return false
}

type PaymentKind string

const (
	PaymentPartial PaymentKind = "partial"
	PaymentFull    PaymentKind = "full"
)

func (k PaymentKind) Valid() bool {
	return k == PaymentPartial || k == PaymentFull
}

// Payment is immutable once created.
type Payment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Code      string          `gorm:"size:20;uniqueIndex;not null" json:"code"`
	StayID    uint            `gorm:"index;not null" json:"stay_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method    PaymentMethod   `gorm:"size:20;not null" json:"method"`
	Kind      PaymentKind     `gorm:"size:20;not null" json:"kind"`
	Payer     Party           `gorm:"embedded;embeddedPrefix:payer_" json:"payer"`
	Reference string          `gorm:"size:100" json:"reference"`
	Notes     string          `gorm:"type:text" json:"notes"`
	PaidAt    time.Time       `gorm:"not null;index" json:"paid_at"`
	CreatedBy string          `gorm:"size:150" json:"created_by,omitempty"`

	Stay Stay `gorm:"foreignKey:StayID;constraint:OnDelete:RESTRICT" json:"-"`
}
