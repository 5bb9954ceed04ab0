package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RoomTotal prices a date range at nightlyRate.
//
// Definite ranges cost rate × nights; when nights ≤ 0 the range is not yet priceable and
// previous is returned unchanged. Open-ended ranges cost rate × max(1, days since start + 1),
// counted up to today, so they accrue one more night per elapsed day.
func RoomTotal(r DateRange, nightlyRate decimal.Decimal, today time.Time, previous decimal.Decimal) decimal.Decimal {
	if nights, ok := r.Nights(); ok {
		if nights <= 0 {
			return previous
		}
		return nightlyRate.Mul(decimal.NewFromInt(int64(nights)))
	}
	nights := DaysBetween(r.Start(), today) + 1
	if nights < 1 {
		nights = 1
	}
	return nightlyRate.Mul(decimal.NewFromInt(int64(nights)))
}

// FinalAmount is the monetary value of the adjustment against base, rounded to cents so
// balances stay payable. Percentage adjustments are base × percentage / 100; fixed ones ignore base.
func (a PriceAdjustment) FinalAmount(base decimal.Decimal) decimal.Decimal {
	if a.IsPercentage {
		return base.Mul(a.Percentage).Div(hundred).Round(2)
	}
	return a.Amount.Round(2)
}

// SignedAmount is FinalAmount with the sign of its contribution to the stay total.
func (a PriceAdjustment) SignedAmount(base decimal.Decimal) decimal.Decimal {
	v := a.FinalAmount(base)
	if a.Kind == AdjustmentDiscount {
		return v.Neg()
	}
	return v
}

// AdjustmentView is an adjustment together with its value computed at read time.
type AdjustmentView struct {
	PriceAdjustment
	ComputedAmount decimal.Decimal `json:"computed_amount"`
}

// Statement is a stay's balance computed from its current ledger. It is never persisted.
type Statement struct {
	StayID               uint             `json:"stay_id"`
	StayCode             string           `json:"stay_code"`
	RoomTotal            decimal.Decimal  `json:"room_total"`
	ConsumptionSubtotal  decimal.Decimal  `json:"consumption_subtotal"`
	ServicesSubtotal     decimal.Decimal  `json:"services_subtotal"`
	Base                 decimal.Decimal  `json:"base"`
	AdjustmentsSubtotal  decimal.Decimal  `json:"adjustments_subtotal"`
	TotalWithAdjustments decimal.Decimal  `json:"total_with_adjustments"`
	Paid                 decimal.Decimal  `json:"paid"`
	BalanceDue           decimal.Decimal  `json:"balance_due"`
	Adjustments          []AdjustmentView `json:"adjustments"`
}

// BuildStatement aggregates the ledger of one stay. Inactive adjustments are listed but do not count.
func BuildStatement(stay Stay, consumption []ConsumptionLine, services []ServiceLine, adjustments []PriceAdjustment, payments []Payment) Statement {
	st := Statement{
		StayID:              stay.ID,
		StayCode:            stay.Code,
		RoomTotal:           stay.RoomTotal,
		ConsumptionSubtotal: decimal.Zero,
		ServicesSubtotal:    decimal.Zero,
		AdjustmentsSubtotal: decimal.Zero,
		Paid:                decimal.Zero,
		Adjustments:         make([]AdjustmentView, 0, len(adjustments)),
	}
	for _, c := range consumption {
		st.ConsumptionSubtotal = st.ConsumptionSubtotal.Add(c.Subtotal)
	}
	for _, s := range services {
		st.ServicesSubtotal = st.ServicesSubtotal.Add(s.Subtotal)
	}
	st.Base = st.RoomTotal.Add(st.ConsumptionSubtotal).Add(st.ServicesSubtotal)

	for _, a := range adjustments {
		view := AdjustmentView{PriceAdjustment: a, ComputedAmount: a.FinalAmount(st.Base)}
		st.Adjustments = append(st.Adjustments, view)
		if a.Active {
			st.AdjustmentsSubtotal = st.AdjustmentsSubtotal.Add(a.SignedAmount(st.Base))
		}
	}
	st.TotalWithAdjustments = st.Base.Add(st.AdjustmentsSubtotal)

	for _, p := range payments {
		st.Paid = st.Paid.Add(p.Amount)
	}
	st.BalanceDue = st.TotalWithAdjustments.Sub(st.Paid)
	return st
}
