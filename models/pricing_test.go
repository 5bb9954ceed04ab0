package models_test

import (
	"testing"

	"hotel-frontdesk/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRoomTotal(t *testing.T) {
	rate := dec("80")
	cases := []struct {
		name     string
		r        models.DateRange
		today    string
		previous string
		want     string
	}{
		{"definite", models.Definite(d("2024-01-01"), d("2024-01-04")), "2024-01-01", "0", "240.00"},
		{"definite ignores today", models.Definite(d("2024-01-01"), d("2024-01-04")), "2024-03-01", "0", "240.00"},
		{"zero nights keeps previous", models.Definite(d("2024-01-04"), d("2024-01-04")), "2024-01-04", "160", "160.00"},
		{"open ended same day", models.OpenEnded(d("2024-01-01")), "2024-01-01", "0", "80.00"},
		{"open ended after three days", models.OpenEnded(d("2024-01-01")), "2024-01-04", "0", "320.00"},
		{"open ended before start", models.OpenEnded(d("2024-01-05")), "2024-01-01", "0", "80.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := models.RoomTotal(tc.r, rate, d(tc.today), dec(tc.previous))
			assert.Equal(t, tc.want, got.StringFixed(2))
		})
	}
}

func TestBuildStatement(t *testing.T) {
	stay := models.Stay{ID: 7, Code: "HC-TEST", RoomTotal: dec("200")}
	consumption := []models.ConsumptionLine{{Subtotal: dec("30")}, {Subtotal: dec("20")}}
	services := []models.ServiceLine{{Subtotal: dec("50")}}
	adjustments := []models.PriceAdjustment{
		{Kind: models.AdjustmentDiscount, IsPercentage: true, Percentage: dec("10"), Active: true},
		{Kind: models.AdjustmentExtra, Amount: dec("15"), Active: true},
		{Kind: models.AdjustmentDiscount, Amount: dec("99"), Active: false},
	}
	payments := []models.Payment{{Amount: dec("100")}}

	st := models.BuildStatement(stay, consumption, services, adjustments, payments)

	assert.Equal(t, "300.00", st.Base.StringFixed(2))
	assert.Equal(t, "-15.00", st.AdjustmentsSubtotal.StringFixed(2))
	assert.Equal(t, "285.00", st.TotalWithAdjustments.StringFixed(2))
	assert.Equal(t, "185.00", st.BalanceDue.StringFixed(2))
	assert.Len(t, st.Adjustments, 3, "inactive adjustments are listed")
	assert.Equal(t, "30.00", st.Adjustments[0].ComputedAmount.StringFixed(2))
	assert.Equal(t, "99.00", st.Adjustments[2].ComputedAmount.StringFixed(2))
	assert.True(t, st.BalanceDue.Equal(st.TotalWithAdjustments.Sub(st.Paid)))
}

func TestPriceAdjustment_FinalAmountRoundsToCents(t *testing.T) {
	extra := models.PriceAdjustment{Kind: models.AdjustmentExtra, IsPercentage: true, Percentage: dec("10"), Active: true}
	assert.Equal(t, "3.33", extra.FinalAmount(dec("33.33")).String())

	st := models.BuildStatement(models.Stay{RoomTotal: dec("33.33")}, nil, nil, []models.PriceAdjustment{extra}, nil)
	assert.Equal(t, "36.66", st.TotalWithAdjustments.String())
	assert.Equal(t, "36.66", st.BalanceDue.String())
	assert.LessOrEqual(t, -st.BalanceDue.Exponent(), int32(2))
}
