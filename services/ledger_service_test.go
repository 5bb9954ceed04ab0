package services_test

import (
	"errors"
	"testing"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_StockGuardLeavesStockUnchanged(t *testing.T) {
	f := newFixture(t, "80.00")
	stay := f.stay("2024-01-01", dayPtr("2024-01-03"))
	beer := f.product("BEER", "4.00", 2)

	_, err := f.ledger.AddConsumption(ctx(), stay.ID, services.ConsumptionInput{ProductID: beer.ID, Quantity: 3})

	var serr *services.InsufficientStockError
	require.True(t, errors.As(err, &serr), "got %v", err)
	assert.Equal(t, "BEER", serr.ProductCode)
	assert.Equal(t, 2, serr.Available)
	assert.Equal(t, 3, serr.Requested)

	var stored models.Product
	require.NoError(t, f.db.First(&stored, beer.ID).Error)
	assert.Equal(t, 2, stored.Stock)
	var lines, moves int64
	f.db.Model(&models.ConsumptionLine{}).Count(&lines)
	f.db.Model(&models.StockMovement{}).Count(&moves)
	assert.Zero(t, lines)
	assert.Zero(t, moves)
}

func TestLedgerService_ConsumptionCapturesPriceAndDecrementsStock(t *testing.T) {
	f := newFixture(t, "80.00")
	stay := f.stay("2024-01-01", dayPtr("2024-01-03"))
	chips := f.product("CHIPS", "3.50", 10)

	line, err := f.ledger.AddConsumption(ctx(), stay.ID, services.ConsumptionInput{ProductID: chips.ID, Quantity: 4, CreatedBy: "desk"})
	require.NoError(t, err)
	assertMoney(t, "3.50", line.UnitPrice)
	assertMoney(t, "14.00", line.Subtotal)

	require.NoError(t, f.db.Model(&models.Product{}).Where("id = ?", chips.ID).Update("price", money("5.00")).Error)

	st := f.statement(stay.ID)
	assertMoney(t, "14.00", st.ConsumptionSubtotal)

	var stored models.Product
	require.NoError(t, f.db.First(&stored, chips.ID).Error)
	assert.Equal(t, 6, stored.Stock)

	var move models.StockMovement
	require.NoError(t, f.db.Where("product_id = ?", chips.ID).First(&move).Error)
	assert.Equal(t, models.StockConsumption, move.Kind)
	assert.Equal(t, -4, move.Quantity)
	assert.Equal(t, 10, move.Before)
	assert.Equal(t, 6, move.After)
	require.NotNil(t, move.StayID)
	assert.Equal(t, stay.ID, *move.StayID)
}

func TestLedgerService_PercentageAdjustmentFollowsBase(t *testing.T) {
	f := newFixture(t, "80.00")
	stay := f.stay("2024-01-01", dayPtr("2024-01-04"))
	pct, err := f.ledger.AddAdjustment(ctx(), stay.ID, services.AdjustmentInput{
		Kind: models.AdjustmentExtra, Label: "service charge", IsPercentage: true, Percentage: money("10"),
	})
	require.NoError(t, err)
	fixed, err := f.ledger.AddAdjustment(ctx(), stay.ID, services.AdjustmentInput{
		Kind: models.AdjustmentDiscount, Label: "voucher", Amount: money("20.00"),
	})
	require.NoError(t, err)

	computed := func(st *models.Statement, id uint) decimal.Decimal {
		for _, a := range st.Adjustments {
			if a.ID == id {
				return a.ComputedAmount
			}
		}
		t.Fatalf("adjustment %d missing from statement", id)
		return decimal.Zero
	}

	before := f.statement(stay.ID)
	assertMoney(t, "24.00", computed(before, pct.ID))
	assertMoney(t, "20.00", computed(before, fixed.ID))
	assertMoney(t, "4.00", before.AdjustmentsSubtotal)
	assertMoney(t, "244.00", before.TotalWithAdjustments)

	wine := f.product("WINE", "60.00", 5)
	_, err = f.ledger.AddConsumption(ctx(), stay.ID, services.ConsumptionInput{ProductID: wine.ID, Quantity: 1})
	require.NoError(t, err)

	after := f.statement(stay.ID)
	assertMoney(t, "30.00", computed(after, pct.ID))
	assertMoney(t, "20.00", computed(after, fixed.ID))
	assertMoney(t, "310.00", after.TotalWithAdjustments)
}

func TestLedgerService_AdjustmentValidation(t *testing.T) {
	f := newFixture(t, "80.00")
	stay := f.stay("2024-01-01", dayPtr("2024-01-04"))
	cases := []struct {
		name  string
		in    services.AdjustmentInput
		field string
	}{
		{"zero percentage", services.AdjustmentInput{Kind: models.AdjustmentExtra, Label: "x", IsPercentage: true}, "percentage"},
		{"negative amount", services.AdjustmentInput{Kind: models.AdjustmentDiscount, Label: "x", Amount: money("-5")}, "amount"},
		{"zero amount", services.AdjustmentInput{Kind: models.AdjustmentDiscount, Label: "x"}, "amount"},
		{"unknown kind", services.AdjustmentInput{Kind: "bonus", Label: "x", Amount: money("5")}, "kind"},
		{"missing label", services.AdjustmentInput{Kind: models.AdjustmentExtra, Amount: money("5")}, "label"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ledger.AddAdjustment(ctx(), stay.ID, tc.in)
			var verr *services.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestLedgerService_InactiveAndRemovedAdjustments(t *testing.T) {
	f := newFixture(t, "80.00")
	stay := f.stay("2024-01-01", dayPtr("2024-01-04"))
	adj, err := f.ledger.AddAdjustment(ctx(), stay.ID, services.AdjustmentInput{
		Kind: models.AdjustmentExtra, Label: "late checkout", Amount: money("30.00"),
	})
	require.NoError(t, err)
	assertMoney(t, "270.00", f.statement(stay.ID).TotalWithAdjustments)

	_, err = f.ledger.SetAdjustmentActive(ctx(), adj.ID, false)
	require.NoError(t, err)
	st := f.statement(stay.ID)
	assertMoney(t, "240.00", st.TotalWithAdjustments)
	require.Len(t, st.Adjustments, 1, "inactive adjustments are still listed")

	require.NoError(t, f.ledger.RemoveAdjustment(ctx(), adj.ID))
	assert.Empty(t, f.statement(stay.ID).Adjustments)

	err = f.ledger.RemoveAdjustment(ctx(), adj.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestLedgerService_ServicePrice(t *testing.T) {
	f := newFixture(t, "80.00")
	stay := f.stay("2024-01-01", dayPtr("2024-01-04"))
	transfer := models.ServiceType{Name: "Transfer", SuggestedPrice: decimal.NewNullDecimal(money("25.00")), Active: true}
	laundry := models.ServiceType{Name: "Laundry", RequiresPrice: true, Active: true}
	require.NoError(t, f.db.Create(&transfer).Error)
	require.NoError(t, f.db.Create(&laundry).Error)

	line, err := f.ledger.AddService(ctx(), stay.ID, services.ServiceInput{ServiceTypeID: transfer.ID, Quantity: 2})
	require.NoError(t, err)
	assertMoney(t, "50.00", line.Subtotal)

	_, err = f.ledger.AddService(ctx(), stay.ID, services.ServiceInput{ServiceTypeID: laundry.ID})
	var verr *services.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "price", verr.Field)

	line, err = f.ledger.AddService(ctx(), stay.ID, services.ServiceInput{ServiceTypeID: laundry.ID, Price: decimal.NewNullDecimal(money("12.50"))})
	require.NoError(t, err)
	assertMoney(t, "12.50", line.Subtotal)

	st := f.statement(stay.ID)
	assertMoney(t, "62.50", st.ServicesSubtotal)
	assertMoney(t, "302.50", st.TotalWithAdjustments)
}

func TestLedgerService_ClosedStaysRejectLines(t *testing.T) {
	f := newFixture(t, "80.00")
	stay := f.stay("2024-01-01", dayPtr("2024-01-02"))
	_, err := f.stays.Checkout(ctx(), stay.ID, services.CheckoutInput{PayInFull: true})
	require.NoError(t, err)
	soda := f.product("SODA", "2.00", 5)

	_, err = f.ledger.AddConsumption(ctx(), stay.ID, services.ConsumptionInput{ProductID: soda.ID, Quantity: 1})
	var serr *services.StateError
	require.True(t, errors.As(err, &serr), "got %v", err)

	_, err = f.ledger.AddAdjustment(ctx(), stay.ID, services.AdjustmentInput{Kind: models.AdjustmentExtra, Label: "x", Amount: money("1")})
	assert.True(t, errors.As(err, &serr))

	var stored models.Product
	require.NoError(t, f.db.First(&stored, soda.ID).Error)
	assert.Equal(t, 5, stored.Stock)
}
