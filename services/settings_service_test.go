package services_test

import (
	"errors"
	"testing"

	"hotel-frontdesk/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_GetBeforeUpdate(t *testing.T) {
	svc := services.NewSettingsService(newTestDB(t))

	hotel, err := svc.Get(ctx())
	require.NoError(t, err)
	assert.Zero(t, hotel.ID)
	assert.False(t, hotel.TaxRate.Valid)
}

func TestSettingsService_UpdateKeepsOneRow(t *testing.T) {
	svc := services.NewSettingsService(newTestDB(t))

	first, err := svc.Update(ctx(), services.SettingsInput{Name: "Hotel Central", TaxID: "hce990101xx1"})
	require.NoError(t, err)
	assert.Equal(t, "HCE990101XX1", first.TaxID)

	second, err := svc.Update(ctx(), services.SettingsInput{Name: "Hotel Central Plaza", TaxID: "HCE990101XX1"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := svc.Get(ctx())
	require.NoError(t, err)
	assert.Equal(t, "Hotel Central Plaza", got.Name)
}

func TestSettingsService_RejectsTaxRateOutOfRange(t *testing.T) {
	svc := services.NewSettingsService(newTestDB(t))

	for _, rate := range []string{"-0.01", "1", "16"} {
		_, err := svc.Update(ctx(), services.SettingsInput{Name: "H", TaxRate: decimal.NewNullDecimal(money(rate))})
		var verr *services.ValidationError
		require.True(t, errors.As(err, &verr), "rate %s", rate)
		assert.Equal(t, "tax_rate", verr.Field)
	}
}

func TestInvoiceService_UsesHotelSettings(t *testing.T) {
	f := newFixture(t, "80.00")
	settings := services.NewSettingsService(f.db)
	_, err := settings.Update(ctx(), services.SettingsInput{Name: "Hotel Central", TaxID: "HCE990101XX1", TaxRate: decimal.NewNullDecimal(money("0.08"))})
	require.NoError(t, err)
	stay := f.stay("2024-01-01", dayPtr("2024-01-04"))

	inv, err := f.invoices.Generate(ctx(), stay.ID)
	require.NoError(t, err)

	assert.Equal(t, "Hotel Central", inv.IssuerName)
	assert.Equal(t, "HCE990101XX1", inv.IssuerTaxID)
	assertMoney(t, "19.20", inv.Tax)
	assertMoney(t, "259.20", inv.Total)

	_, err = settings.Update(ctx(), services.SettingsInput{Name: "Hotel Central", TaxID: "HCE990101XX1"})
	require.NoError(t, err)
	inv, err = f.invoices.Generate(ctx(), stay.ID)
	require.NoError(t, err)
	assertMoney(t, "38.40", inv.Tax, "clearing the override falls back to the configured rate")
}
