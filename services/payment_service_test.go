package services_test

import (
	"errors"
	"testing"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_Register(t *testing.T) {
	f := newFixture(t, "80.00")
	stay := f.stay("2024-01-01", dayPtr("2024-01-04"))

	p, err := f.payments.Register(ctx(), stay.ID, services.PaymentInput{
		Amount: money("100.00"), Method: models.PaymentCreditCard, Reference: " AUTH-991 ",
	})
	require.NoError(t, err)

	assert.True(t, utils.IsReference(p.Code, utils.PrefixPayment), "code %s", p.Code)
	assert.Equal(t, models.PaymentPartial, p.Kind)
	assert.Equal(t, models.GuestParty(f.guest.ID), p.Payer)
	assert.Equal(t, "AUTH-991", p.Reference)
	assert.True(t, p.PaidAt.Equal(f.now))

	rest, err := f.payments.Register(ctx(), stay.ID, services.PaymentInput{Amount: money("140.00"), Method: models.PaymentCash})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFull, rest.Kind)

	st := f.statement(stay.ID)
	assertMoney(t, "240.00", st.Paid)
	assertMoney(t, "0.00", st.BalanceDue)

	list, err := f.payments.GetByStay(ctx(), stay.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestPaymentService_RejectsOverpayment(t *testing.T) {
	f := newFixture(t, "80.00")
	stay := f.stay("2024-01-01", dayPtr("2024-01-04"))

	_, err := f.payments.Register(ctx(), stay.ID, services.PaymentInput{Amount: money("240.01"), Method: models.PaymentCash})

	var oerr *services.OverpaymentError
	require.True(t, errors.As(err, &oerr), "got %v", err)
	assertMoney(t, "240.00", oerr.BalanceDue)
	var count int64
	f.db.Model(&models.Payment{}).Count(&count)
	assert.Zero(t, count)
}

func TestPaymentService_Validation(t *testing.T) {
	f := newFixture(t, "80.00")
	stay := f.stay("2024-01-01", dayPtr("2024-01-04"))
	cases := []struct {
		name  string
		in    services.PaymentInput
		field string
	}{
		{"zero amount", services.PaymentInput{Method: models.PaymentCash}, "amount"},
		{"fractional cents", services.PaymentInput{Amount: money("1.005"), Method: models.PaymentCash}, "amount"},
		{"unknown method", services.PaymentInput{Amount: money("10"), Method: "bitcoin"}, "method"},
		{"unknown kind", services.PaymentInput{Amount: money("10"), Method: models.PaymentCheck, Kind: "deposit"}, "kind"},
		{"company payer without company", services.PaymentInput{Amount: money("10"), Method: models.PaymentCheck, Payer: models.PartyCompany}, "payer"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.payments.Register(ctx(), stay.ID, tc.in)
			var verr *services.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestPaymentService_SettlesDebtAfterCheckout(t *testing.T) {
	f := newFixture(t, "80.00")
	stay := f.stay("2024-01-01", dayPtr("2024-01-04"))
	_, err := f.stays.Checkout(ctx(), stay.ID, services.CheckoutInput{})
	require.NoError(t, err)

	_, err = f.payments.Register(ctx(), stay.ID, services.PaymentInput{Amount: money("200.00"), Method: models.PaymentBankTransfer})
	require.NoError(t, err)
	var stored models.Stay
	require.NoError(t, f.db.First(&stored, stay.ID).Error)
	assert.True(t, stored.HasDebt)
	assertMoney(t, "40.00", stored.DebtAmount)

	_, err = f.payments.Register(ctx(), stay.ID, services.PaymentInput{Amount: money("40.00"), Method: models.PaymentBankTransfer})
	require.NoError(t, err)
	require.NoError(t, f.db.First(&stored, stay.ID).Error)
	assert.False(t, stored.HasDebt)
	assert.True(t, stored.DebtAmount.IsZero())
	assert.True(t, stored.Debtor.IsZero())
}

func TestPaymentService_CancelledStayRejectsPayments(t *testing.T) {
	f := newFixture(t, "80.00")
	stay := f.stay("2024-01-01", dayPtr("2024-01-04"))
	_, err := f.stays.Cancel(ctx(), stay.ID)
	require.NoError(t, err)

	_, err = f.payments.Register(ctx(), stay.ID, services.PaymentInput{Amount: money("10.00"), Method: models.PaymentCash})
	var serr *services.StateError
	assert.True(t, errors.As(err, &serr), "got %v", err)
}
