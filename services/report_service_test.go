package services_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportService_AccountingRows(t *testing.T) {
	f := newFixture(t, "80.00")
	stay := f.stay("2024-01-01", dayPtr("2024-01-04"))

	payment, err := f.payments.Register(ctx(), stay.ID, services.PaymentInput{Amount: money("100.00"), Method: models.PaymentBankTransfer, Reference: "TRX-1"})
	require.NoError(t, err)
	f.now = f.now.Add(time.Hour)
	invoice, err := f.invoices.Generate(ctx(), stay.ID)
	require.NoError(t, err)

	export := services.NewExportService(f.db)
	rows, err := export.AccountingRows(ctx(), day("2024-01-01"), day("2024-01-01"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "payment", rows[0].Type)
	assert.Equal(t, payment.Code, rows[0].Code)
	assert.Equal(t, stay.Code, rows[0].StayCode)
	assert.Equal(t, "100.00", rows[0].Total)
	assert.Equal(t, "TRX-1", rows[0].Reference)

	assert.Equal(t, "invoice", rows[1].Type)
	assert.Equal(t, invoice.Code, rows[1].Code)
	assert.Equal(t, "240.00", rows[1].Subtotal)
	assert.Equal(t, "38.40", rows[1].Tax)
	assert.Equal(t, "278.40", rows[1].Total)

	rows, err = export.AccountingRows(ctx(), day("2024-01-02"), day("2024-01-31"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExportService_AccountingCSV(t *testing.T) {
	f := newFixture(t, "80.00")
	stay := f.stay("2024-01-01", dayPtr("2024-01-02"))
	_, err := f.payments.Register(ctx(), stay.ID, services.PaymentInput{Amount: money("80.00"), Method: models.PaymentCash})
	require.NoError(t, err)

	var buf bytes.Buffer
	export := services.NewExportService(f.db)
	require.NoError(t, export.Accounting(ctx(), &buf, day("2024-01-01"), day("2024-01-01")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,type,code,stay,method,payer,subtotal,tax,total,reference", lines[0])
	assert.Contains(t, lines[1], ",payment,")
	assert.Contains(t, lines[1], ",cash,")
}

func TestExportService_RejectsInvertedRange(t *testing.T) {
	export := services.NewExportService(newTestDB(t))
	_, err := export.AccountingRows(ctx(), day("2024-02-01"), day("2024-01-01"))
	var verr *services.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "to", verr.Field)
}

func TestDashboardService_Summary(t *testing.T) {
	f := newFixture(t, "80.00")
	f.addRoom("102")
	stay := f.stay("2024-01-01", dayPtr("2024-01-03"))
	_, err := f.payments.Register(ctx(), stay.ID, services.PaymentInput{Amount: money("60.00"), Method: models.PaymentCash})
	require.NoError(t, err)

	other := f.addRoom("103")
	_, err = f.reservations.Create(ctx(), services.ReservationInput{
		GuestID: f.guest.ID, RoomID: other.ID, ExpectedCheckIn: day("2024-01-01"), ExpectedCheckOut: dayPtr("2024-01-02"), Guests: 1,
	})
	require.NoError(t, err)
	f.product("SODA", "2.00", 0)

	dash := services.NewDashboardService(f.db, func() time.Time { return f.now })
	sum, err := dash.Summary(ctx())
	require.NoError(t, err)
	assert.EqualValues(t, 1, sum.RoomsByState[models.RoomOccupied])
	assert.EqualValues(t, 2, sum.RoomsByState[models.RoomAvailable])
	assert.EqualValues(t, 1, sum.ActiveStays)
	assert.EqualValues(t, 1, sum.PendingReservations)
	assert.EqualValues(t, 1, sum.ArrivalsToday)
	assert.EqualValues(t, 1, sum.LowStockProducts)
	assert.Zero(t, sum.StaysWithDebt)
	assertMoney(t, "60.00", sum.PaymentsToday)

	f.now = f.now.AddDate(0, 0, 2)
	_, err = f.stays.Checkout(ctx(), stay.ID, services.CheckoutInput{})
	require.NoError(t, err)
	sum, err = dash.Summary(ctx())
	require.NoError(t, err)
	assert.EqualValues(t, 1, sum.StaysWithDebt)
	assertMoney(t, "100.00", sum.OutstandingDebt)
	assert.EqualValues(t, 1, sum.RoomsByState[models.RoomCleaning])
	assert.Zero(t, sum.ActiveStays)
	assertMoney(t, "0.00", sum.PaymentsToday)
}
