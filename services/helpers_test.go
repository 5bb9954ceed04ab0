package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"hotel-frontdesk/config"
	"hotel-frontdesk/models"
	"hotel-frontdesk/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, config.Migrate(db))
	return db
}

func ctx() context.Context { return context.Background() }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), msgAndArgs...)
}

// fixture is a small hotel: one room type, one room, one guest and one company,
// with a clock the test can move.
type fixture struct {
	t        *testing.T
	db       *gorm.DB
	now      time.Time
	roomType models.RoomType
	room     models.Room
	guest    models.Guest
	company  models.Company

	rooms        *services.RoomService
	reservations *services.ReservationService
	stays        *services.StayService
	ledger       *services.LedgerService
	payments     *services.PaymentService
	invoices     *services.InvoiceService
}

func newFixture(t *testing.T, nightlyRate string) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{t: t, db: db, now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return f.now }

	f.roomType = models.RoomType{Name: "Standard", NightlyPrice: money(nightlyRate), Capacity: 2}
	require.NoError(t, db.Create(&f.roomType).Error)
	f.room = f.addRoom("101")
	f.company = models.Company{Name: "Acme Travel", TaxID: "ACM010101AAA", Active: true}
	require.NoError(t, db.Create(&f.company).Error)
	f.guest = models.Guest{FirstName: "Ana", LastName: "Lopez", DocumentType: models.DocumentPassport, DocumentNumber: "P1234567"}
	require.NoError(t, db.Create(&f.guest).Error)

	f.rooms = services.NewRoomService(db)
	f.reservations = services.NewReservationService(db, clock)
	f.stays = services.NewStayService(db, clock)
	f.ledger = services.NewLedgerService(db)
	f.payments = services.NewPaymentService(db, clock)
	f.invoices = services.NewInvoiceService(db, config.DefaultTaxRate, clock)
	return f
}

func (f *fixture) addRoom(number string) models.Room {
	f.t.Helper()
	room := models.Room{Number: number, RoomTypeID: f.roomType.ID, Floor: 1, State: models.RoomAvailable}
	require.NoError(f.t, f.db.Create(&room).Error)
	return room
}

func (f *fixture) roomState(id uint) models.RoomState {
	f.t.Helper()
	var room models.Room
	require.NoError(f.t, f.db.First(&room, id).Error)
	return room.State
}

// stay checks a guest into f.room directly.
func (f *fixture) stay(checkIn string, checkOut *time.Time) *models.Stay {
	f.t.Helper()
	stay, err := f.stays.Create(ctx(), services.StayInput{
		GuestID:  f.guest.ID,
		RoomID:   f.room.ID,
		CheckIn:  day(checkIn),
		CheckOut: checkOut,
		Guests:   1,
	})
	require.NoError(f.t, err)
	return stay
}

func (f *fixture) product(code string, price string, stock int) models.Product {
	f.t.Helper()
	var cat models.ProductCategory
	require.NoError(f.t, f.db.FirstOrCreate(&cat, models.ProductCategory{Name: "Minibar"}).Error)
	p := models.Product{Code: code, Name: "Item " + code, CategoryID: cat.ID, Price: money(price), Stock: stock, MinStock: 1, Unit: "unit", Active: true}
	require.NoError(f.t, f.db.Create(&p).Error)
	return p
}

func (f *fixture) statement(stayID uint) *models.Statement {
	f.t.Helper()
	st, err := f.stays.Statement(ctx(), stayID)
	require.NoError(f.t, err)
	return st
}
