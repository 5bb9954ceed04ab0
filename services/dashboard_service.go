package services

import (
	"context"

	"hotel-frontdesk/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardSummary struct {
	RoomsByState        map[models.RoomState]int64 `json:"rooms_by_state"`
	ActiveStays         int64                      `json:"active_stays"`
	PendingReservations int64                      `json:"pending_reservations"`
	ArrivalsToday       int64                      `json:"arrivals_today"`
	LowStockProducts    int64                      `json:"low_stock_products"`
	StaysWithDebt       int64                      `json:"stays_with_debt"`
	OutstandingDebt     decimal.Decimal            `json:"outstanding_debt"`
	PaymentsToday       decimal.Decimal            `json:"payments_today"`
}

// DashboardService aggregates the front-desk overview.
type DashboardService struct {
	DB  *gorm.DB
	Now Clock
}

func NewDashboardService(db *gorm.DB, clock Clock) *DashboardService {
	if clock == nil {
		clock = SystemClock
	}
	return &DashboardService{DB: db, Now: clock}
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	db := s.DB.WithContext(ctx)
	today := models.Date(s.Now())
	out := DashboardSummary{
		RoomsByState:    map[models.RoomState]int64{},
		OutstandingDebt: decimal.Zero,
		PaymentsToday:   decimal.Zero,
	}

	var rooms []models.Room
	if err := db.Select("id", "state").Find(&rooms).Error; err != nil {
		return nil, err
	}
	for _, r := range rooms {
		out.RoomsByState[r.State]++
	}

	counts := []struct {
		dst   *int64
		model any
		where string
		args  []any
	}{
		{&out.ActiveStays, &models.Stay{}, "state IN ?", []any{models.ActiveStayStates}},
		{&out.PendingReservations, &models.Reservation{}, "state = ?", []any{models.ReservationPending}},
		{&out.ArrivalsToday, &models.Reservation{}, "state IN ? AND expected_check_in = ?", []any{models.ActiveReservationStates, today}},
		{&out.LowStockProducts, &models.Product{}, "active = ? AND stock <= min_stock", []any{true}},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where(c.where, c.args...).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	var debtors []models.Stay
	if err := db.Select("id", "debt_amount").Where("has_debt = ?", true).Find(&debtors).Error; err != nil {
		return nil, err
	}
	out.StaysWithDebt = int64(len(debtors))
	for _, d := range debtors {
		out.OutstandingDebt = out.OutstandingDebt.Add(d.DebtAmount)
	}

	var payments []models.Payment
	if err := db.Select("id", "amount").Where("paid_at >= ? AND paid_at < ?", today, today.AddDate(0, 0, 1)).Find(&payments).Error; err != nil {
		return nil, err
	}
	for _, p := range payments {
		out.PaymentsToday = out.PaymentsToday.Add(p.Amount)
	}
	return &out, nil
}
