package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-frontdesk/models"
	"hotel-frontdesk/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReservationInput struct {
	GuestID          uint                `json:"guest_id"`
	CompanyID        *uint               `json:"company_id"`
	RoomID           uint                `json:"room_id"`
	ExpectedCheckIn  time.Time           `json:"expected_check_in"`
	ExpectedCheckOut *time.Time          `json:"expected_check_out"`
	Guests           int                 `json:"guests"`
	AgreedPrice      decimal.NullDecimal `json:"agreed_price"`
	Notes            string              `json:"notes"`
	CreatedBy        string              `json:"-"`
}

// Range validates the dates and returns them as a DateRange.
func (in ReservationInput) Range() (models.DateRange, error) {
	return bookingRange(in.ExpectedCheckIn, in.ExpectedCheckOut, "expected_check_in", "expected_check_out")
}

type ReservationFilter struct {
	State  models.ReservationState
	RoomID uint
}

// ReservationService books rooms ahead of arrival and turns reservations into stays.
type ReservationService struct {
	DB  *gorm.DB
	Now Clock
}

func NewReservationService(db *gorm.DB, clock Clock) *ReservationService {
	if clock == nil {
		clock = SystemClock
	}
	return &ReservationService{DB: db, Now: clock}
}

// ----------------------------------------------------
// CREATE
// ----------------------------------------------------
func (s *ReservationService) Create(ctx context.Context, in ReservationInput) (*models.Reservation, error) {
	r, err := in.Range()
	if err != nil {
		return nil, err
	}
	if in.AgreedPrice.Valid && in.AgreedPrice.Decimal.IsNegative() {
		return nil, invalid("agreed_price", "must not be negative")
	}

	res := models.Reservation{
		GuestID:          in.GuestID,
		CompanyID:        in.CompanyID,
		RoomID:           in.RoomID,
		ExpectedCheckIn:  r.Start(),
		ExpectedCheckOut: r.EndPtr(),
		Guests:           in.Guests,
		State:            models.ReservationPending,
		AgreedPrice:      in.AgreedPrice,
		Notes:            in.Notes,
		CreatedBy:        in.CreatedBy,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkParties(tx, in.GuestID, in.CompanyID); err != nil {
			return err
		}
		// The room row lock serialises concurrent bookings of the same room.
		room, err := lockRoom(tx, in.RoomID)
		if err != nil {
			return asInputErr(err, "room_id")
		}
		if err := checkGuestCount(room, in.Guests); err != nil {
			return err
		}
		if err := checkAvailability(tx, room, r, 0, 0); err != nil {
			return err
		}
		res.AgreedPrice = defaultAgreedPrice(in.AgreedPrice, room.RoomType.NightlyPrice, r)
		return createWithCode(tx, utils.PrefixReservation, func(c string) { res.Code = c }, &res)
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("reservation created", zap.String("code", res.Code), zap.Uint("room_id", res.RoomID))
	return s.GetByID(ctx, res.ID)
}

// VerifyAvailability reports whether the room is free for r, ignoring the given reservation and stay.
func (s *ReservationService) VerifyAvailability(ctx context.Context, roomID uint, r models.DateRange, excludeReservation, excludeStay uint) error {
	db := s.DB.WithContext(ctx)
	room, err := loadRoom(db, roomID)
	if err != nil {
		return err
	}
	return checkAvailability(db, room, r, excludeReservation, excludeStay)
}

// ----------------------------------------------------
// UPDATE / STATE CHANGES
// ----------------------------------------------------

// Update rewrites a pending or confirmed reservation; availability is re-checked against everything else.
func (s *ReservationService) Update(ctx context.Context, id uint, in ReservationInput) (*models.Reservation, error) {
	r, err := in.Range()
	if err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, id)
		if err != nil {
			return err
		}
		if res.State.Terminal() {
			return reservationStateErr(res, "update")
		}
		if err := checkParties(tx, in.GuestID, in.CompanyID); err != nil {
			return err
		}
		room, err := lockRoom(tx, in.RoomID)
		if err != nil {
			return asInputErr(err, "room_id")
		}
		if err := checkGuestCount(room, in.Guests); err != nil {
			return err
		}
		if err := checkAvailability(tx, room, r, res.ID, 0); err != nil {
			return err
		}
		return tx.Model(&models.Reservation{}).Where("id = ?", id).Select(
			"guest_id", "company_id", "room_id", "expected_check_in", "expected_check_out",
			"guests", "agreed_price", "notes",
		).Updates(models.Reservation{
			GuestID:          in.GuestID,
			CompanyID:        in.CompanyID,
			RoomID:           in.RoomID,
			ExpectedCheckIn:  r.Start(),
			ExpectedCheckOut: r.EndPtr(),
			Guests:           in.Guests,
			AgreedPrice:      defaultAgreedPrice(in.AgreedPrice, room.RoomType.NightlyPrice, r),
			Notes:            in.Notes,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *ReservationService) Confirm(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.transition(ctx, id, "confirm", func(res models.Reservation) error {
		if res.State != models.ReservationPending {
			return reservationStateErr(res, "confirm")
		}
		return nil
	}, models.ReservationConfirmed)
}

// Cancel is refused once the reservation is converted or already cancelled.
func (s *ReservationService) Cancel(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.transition(ctx, id, "cancel", func(res models.Reservation) error {
		if res.State.Terminal() {
			return reservationStateErr(res, "cancel")
		}
		return nil
	}, models.ReservationCancelled)
}

func (s *ReservationService) transition(ctx context.Context, id uint, op string, guard func(models.Reservation) error, to models.ReservationState) (*models.Reservation, error) {
	var code string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, id)
		if err != nil {
			return err
		}
		if err := guard(res); err != nil {
			return err
		}
		code = res.Code
		return tx.Model(&models.Reservation{}).Where("id = ?", id).Update("state", to).Error
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("reservation "+op, zap.String("code", code), zap.String("state", string(to)))
	return s.GetByID(ctx, id)
}

// ConvertToStay turns a pending or confirmed reservation into an in-progress stay.
// The stay insert, the reservation update and the room flip commit together or not at all.
func (s *ReservationService) ConvertToStay(ctx context.Context, id uint, stayType models.StayType, actor string) (*models.Stay, error) {
	if stayType == "" {
		stayType = models.StayContinuous
	}
	if !stayType.Valid() {
		return nil, invalid("stay_type", "unknown stay type %q", stayType)
	}
	var stay models.Stay
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, id)
		if err != nil {
			return err
		}
		if res.State.Terminal() {
			return reservationStateErr(res, "convert")
		}
		room, err := lockRoom(tx, res.RoomID)
		if err != nil {
			return err
		}
		r := res.Range()
		if err := checkAvailability(tx, room, r, res.ID, 0); err != nil {
			return err
		}

		stay = models.Stay{
			Type:      stayType,
			GuestID:   res.GuestID,
			CompanyID: res.CompanyID,
			RoomID:    res.RoomID,
			CheckIn:   r.Start(),
			CheckOut:  r.EndPtr(),
			Guests:    res.Guests,
			State:     models.StayInProgress,
			Notes:     res.Notes,
			CreatedBy: actor,
		}
		if res.AgreedPrice.Valid {
			stay.RoomTotal = res.AgreedPrice.Decimal
		} else {
			stay = stay.Repriced(room.RoomType.NightlyPrice, models.Date(s.Now()))
		}
		if err := createWithCode(tx, stayType.CodePrefix(), func(c string) { stay.Code = c }, &stay); err != nil {
			return err
		}
		if err := tx.Model(&models.Reservation{}).Where("id = ?", res.ID).Updates(map[string]interface{}{
			"state":   models.ReservationConverted,
			"stay_id": stay.ID,
		}).Error; err != nil {
			return fmt.Errorf("failed to mark reservation %s converted: %w", res.Code, err)
		}
		return markOccupied(tx, room)
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("reservation converted", zap.Uint("reservation_id", id), zap.String("stay", stay.Code))
	return &stay, nil
}

// ----------------------------------------------------
// READ
// ----------------------------------------------------
func (s *ReservationService) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	err := s.DB.WithContext(ctx).
		Preload("Guest").Preload("Company").Preload("Room.RoomType").
		First(&res, id).Error
	if err != nil {
		return nil, findErr(err, "reservation", id)
	}
	return &res, nil
}

func (s *ReservationService) GetAll(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	var list []models.Reservation
	q := s.DB.WithContext(ctx).Preload("Guest").Preload("Room").Order("expected_check_in DESC, id DESC")
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.RoomID != 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}
	err := q.Find(&list).Error
	return list, err
}

// ----------------------------------------------------
// helpers shared with the stay engine
// ----------------------------------------------------

func lockReservation(tx *gorm.DB, id uint) (models.Reservation, error) {
	var res models.Reservation
	if err := tx.Clauses(forUpdate).First(&res, id).Error; err != nil {
		return res, findErr(err, "reservation", id)
	}
	return res, nil
}

func reservationStateErr(res models.Reservation, op string) error {
	return &StateError{Entity: "reservation", Reference: res.Code, State: string(res.State), Op: op}
}

// bookingRange validates a check-in/check-out pair; the check-out must be strictly after the check-in.
func bookingRange(checkIn time.Time, checkOut *time.Time, inField, outField string) (models.DateRange, error) {
	if checkIn.IsZero() {
		return models.DateRange{}, invalid(inField, "is required")
	}
	r := models.RangeOf(checkIn, checkOut)
	if n, ok := r.Nights(); ok && n <= 0 {
		return r, invalid(outField, "must be after %s", inField)
	}
	return r, nil
}

// defaultAgreedPrice is the explicit price, or rate × nights when the range is definite.
func defaultAgreedPrice(explicit decimal.NullDecimal, rate decimal.Decimal, r models.DateRange) decimal.NullDecimal {
	if explicit.Valid {
		return explicit
	}
	if n, ok := r.Nights(); ok && n > 0 {
		return decimal.NewNullDecimal(rate.Mul(decimal.NewFromInt(int64(n))))
	}
	return decimal.NullDecimal{}
}

func checkGuestCount(room models.Room, guests int) error {
	if guests < 1 {
		return invalid("guests", "must be at least 1")
	}
	if room.RoomType.Capacity > 0 && guests > room.RoomType.Capacity {
		return invalid("guests", "room %s holds at most %d guests", room.Number, room.RoomType.Capacity)
	}
	return nil
}

func checkParties(tx *gorm.DB, guestID uint, companyID *uint) error {
	if guestID == 0 {
		return invalid("guest_id", "is required")
	}
	if err := tx.First(&models.Guest{}, guestID).Error; err != nil {
		return asInputErr(findErr(err, "guest", guestID), "guest_id")
	}
	if companyID != nil {
		if err := tx.First(&models.Company{}, *companyID).Error; err != nil {
			return asInputErr(findErr(err, "company", *companyID), "company_id")
		}
	}
	return nil
}

// asInputErr reports a missing referenced row as a ValidationError on field.
func asInputErr(err error, field string) error {
	if errors.Is(err, ErrNotFound) {
		return invalid(field, "%s", strings.TrimSuffix(err.Error(), ": "+ErrNotFound.Error())+" does not exist")
	}
	return err
}
