package services

import (
	"context"
	"fmt"
	"time"

	"hotel-frontdesk/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StayInput struct {
	Type      models.StayType  `json:"type"`
	GuestID   uint             `json:"guest_id"`
	CompanyID *uint            `json:"company_id"`
	RoomID    uint             `json:"room_id"`
	CheckIn   time.Time        `json:"check_in"`
	CheckOut  *time.Time       `json:"check_out"`
	Guests    int              `json:"guests"`
	State     models.StayState `json:"state"`
	Notes     string           `json:"notes"`
	CreatedBy string           `json:"-"`
}

// CheckoutInput closes a stay. With PayInFull false any remaining balance becomes debt
// owed by Debtor, or by the stay's company (else its guest) when Debtor is nil.
type CheckoutInput struct {
	PayInFull bool              `json:"pay_in_full"`
	Debtor    *models.PartyKind `json:"debtor"`
	DebtNotes string            `json:"debt_notes"`
}

type CheckoutResult struct {
	Stay      models.Stay      `json:"stay"`
	Statement models.Statement `json:"statement"`
}

type StayFilter struct {
	State     models.StayState
	RoomID    uint
	GuestID   uint
	CompanyID uint
	WithDebt  bool
	// From and To bound the check-in date, both inclusive.
	From *time.Time
	To   *time.Time
}

// StayService is the stay engine: lifecycle, pricing, balance and checkout.
type StayService struct {
	DB  *gorm.DB
	Now Clock
}

func NewStayService(db *gorm.DB, clock Clock) *StayService {
	if clock == nil {
		clock = SystemClock
	}
	return &StayService{DB: db, Now: clock}
}

func (s *StayService) today() time.Time { return models.Date(s.Now()) }

// ----------------------------------------------------
// CREATE
// ----------------------------------------------------

// Create registers a walk-in stay. The initial state defaults to in_progress, which occupies the room.
func (s *StayService) Create(ctx context.Context, in StayInput) (*models.Stay, error) {
	if in.Type == "" {
		in.Type = models.StayContinuous
	}
	if !in.Type.Valid() {
		return nil, invalid("type", "unknown stay type %q", in.Type)
	}
	if in.State == "" {
		in.State = models.StayInProgress
	}
	switch in.State {
	case models.StayPending, models.StayConfirmed, models.StayInProgress:
	default:
		return nil, invalid("state", "a stay cannot start as %q", in.State)
	}
	r, err := bookingRange(in.CheckIn, in.CheckOut, "check_in", "check_out")
	if err != nil {
		return nil, err
	}

	stay := models.Stay{
		Type:      in.Type,
		GuestID:   in.GuestID,
		CompanyID: in.CompanyID,
		RoomID:    in.RoomID,
		CheckIn:   r.Start(),
		CheckOut:  r.EndPtr(),
		Guests:    in.Guests,
		State:     in.State,
		Notes:     in.Notes,
		CreatedBy: in.CreatedBy,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
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
		if err := checkAvailability(tx, room, r, 0, 0); err != nil {
			return err
		}
		stay = stay.Repriced(room.RoomType.NightlyPrice, s.today())
		if err := createWithCode(tx, in.Type.CodePrefix(), func(c string) { stay.Code = c }, &stay); err != nil {
			return err
		}
		if stay.State == models.StayInProgress {
			return markOccupied(tx, room)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("stay created", zap.String("code", stay.Code), zap.String("state", string(stay.State)))
	return s.GetByID(ctx, stay.ID)
}

// ----------------------------------------------------
// LIFECYCLE
// ----------------------------------------------------

// Confirm moves a pending stay to confirmed, from which point it holds the room.
func (s *StayService) Confirm(ctx context.Context, id uint) (*models.Stay, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stay, err := lockStay(tx, id)
		if err != nil {
			return err
		}
		if stay.State != models.StayPending {
			return stayStateErr(stay, "confirm")
		}
		room, err := lockRoom(tx, stay.RoomID)
		if err != nil {
			return err
		}
		if err := checkAvailability(tx, room, stay.Range(), 0, stay.ID); err != nil {
			return err
		}
		return setStayState(tx, stay.ID, models.StayConfirmed)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Start checks the guests in: the stay goes in_progress and the room becomes occupied.
func (s *StayService) Start(ctx context.Context, id uint) (*models.Stay, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stay, err := lockStay(tx, id)
		if err != nil {
			return err
		}
		if stay.State != models.StayPending && stay.State != models.StayConfirmed {
			return stayStateErr(stay, "start")
		}
		room, err := lockRoom(tx, stay.RoomID)
		if err != nil {
			return err
		}
		if stay.State == models.StayPending {
			if err := checkAvailability(tx, room, stay.Range(), 0, stay.ID); err != nil {
				return err
			}
		}
		if err := markOccupied(tx, room); err != nil {
			return err
		}
		return setStayState(tx, stay.ID, models.StayInProgress)
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("stay started", zap.Uint("stay_id", id))
	return s.GetByID(ctx, id)
}

// Cancel is allowed from any non-terminal state; an in-progress stay gives its room back.
func (s *StayService) Cancel(ctx context.Context, id uint) (*models.Stay, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stay, err := lockStay(tx, id)
		if err != nil {
			return err
		}
		if stay.State.Terminal() {
			return stayStateErr(stay, "cancel")
		}
		if stay.State == models.StayInProgress {
			room, err := lockRoom(tx, stay.RoomID)
			if err != nil {
				return err
			}
			if err := markAvailable(tx, room); err != nil {
				return err
			}
		}
		return setStayState(tx, stay.ID, models.StayCancelled)
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("stay cancelled", zap.Uint("stay_id", id))
	return s.GetByID(ctx, id)
}

// SetCheckOut sets, moves or clears (nil) the check-out date of an open stay and reprices it.
func (s *StayService) SetCheckOut(ctx context.Context, id uint, checkOut *time.Time) (*models.Stay, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stay, err := requireOpenStay(tx, id, "change the check-out of")
		if err != nil {
			return err
		}
		r, err := bookingRange(stay.CheckIn, checkOut, "check_in", "check_out")
		if err != nil {
			return err
		}
		room, err := lockRoom(tx, stay.RoomID)
		if err != nil {
			return err
		}
		if err := checkAvailability(tx, room, r, 0, stay.ID); err != nil {
			return err
		}
		stay.CheckOut = r.EndPtr()
		stay = stay.Repriced(room.RoomType.NightlyPrice, s.today())
		return tx.Model(&models.Stay{}).Where("id = ?", stay.ID).Updates(map[string]interface{}{
			"check_out":  stay.CheckOut,
			"room_total": stay.RoomTotal,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// ----------------------------------------------------
// BALANCE / CHECKOUT
// ----------------------------------------------------

// Statement computes the stay's balance from its current ledger, repricing open-ended stays as of today.
func (s *StayService) Statement(ctx context.Context, id uint) (*models.Statement, error) {
	db := s.DB.WithContext(ctx)
	stay, err := requireStay(db, id)
	if err != nil {
		return nil, err
	}
	st, _, err := statementFor(db, stay, s.today())
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Checkout finalises the price, settles or records debt, finishes the stay and sends the room to cleaning.
func (s *StayService) Checkout(ctx context.Context, id uint, in CheckoutInput) (*CheckoutResult, error) {
	var result CheckoutResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stay, err := lockStay(tx, id)
		if err != nil {
			return err
		}
		if stay.State != models.StayConfirmed && stay.State != models.StayInProgress {
			return stayStateErr(stay, "check out")
		}
		room, err := lockRoom(tx, stay.RoomID)
		if err != nil {
			return err
		}

		st, stay, err := statementFor(tx, stay, s.today())
		if err != nil {
			return err
		}

		if st.BalanceDue.IsPositive() && !in.PayInFull {
			debtor := stay.DefaultDebtor()
			if in.Debtor != nil {
				if debtor, err = partyOf(stay, *in.Debtor, "debtor"); err != nil {
					return err
				}
			}
			stay.HasDebt = true
			stay.DebtAmount = st.BalanceDue
			stay.Debtor = debtor
			stay.DebtNotes = in.DebtNotes
		} else {
			clearDebt(&stay)
		}

		now := s.Now()
		stay.State = models.StayFinished
		stay.CheckedOutAt = &now
		if err := tx.Model(&models.Stay{}).Where("id = ?", stay.ID).Updates(map[string]interface{}{
			"room_total":     stay.RoomTotal,
			"has_debt":       stay.HasDebt,
			"debt_amount":    stay.DebtAmount,
			"debtor_kind":    stay.Debtor.Kind,
			"debtor_ref_id":  stay.Debtor.RefID,
			"debt_notes":     stay.DebtNotes,
			"state":          stay.State,
			"checked_out_at": stay.CheckedOutAt,
		}).Error; err != nil {
			return fmt.Errorf("failed to finish stay %s: %w", stay.Code, err)
		}
		if err := markCleaning(tx, room); err != nil {
			return err
		}
		result = CheckoutResult{Stay: stay, Statement: st}
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("stay checked out",
		zap.String("code", result.Stay.Code),
		zap.Bool("has_debt", result.Stay.HasDebt),
		zap.String("debt", result.Stay.DebtAmount.StringFixed(2)))
	return &result, nil
}

// ----------------------------------------------------
// READ
// ----------------------------------------------------

// GetByID returns the stay with its room total current as of today.
func (s *StayService) GetByID(ctx context.Context, id uint) (*models.Stay, error) {
	var stay models.Stay
	err := s.DB.WithContext(ctx).
		Preload("Guest").Preload("Company").Preload("Room.RoomType").
		First(&stay, id).Error
	if err != nil {
		return nil, findErr(err, "stay", id)
	}
	if stay.Range().IsOpenEnded() && !stay.State.Terminal() {
		stay = stay.Repriced(stay.Room.RoomType.NightlyPrice, s.today())
	}
	return &stay, nil
}

func (s *StayService) GetAll(ctx context.Context, f StayFilter) ([]models.Stay, error) {
	var stays []models.Stay
	q := s.DB.WithContext(ctx).Preload("Guest").Preload("Room.RoomType").Order("check_in DESC, id DESC")
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.RoomID != 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if f.GuestID != 0 {
		q = q.Where("guest_id = ?", f.GuestID)
	}
	if f.CompanyID != 0 {
		q = q.Where("company_id = ?", f.CompanyID)
	}
	if f.WithDebt {
		q = q.Where("has_debt = ?", true)
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, invalid("to", "must not be before from")
	}
	if f.From != nil {
		q = q.Where("check_in >= ?", models.Date(*f.From))
	}
	if f.To != nil {
		q = q.Where("check_in < ?", models.Date(*f.To).AddDate(0, 0, 1))
	}
	if err := q.Find(&stays).Error; err != nil {
		return nil, err
	}
	today := s.today()
	for i := range stays {
		if stays[i].Range().IsOpenEnded() && !stays[i].State.Terminal() {
			stays[i] = stays[i].Repriced(stays[i].Room.RoomType.NightlyPrice, today)
		}
	}
	return stays, nil
}

func setStayState(tx *gorm.DB, id uint, state models.StayState) error {
	return tx.Model(&models.Stay{}).Where("id = ?", id).Update("state", state).Error
}

func stayStateErr(stay models.Stay, op string) error {
	return &StateError{Entity: "stay", Reference: stay.Code, State: string(stay.State), Op: op}
}

func clearDebt(stay *models.Stay) {
	stay.HasDebt = false
	stay.DebtAmount = decimal.Zero
	stay.Debtor = models.Party{}
	stay.DebtNotes = ""
}

// partyOf resolves a party kind against the stay: the guest, or the stay's company when it has one.
func partyOf(stay models.Stay, kind models.PartyKind, field string) (models.Party, error) {
	switch kind {
	case models.PartyGuest:
		return models.GuestParty(stay.GuestID), nil
	case models.PartyCompany:
		if stay.CompanyID == nil {
			return models.Party{}, invalid(field, "stay %s has no company", stay.Code)
		}
		return models.CompanyParty(*stay.CompanyID), nil
	}
	return models.Party{}, invalid(field, "unknown party %q", kind)
}
