package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-frontdesk/models"
	"hotel-frontdesk/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentInput struct {
	Amount    decimal.Decimal      `json:"amount"`
	Method    models.PaymentMethod `json:"method"`
	Kind      models.PaymentKind   `json:"kind"`
	Payer     models.PartyKind     `json:"payer"`
	Reference string               `json:"reference"`
	Notes     string               `json:"notes"`
	CreatedBy string               `json:"-"`
}

func (in *PaymentInput) normalize() error {
	in.Reference = strings.TrimSpace(in.Reference)
	if !in.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	if !in.Amount.Equal(in.Amount.Round(2)) {
		return invalid("amount", "must have at most two decimals")
	}
	if !in.Method.Valid() {
		return invalid("method", "unknown payment method %q", in.Method)
	}
	if in.Kind != "" && !in.Kind.Valid() {
		return invalid("kind", "unknown payment kind %q", in.Kind)
	}
	if in.Payer == "" {
		in.Payer = models.PartyGuest
	}
	return nil
}

// PaymentService records money received against a stay's balance.
type PaymentService struct {
	DB  *gorm.DB
	Now Clock
}

func NewPaymentService(db *gorm.DB, clock Clock) *PaymentService {
	if clock == nil {
		clock = SystemClock
	}
	return &PaymentService{DB: db, Now: clock}
}

// Register books a payment. It never exceeds the balance due; on a finished stay it pays down
// the recorded debt, which is cleared once the balance reaches zero.
func (s *PaymentService) Register(ctx context.Context, stayID uint, in PaymentInput) (*models.Payment, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	var payment models.Payment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stay, err := lockStay(tx, stayID)
		if err != nil {
			return err
		}
		if stay.State == models.StayCancelled {
			return stayStateErr(stay, "register a payment on")
		}
		payer, err := partyOf(stay, in.Payer, "payer")
		if err != nil {
			return err
		}
		st, _, err := statementFor(tx, stay, models.Date(s.Now()))
		if err != nil {
			return err
		}
		if in.Amount.GreaterThan(st.BalanceDue) {
			return &OverpaymentError{Amount: in.Amount, BalanceDue: st.BalanceDue}
		}
		kind := in.Kind
		if kind == "" {
			kind = models.PaymentPartial
			if in.Amount.Equal(st.BalanceDue) {
				kind = models.PaymentFull
			}
		}

		payment = models.Payment{
			StayID:    stay.ID,
			Amount:    in.Amount,
			Method:    in.Method,
			Kind:      kind,
			Payer:     payer,
			Reference: in.Reference,
			Notes:     in.Notes,
			PaidAt:    s.Now(),
			CreatedBy: in.CreatedBy,
		}
		if err := createWithCode(tx, utils.PrefixPayment, func(c string) { payment.Code = c }, &payment); err != nil {
			return err
		}

		if stay.State == models.StayFinished && stay.HasDebt {
			remaining := st.BalanceDue.Sub(in.Amount)
			if remaining.IsPositive() {
				stay.DebtAmount = remaining
			} else {
				clearDebt(&stay)
			}
			if err := tx.Model(&models.Stay{}).Where("id = ?", stay.ID).Updates(map[string]interface{}{
				"has_debt":      stay.HasDebt,
				"debt_amount":   stay.DebtAmount,
				"debtor_kind":   stay.Debtor.Kind,
				"debtor_ref_id": stay.Debtor.RefID,
				"debt_notes":    stay.DebtNotes,
			}).Error; err != nil {
				return fmt.Errorf("failed to update debt of stay %s: %w", stay.Code, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("payment registered",
		zap.String("code", payment.Code),
		zap.Uint("stay_id", stayID),
		zap.String("amount", payment.Amount.StringFixed(2)),
		zap.String("method", string(payment.Method)))
	return &payment, nil
}

func (s *PaymentService) GetByStay(ctx context.Context, stayID uint) ([]models.Payment, error) {
	db := s.DB.WithContext(ctx)
	if _, err := requireStay(db, stayID); err != nil {
		return nil, err
	}
	var payments []models.Payment
	err := db.Where("stay_id = ?", stayID).Order("paid_at, id").Find(&payments).Error
	return payments, err
}
