package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotel-frontdesk/models"
	"hotel-frontdesk/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InvoiceService snapshots stay totals into invoices. Each stay has at most one invoice;
// generating again recomputes it in place.
type InvoiceService struct {
	DB      *gorm.DB
	TaxRate decimal.Decimal
	Now     Clock
}

func NewInvoiceService(db *gorm.DB, taxRate decimal.Decimal, clock Clock) *InvoiceService {
	if clock == nil {
		clock = SystemClock
	}
	return &InvoiceService{DB: db, TaxRate: taxRate, Now: clock}
}

// Generate creates the stay's invoice or refreshes the existing one from the current ledger.
// Without ledger changes in between, two calls yield identical totals and the same code.
func (s *InvoiceService) Generate(ctx context.Context, stayID uint) (*models.Invoice, error) {
	var inv models.Invoice
	created := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stay, err := lockStay(tx, stayID)
		if err != nil {
			return err
		}
		if stay.State == models.StayCancelled {
			return stayStateErr(stay, "invoice")
		}
		if stay.Room, err = loadRoom(tx, stay.RoomID); err != nil {
			return err
		}
		today := models.Date(s.Now())
		stay, err = refreshOpenEnded(tx, stay, today)
		if err != nil {
			return err
		}
		l, err := loadLedger(tx, stay.ID)
		if err != nil {
			return err
		}
		hotel, err := loadSettings(tx)
		if err != nil {
			return err
		}
		st := models.BuildStatement(stay, l.consumption, l.services, l.adjustments, l.payments)
		breakdown, err := json.Marshal(invoiceLines(stay, st, l, today))
		if err != nil {
			return fmt.Errorf("failed to encode invoice breakdown: %w", err)
		}

		err = tx.Clauses(forUpdate).Where("stay_id = ?", stay.ID).First(&inv).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			inv = models.Invoice{StayID: stay.ID, IssuedAt: s.Now()}
		case err != nil:
			return fmt.Errorf("failed to look up invoice of stay %s: %w", stay.Code, err)
		}
		inv.IssuerName = hotel.Name
		inv.IssuerTaxID = hotel.TaxID
		s.fill(&inv, st, breakdown, s.rateFor(hotel))

		if created {
			return createWithCode(tx, utils.PrefixInvoice, func(c string) { inv.Code = c }, &inv)
		}
		return tx.Model(&models.Invoice{}).Where("id = ?", inv.ID).Updates(map[string]interface{}{
			"issuer_name":          inv.IssuerName,
			"issuer_tax_id":        inv.IssuerTaxID,
			"subtotal_room":        inv.SubtotalRoom,
			"subtotal_consumption": inv.SubtotalConsumption,
			"subtotal_services":    inv.SubtotalServices,
			"subtotal_adjustments": inv.SubtotalAdjustments,
			"tax_rate":             inv.TaxRate,
			"tax":                  inv.Tax,
			"total":                inv.Total,
			"breakdown":            inv.Breakdown,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	if created {
		zap.L().Info("invoice issued", zap.String("code", inv.Code), zap.Uint("stay_id", stayID), zap.String("total", inv.Total.StringFixed(2)))
	} else {
		zap.L().Info("invoice regenerated", zap.String("code", inv.Code), zap.String("total", inv.Total.StringFixed(2)))
	}
	return s.GetByID(ctx, inv.ID)
}

// rateFor prefers the rate stored in the hotel settings over the configured one.
func (s *InvoiceService) rateFor(hotel models.HotelSetting) decimal.Decimal {
	if hotel.TaxRate.Valid {
		return hotel.TaxRate.Decimal
	}
	return s.TaxRate
}

// fill computes the stored figures: tax applies to room, consumption, services and adjustments.
func (s *InvoiceService) fill(inv *models.Invoice, st models.Statement, breakdown []byte, rate decimal.Decimal) {
	inv.SubtotalRoom = st.RoomTotal.Round(2)
	inv.SubtotalConsumption = st.ConsumptionSubtotal.Round(2)
	inv.SubtotalServices = st.ServicesSubtotal.Round(2)
	inv.SubtotalAdjustments = st.AdjustmentsSubtotal.Round(2)
	preTax := inv.SubtotalRoom.Add(inv.SubtotalConsumption).Add(inv.SubtotalServices).Add(inv.SubtotalAdjustments)
	inv.TaxRate = rate
	inv.Tax = preTax.Mul(rate).Round(2)
	inv.Total = preTax.Add(inv.Tax)
	inv.Breakdown = datatypes.JSON(breakdown)
}

func invoiceLines(stay models.Stay, st models.Statement, l ledger, today time.Time) []models.InvoiceLine {
	lines := make([]models.InvoiceLine, 0, 1+len(l.consumption)+len(l.services)+len(st.Adjustments))

	nights, ok := stay.Range().Nights()
	if !ok {
		end := today
		if stay.CheckedOutAt != nil {
			end = *stay.CheckedOutAt
		}
		nights = models.DaysBetween(stay.CheckIn, end) + 1
	}
	if nights < 1 {
		nights = 1
	}
	lines = append(lines, models.InvoiceLine{
		Kind:        "room",
		Description: fmt.Sprintf("Room %s (%s)", stay.Room.Number, stay.Code),
		Quantity:    nights,
		UnitPrice:   st.RoomTotal.Div(decimal.NewFromInt(int64(nights))).Round(2),
		Amount:      st.RoomTotal.Round(2),
	})
	for _, c := range l.consumption {
		lines = append(lines, models.InvoiceLine{
			Kind:        "consumption",
			Description: c.Product.Name,
			Quantity:    c.Quantity,
			UnitPrice:   c.UnitPrice,
			Amount:      c.Subtotal,
		})
	}
	for _, sv := range l.services {
		lines = append(lines, models.InvoiceLine{
			Kind:        "service",
			Description: sv.ServiceType.Name,
			Quantity:    sv.Quantity,
			UnitPrice:   sv.Price,
			Amount:      sv.Subtotal,
		})
	}
	for _, a := range st.Adjustments {
		if !a.Active {
			continue
		}
		amount := a.ComputedAmount.Round(2)
		if a.Kind == models.AdjustmentDiscount {
			amount = amount.Neg()
		}
		lines = append(lines, models.InvoiceLine{
			Kind:        string(a.Kind),
			Description: a.Label,
			Quantity:    1,
			UnitPrice:   amount,
			Amount:      amount,
		})
	}
	return lines
}

func (s *InvoiceService) GetByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.WithContext(ctx).Preload("Stay.Guest").Preload("Stay.Company").First(&inv, id).Error; err != nil {
		return nil, findErr(err, "invoice", id)
	}
	return &inv, nil
}

func (s *InvoiceService) GetByStay(ctx context.Context, stayID uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.DB.WithContext(ctx).Preload("Stay.Guest").Preload("Stay.Company").Where("stay_id = ?", stayID).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invoice for stay %d: %w", stayID, ErrNotFound)
		}
		return nil, err
	}
	return &inv, nil
}
