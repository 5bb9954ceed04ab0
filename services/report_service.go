package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"hotel-frontdesk/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountingRow is one line of the accounting export: an issued invoice or a received payment.
type AccountingRow struct {
	Date      string `csv:"date"`
	Type      string `csv:"type"`
	Code      string `csv:"code"`
	StayCode  string `csv:"stay"`
	Method    string `csv:"method"`
	Payer     string `csv:"payer"`
	Subtotal  string `csv:"subtotal"`
	Tax       string `csv:"tax"`
	Total     string `csv:"total"`
	Reference string `csv:"reference"`
}

// ExportService writes accounting extracts from stored figures; it never recomputes totals.
type ExportService struct {
	DB *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{DB: db}
}

// AccountingRows collects the invoices issued and payments received between from and to, both inclusive.
func (s *ExportService) AccountingRows(ctx context.Context, from, to time.Time) ([]AccountingRow, error) {
	from = models.Date(from)
	to = models.Date(to)
	if to.Before(from) {
		return nil, invalid("to", "must not be before from")
	}
	until := to.AddDate(0, 0, 1)
	db := s.DB.WithContext(ctx)

	var invoices []models.Invoice
	if err := db.Preload("Stay").Where("issued_at >= ? AND issued_at < ?", from, until).Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	var payments []models.Payment
	if err := db.Preload("Stay").Where("paid_at >= ? AND paid_at < ?", from, until).Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	type dated struct {
		at  time.Time
		row AccountingRow
	}
	all := make([]dated, 0, len(invoices)+len(payments))
	for _, inv := range invoices {
		all = append(all, dated{inv.IssuedAt, AccountingRow{
			Date:     inv.IssuedAt.Format(time.RFC3339),
			Type:     "invoice",
			Code:     inv.Code,
			StayCode: inv.Stay.Code,
			Subtotal: inv.Total.Sub(inv.Tax).StringFixed(2),
			Tax:      inv.Tax.StringFixed(2),
			Total:    inv.Total.StringFixed(2),
		}})
	}
	for _, p := range payments {
		all = append(all, dated{p.PaidAt, AccountingRow{
			Date:      p.PaidAt.Format(time.RFC3339),
			Type:      "payment",
			Code:      p.Code,
			StayCode:  p.Stay.Code,
			Method:    string(p.Method),
			Payer:     fmt.Sprintf("%s:%d", p.Payer.Kind, p.Payer.RefID),
			Subtotal:  p.Amount.StringFixed(2),
			Tax:       decimal.Zero.StringFixed(2),
			Total:     p.Amount.StringFixed(2),
			Reference: p.Reference,
		}})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].at.Before(all[j].at) })

	rows := make([]AccountingRow, len(all))
	for i, d := range all {
		rows[i] = d.row
	}
	return rows, nil
}

// Accounting writes AccountingRows as CSV with a header line.
func (s *ExportService) Accounting(ctx context.Context, w io.Writer, from, to time.Time) error {
	rows, err := s.AccountingRows(ctx, from, to)
	if err != nil {
		return err
	}
	return gocsv.Marshal(rows, w)
}
