package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-frontdesk/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SettingsInput struct {
	Name    string              `json:"name"`
	TaxID   string              `json:"tax_id"`
	Address string              `json:"address"`
	Phone   string              `json:"phone"`
	Email   string              `json:"email"`
	Website string              `json:"website"`
	TaxRate decimal.NullDecimal `json:"tax_rate"`
}

func (in *SettingsInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.TaxID = strings.ToUpper(strings.TrimSpace(in.TaxID))
	in.Email = strings.TrimSpace(in.Email)
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return invalid("email", "is not a valid address")
	}
	if in.TaxRate.Valid {
		r := in.TaxRate.Decimal
		if r.IsNegative() || r.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return invalid("tax_rate", "must be a fraction between 0 and 1, e.g. 0.16")
		}
	}
	return nil
}

// SettingsService keeps the hotel's issuer profile. There is at most one row.
type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// Get returns the stored profile, or an empty one when none was saved yet.
func (s *SettingsService) Get(ctx context.Context) (*models.HotelSetting, error) {
	hotel, err := loadSettings(s.DB.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (s *SettingsService) Update(ctx context.Context, in SettingsInput) (*models.HotelSetting, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	var hotel models.HotelSetting
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if hotel, err = loadSettings(tx.Clauses(forUpdate)); err != nil {
			return err
		}
		hotel.Name = in.Name
		hotel.TaxID = in.TaxID
		hotel.Address = in.Address
		hotel.Phone = in.Phone
		hotel.Email = in.Email
		hotel.Website = in.Website
		hotel.TaxRate = in.TaxRate
		return tx.Save(&hotel).Error
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("hotel settings updated", zap.String("name", hotel.Name), zap.Bool("tax_rate_override", hotel.TaxRate.Valid))
	return &hotel, nil
}

func loadSettings(tx *gorm.DB) (models.HotelSetting, error) {
	var hotel models.HotelSetting
	err := tx.Order("id").First(&hotel).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return hotel, fmt.Errorf("failed to load hotel settings: %w", err)
	}
	return hotel, nil
}
