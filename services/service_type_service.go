package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-frontdesk/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceTypeInput struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	SuggestedPrice decimal.NullDecimal `json:"suggested_price"`
	RequiresPrice  bool                `json:"requires_price"`
}

// ServiceTypeService is the catalog of additional services (laundry, transfers...).
type ServiceTypeService struct {
	DB *gorm.DB
}

func NewServiceTypeService(db *gorm.DB) *ServiceTypeService {
	return &ServiceTypeService{DB: db}
}

func (s *ServiceTypeService) Create(ctx context.Context, in ServiceTypeInput) (*models.ServiceType, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, invalid("name", "is required")
	}
	if in.SuggestedPrice.Valid && in.SuggestedPrice.Decimal.IsNegative() {
		return nil, invalid("suggested_price", "must not be negative")
	}
	st := models.ServiceType{
		Name:           in.Name,
		Description:    in.Description,
		SuggestedPrice: in.SuggestedPrice,
		RequiresPrice:  in.RequiresPrice,
		Active:         true,
	}
	if err := s.DB.WithContext(ctx).Create(&st).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &ConflictError{Message: fmt.Sprintf("service type '%s' already exists", in.Name), Reference: in.Name}
		}
		return nil, fmt.Errorf("failed to create service type: %w", err)
	}
	return &st, nil
}

func (s *ServiceTypeService) GetAll(ctx context.Context, onlyActive bool) ([]models.ServiceType, error) {
	var types []models.ServiceType
	q := s.DB.WithContext(ctx).Order("name")
	if onlyActive {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&types).Error
	return types, err
}

func (s *ServiceTypeService) SetActive(ctx context.Context, id uint, active bool) (*models.ServiceType, error) {
	db := s.DB.WithContext(ctx)
	var st models.ServiceType
	if err := db.First(&st, id).Error; err != nil {
		return nil, findErr(err, "service type", id)
	}
	if err := db.Model(&st).Update("active", active).Error; err != nil {
		return nil, err
	}
	st.Active = active
	return &st, nil
}
