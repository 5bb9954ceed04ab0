package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-frontdesk/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompanyInput struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}

func (in *CompanyInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.TaxID = strings.ToUpper(strings.TrimSpace(in.TaxID))
	if in.Name == "" {
		return invalid("name", "is required")
	}
	if in.TaxID == "" {
		return invalid("tax_id", "is required")
	}
	return nil
}

// CompanyService manages billing companies.
type CompanyService struct {
	DB *gorm.DB
}

func NewCompanyService(db *gorm.DB) *CompanyService {
	return &CompanyService{DB: db}
}

func (s *CompanyService) Create(ctx context.Context, in CompanyInput) (*models.Company, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	company := models.Company{
		Name:    in.Name,
		TaxID:   in.TaxID,
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
		Contact: in.Contact,
		Active:  true,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueTaxID(tx, in.TaxID, 0); err != nil {
			return err
		}
		if err := tx.Create(&company).Error; err != nil {
			if isDuplicateKey(err) {
				return taxIDTaken(in.TaxID)
			}
			return fmt.Errorf("failed to create company: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("company registered", zap.Uint("company_id", company.ID), zap.String("tax_id", company.TaxID))
	return &company, nil
}

func (s *CompanyService) Update(ctx context.Context, id uint, in CompanyInput) (*models.Company, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	var company models.Company
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&company, id).Error; err != nil {
			return findErr(err, "company", id)
		}
		if err := ensureUniqueTaxID(tx, in.TaxID, id); err != nil {
			return err
		}
		company.Name = in.Name
		company.TaxID = in.TaxID
		company.Phone = in.Phone
		company.Email = in.Email
		company.Address = in.Address
		company.Contact = in.Contact
		return tx.Save(&company).Error
	})
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// SetActive toggles a company without deleting it; inactive companies keep their history and debts.
func (s *CompanyService) SetActive(ctx context.Context, id uint, active bool) (*models.Company, error) {
	db := s.DB.WithContext(ctx)
	var company models.Company
	if err := db.First(&company, id).Error; err != nil {
		return nil, findErr(err, "company", id)
	}
	if err := db.Model(&company).Update("active", active).Error; err != nil {
		return nil, fmt.Errorf("failed to update company %d: %w", id, err)
	}
	company.Active = active
	return &company, nil
}

func (s *CompanyService) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	if err := s.DB.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, findErr(err, "company", id)
	}
	return &company, nil
}

func (s *CompanyService) GetAll(ctx context.Context, onlyActive bool) ([]models.Company, error) {
	var companies []models.Company
	q := s.DB.WithContext(ctx).Order("name")
	if onlyActive {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&companies).Error
	return companies, err
}

func ensureUniqueTaxID(tx *gorm.DB, taxID string, exclude uint) error {
	q := tx.Model(&models.Company{}).Where("tax_id = ?", taxID)
	if exclude != 0 {
		q = q.Where("id <> ?", exclude)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check tax id: %w", err)
	}
	if count > 0 {
		return taxIDTaken(taxID)
	}
	return nil
}

func taxIDTaken(taxID string) error {
	return &ConflictError{Message: fmt.Sprintf("a company with tax id '%s' already exists", taxID), Reference: taxID}
}
