package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-frontdesk/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GuestInput struct {
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
	DocumentType   models.DocumentType `json:"document_type"`
	DocumentNumber string              `json:"document_number"`
	Phone          string              `json:"phone"`
	Email          string              `json:"email"`
	Address        string              `json:"address"`
	BirthDate      *time.Time          `json:"birth_date"`
	CompanyID      *uint               `json:"company_id"`
}

func (in *GuestInput) normalize() error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.DocumentNumber = strings.TrimSpace(in.DocumentNumber)
	in.Email = strings.TrimSpace(in.Email)
	if in.FirstName == "" {
		return invalid("first_name", "is required")
	}
	if in.LastName == "" {
		return invalid("last_name", "is required")
	}
	if !in.DocumentType.Valid() {
		return invalid("document_type", "unknown document type %q", in.DocumentType)
	}
	if in.DocumentNumber == "" {
		return invalid("document_number", "is required")
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return invalid("email", "is not a valid address")
	}
	return nil
}

func (in GuestInput) apply(g *models.Guest) {
	g.FirstName = in.FirstName
	g.LastName = in.LastName
	g.DocumentType = in.DocumentType
	g.DocumentNumber = in.DocumentNumber
	g.Phone = in.Phone
	g.Email = in.Email
	g.Address = in.Address
	g.BirthDate = in.BirthDate
	g.CompanyID = in.CompanyID
}

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// ----------------------------------------------------
// CREATE / UPDATE
// ----------------------------------------------------
func (s *GuestService) Create(ctx context.Context, in GuestInput) (*models.Guest, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	var guest models.Guest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkRefs(tx, in, 0); err != nil {
			return err
		}
		in.apply(&guest)
		if err := tx.Omit("Company").Create(&guest).Error; err != nil {
			if isDuplicateKey(err) {
				return documentTaken(in.DocumentNumber)
			}
			return fmt.Errorf("failed to create guest: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("guest registered", zap.Uint("guest_id", guest.ID), zap.String("name", guest.FullName()))
	return &guest, nil
}

func (s *GuestService) Update(ctx context.Context, id uint, in GuestInput) (*models.Guest, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var guest models.Guest
		if err := tx.First(&guest, id).Error; err != nil {
			return findErr(err, "guest", id)
		}
		if err := s.checkRefs(tx, in, id); err != nil {
			return err
		}
		in.apply(&guest)
		return tx.Omit("Company").Save(&guest).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *GuestService) checkRefs(tx *gorm.DB, in GuestInput, exclude uint) error {
	q := tx.Model(&models.Guest{}).Where("document_number = ?", in.DocumentNumber)
	if exclude != 0 {
		q = q.Where("id <> ?", exclude)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check document number: %w", err)
	}
	if count > 0 {
		return documentTaken(in.DocumentNumber)
	}
	if in.CompanyID != nil {
		if err := tx.First(&models.Company{}, *in.CompanyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalid("company_id", "company %d does not exist", *in.CompanyID)
			}
			return err
		}
	}
	return nil
}

func documentTaken(number string) error {
	return &ConflictError{Message: fmt.Sprintf("a guest with document '%s' already exists", number), Reference: number}
}

// ----------------------------------------------------
// READ
// ----------------------------------------------------
func (s *GuestService) GetByID(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.WithContext(ctx).Preload("Company").First(&guest, id).Error; err != nil {
		return nil, findErr(err, "guest", id)
	}
	return &guest, nil
}

// GetAll lists guests, newest first, optionally filtered by a name or document substring.
func (s *GuestService) GetAll(ctx context.Context, search string) ([]models.Guest, error) {
	var guests []models.Guest
	q := s.DB.WithContext(ctx).Preload("Company").Order("id DESC")
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(document_number) LIKE ?", like, like, like)
	}
	if err := q.Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}
