package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-frontdesk/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RoomTypeInput struct {
	Name         string          `json:"name"`
	NightlyPrice decimal.Decimal `json:"nightly_price"`
	Capacity     int             `json:"capacity"`
	Description  string          `json:"description"`
}

func (in *RoomTypeInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalid("name", "is required")
	}
	if !in.NightlyPrice.IsPositive() {
		return invalid("nightly_price", "must be greater than 0")
	}
	if in.Capacity < 1 {
		return invalid("capacity", "must be at least 1")
	}
	return nil
}

// RoomTypeService is the rate catalog.
type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

func (s *RoomTypeService) ensureUniqueName(tx *gorm.DB, name string, exclude uint) error {
	var count int64
	q := tx.Model(&models.RoomType{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if exclude != 0 {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check room type name: %w", err)
	}
	if count > 0 {
		return &ConflictError{Message: fmt.Sprintf("room type %q already exists", name), Reference: name}
	}
	return nil
}

func (s *RoomTypeService) Create(ctx context.Context, in RoomTypeInput) (*models.RoomType, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	rt := models.RoomType{
		Name:         in.Name,
		NightlyPrice: in.NightlyPrice,
		Capacity:     in.Capacity,
		Description:  in.Description,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureUniqueName(tx, in.Name, 0); err != nil {
			return err
		}
		return tx.Create(&rt).Error
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("room type created", zap.Uint("id", rt.ID), zap.String("name", rt.Name))
	return &rt, nil
}

func (s *RoomTypeService) Update(ctx context.Context, id uint, in RoomTypeInput) (*models.RoomType, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	var rt models.RoomType
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rt, id).Error; err != nil {
			return findErr(err, "room type", id)
		}
		if err := s.ensureUniqueName(tx, in.Name, id); err != nil {
			return err
		}
		rt.Name = in.Name
		rt.NightlyPrice = in.NightlyPrice
		rt.Capacity = in.Capacity
		rt.Description = in.Description
		return tx.Save(&rt).Error
	})
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (s *RoomTypeService) GetAll(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	err := s.DB.WithContext(ctx).Order("name").Find(&types).Error
	return types, err
}

func (s *RoomTypeService) GetByID(ctx context.Context, id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := s.DB.WithContext(ctx).First(&rt, id).Error; err != nil {
		return nil, findErr(err, "room type", id)
	}
	return &rt, nil
}

// Delete refuses while any room still uses the type.
func (s *RoomTypeService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rt models.RoomType
		if err := tx.First(&rt, id).Error; err != nil {
			return findErr(err, "room type", id)
		}
		var rooms int64
		if err := tx.Model(&models.Room{}).Where("room_type_id = ?", id).Count(&rooms).Error; err != nil {
			return fmt.Errorf("failed to count rooms of type %d: %w", id, err)
		}
		if rooms > 0 {
			return &ConflictError{
				Message:   fmt.Sprintf("room type %q is used by %d room(s)", rt.Name, rooms),
				Reference: rt.Name,
			}
		}
		return tx.Delete(&rt).Error
	})
}
