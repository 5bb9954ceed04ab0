package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-frontdesk/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RoomInput struct {
	Number      string `json:"number"`
	RoomTypeID  uint   `json:"room_type_id"`
	Floor       int    `json:"floor"`
	Description string `json:"description"`
}

type RoomFilter struct {
	State models.RoomState
	Floor *int
}

// RoomService is the room registry and owns the room occupancy state machine.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) validate(tx *gorm.DB, in *RoomInput) error {
	in.Number = strings.TrimSpace(in.Number)
	if in.Number == "" {
		return invalid("number", "is required")
	}
	if in.Floor < 0 {
		return invalid("floor", "must not be negative")
	}
	var rt models.RoomType
	if err := tx.First(&rt, in.RoomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid("room_type_id", "room type %d does not exist", in.RoomTypeID)
		}
		return err
	}
	return nil
}

func (s *RoomService) Create(ctx context.Context, in RoomInput) (*models.Room, error) {
	room := models.Room{State: models.RoomAvailable}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.validate(tx, &in); err != nil {
			return err
		}
		var count int64
		if err := tx.Unscoped().Model(&models.Room{}).Where("number = ?", in.Number).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check room number: %w", err)
		}
		if count > 0 {
			return &ConflictError{Message: fmt.Sprintf("room number '%s' already exists", in.Number), Reference: in.Number}
		}
		room.Number = in.Number
		room.RoomTypeID = in.RoomTypeID
		room.Floor = in.Floor
		room.Description = in.Description
		if err := tx.Create(&room).Error; err != nil {
			if isDuplicateKey(err) {
				return &ConflictError{Message: fmt.Sprintf("room number '%s' already exists", in.Number), Reference: in.Number}
			}
			return err
		}
		return tx.First(&room.RoomType, room.RoomTypeID).Error
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("room created", zap.String("number", room.Number))
	return &room, nil
}

// Update changes the descriptive fields; the number and state are not editable here.
func (s *RoomService) Update(ctx context.Context, id uint, in RoomInput) (*models.Room, error) {
	var room models.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, id).Error; err != nil {
			return findErr(err, "room", id)
		}
		in.Number = room.Number
		if err := s.validate(tx, &in); err != nil {
			return err
		}
		return tx.Model(&room).Updates(map[string]interface{}{
			"room_type_id": in.RoomTypeID,
			"floor":        in.Floor,
			"description":  in.Description,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *RoomService) GetAll(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	var rooms []models.Room
	q := s.DB.WithContext(ctx).Preload("RoomType").Order("number")
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.Floor != nil {
		q = q.Where("floor = ?", *f.Floor)
	}
	err := q.Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	room, err := loadRoom(s.DB.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ChangeState is the manual front-desk action; any known state may be set.
func (s *RoomService) ChangeState(ctx context.Context, id uint, state models.RoomState) (*models.Room, error) {
	if !state.Valid() {
		return nil, invalid("state", "unknown room state %q", state)
	}
	var previous models.RoomState
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, id)
		if err != nil {
			return err
		}
		previous = room.State
		return setRoomState(tx, room.ID, state)
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("room state changed", zap.Uint("room_id", id),
		zap.String("from", string(previous)), zap.String("to", string(state)))
	return s.GetByID(ctx, id)
}

// Delete soft-deletes a room that no active reservation or stay references.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, id)
		if err != nil {
			return err
		}
		var res models.Reservation
		err = tx.Where("room_id = ? AND state IN ?", id, models.ActiveReservationStates).First(&res).Error
		if err == nil {
			return &ConflictError{Message: fmt.Sprintf("room %s has active reservation %s", room.Number, res.Code), Reference: res.Code}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		var stay models.Stay
		activeStays := []models.StayState{models.StayPending, models.StayConfirmed, models.StayInProgress}
		err = tx.Where("room_id = ? AND state IN ?", id, activeStays).First(&stay).Error
		if err == nil {
			return &ConflictError{Message: fmt.Sprintf("room %s has active stay %s", room.Number, stay.Code), Reference: stay.Code}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Delete(&room).Error
	})
}

// Available lists rooms currently available whose bookings leave the range free.
func (s *RoomService) Available(ctx context.Context, r models.DateRange) ([]models.Room, error) {
	db := s.DB.WithContext(ctx)
	var rooms []models.Room
	if err := db.Preload("RoomType").Where("state = ?", models.RoomAvailable).Order("number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	out := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		err := checkAvailability(db, room, r, 0, 0)
		if err == nil {
			out = append(out, room)
			continue
		}
		var aerr *AvailabilityError
		if !errors.As(err, &aerr) {
			return nil, err
		}
	}
	return out, nil
}

func setRoomState(tx *gorm.DB, roomID uint, state models.RoomState) error {
	return tx.Model(&models.Room{}).Where("id = ?", roomID).Update("state", state).Error
}

// markOccupied is the check-in transition. A room under maintenance never leaves it automatically.
func markOccupied(tx *gorm.DB, room models.Room) error {
	if room.State == models.RoomMaintenance {
		return &StateError{Entity: "room", Reference: room.Number, State: string(room.State), Op: "check guests into"}
	}
	return setRoomState(tx, room.ID, models.RoomOccupied)
}

// markCleaning is the checkout transition. A room put under maintenance during the stay stays there.
func markCleaning(tx *gorm.DB, room models.Room) error {
	if room.State == models.RoomMaintenance {
		return nil
	}
	return setRoomState(tx, room.ID, models.RoomCleaning)
}

// markAvailable releases the room of a cancelled in-progress stay unless it was put under maintenance.
func markAvailable(tx *gorm.DB, room models.Room) error {
	if room.State == models.RoomMaintenance {
		return nil
	}
	return setRoomState(tx, room.ID, models.RoomAvailable)
}
