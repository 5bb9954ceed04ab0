package services

import (
	"fmt"
	"time"

	"hotel-frontdesk/models"
	"hotel-frontdesk/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxCodeAttempts = 5

var forUpdate = clause.Locking{Strength: "UPDATE"}

// lockRoom loads a room row FOR UPDATE together with its room type.
func lockRoom(tx *gorm.DB, id uint) (models.Room, error) {
	var room models.Room
	if err := tx.Clauses(forUpdate).First(&room, id).Error; err != nil {
		return room, findErr(err, "room", id)
	}
	if err := tx.First(&room.RoomType, room.RoomTypeID).Error; err != nil {
		return room, findErr(err, "room type", room.RoomTypeID)
	}
	return room, nil
}

// lockStay loads a stay row FOR UPDATE.
func lockStay(tx *gorm.DB, id uint) (models.Stay, error) {
	var stay models.Stay
	if err := tx.Clauses(forUpdate).First(&stay, id).Error; err != nil {
		return stay, findErr(err, "stay", id)
	}
	return stay, nil
}

func loadRoom(tx *gorm.DB, id uint) (models.Room, error) {
	var room models.Room
	if err := tx.Preload("RoomType").First(&room, id).Error; err != nil {
		return room, findErr(err, "room", id)
	}
	return room, nil
}

// checkAvailability scans the active reservations and stays of a room for a collision with candidate.
// Pass the caller's own reservation or stay ID to exclude it.
func checkAvailability(tx *gorm.DB, room models.Room, candidate models.DateRange, excludeReservation, excludeStay uint) error {
	var reservations []models.Reservation
	q := tx.Where("room_id = ? AND state IN ?", room.ID, models.ActiveReservationStates)
	if excludeReservation != 0 {
		q = q.Where("id <> ?", excludeReservation)
	}
	if err := q.Find(&reservations).Error; err != nil {
		return fmt.Errorf("failed to scan reservations of room %s: %w", room.Number, err)
	}
	for _, r := range reservations {
		if r.Range().Conflicts(candidate) {
			return &AvailabilityError{RoomNumber: room.Number, Kind: "reservation", Reference: r.Code}
		}
	}

	var stays []models.Stay
	q = tx.Where("room_id = ? AND state IN ?", room.ID, models.ActiveStayStates)
	if excludeStay != 0 {
		q = q.Where("id <> ?", excludeStay)
	}
	if err := q.Find(&stays).Error; err != nil {
		return fmt.Errorf("failed to scan stays of room %s: %w", room.Number, err)
	}
	for _, s := range stays {
		if s.Range().Conflicts(candidate) {
			return &AvailabilityError{RoomNumber: room.Number, Kind: "stay", Reference: s.Code}
		}
	}
	return nil
}

// ledger is every row that contributes to a stay's balance.
type ledger struct {
	consumption []models.ConsumptionLine
	services    []models.ServiceLine
	adjustments []models.PriceAdjustment
	payments    []models.Payment
}

func loadLedger(tx *gorm.DB, stayID uint) (ledger, error) {
	var l ledger
	if err := tx.Preload("Product").Where("stay_id = ?", stayID).Order("id").Find(&l.consumption).Error; err != nil {
		return l, fmt.Errorf("failed to load consumption of stay %d: %w", stayID, err)
	}
	if err := tx.Preload("ServiceType").Where("stay_id = ?", stayID).Order("id").Find(&l.services).Error; err != nil {
		return l, fmt.Errorf("failed to load services of stay %d: %w", stayID, err)
	}
	if err := tx.Where("stay_id = ?", stayID).Order("id").Find(&l.adjustments).Error; err != nil {
		return l, fmt.Errorf("failed to load adjustments of stay %d: %w", stayID, err)
	}
	if err := tx.Where("stay_id = ?", stayID).Order("id").Find(&l.payments).Error; err != nil {
		return l, fmt.Errorf("failed to load payments of stay %d: %w", stayID, err)
	}
	return l, nil
}

// refreshOpenEnded reprices a non-terminal open-ended stay as of today. Other stays are returned as-is.
func refreshOpenEnded(tx *gorm.DB, stay models.Stay, today time.Time) (models.Stay, error) {
	if !stay.Range().IsOpenEnded() || stay.State.Terminal() {
		return stay, nil
	}
	room, err := loadRoom(tx, stay.RoomID)
	if err != nil {
		return stay, err
	}
	return stay.Repriced(room.RoomType.NightlyPrice, today), nil
}

// statementFor computes the current balance of stay from its ledger rows.
// The returned stay carries the refreshed room total; nothing is persisted.
func statementFor(tx *gorm.DB, stay models.Stay, today time.Time) (models.Statement, models.Stay, error) {
	stay, err := refreshOpenEnded(tx, stay, today)
	if err != nil {
		return models.Statement{}, stay, err
	}
	l, err := loadLedger(tx, stay.ID)
	if err != nil {
		return models.Statement{}, stay, err
	}
	return models.BuildStatement(stay, l.consumption, l.services, l.adjustments, l.payments), stay, nil
}

// createWithCode inserts row under a fresh reference code, retrying on the rare collision.
// Each attempt runs in a savepoint so a failed insert does not poison the surrounding transaction.
func createWithCode(tx *gorm.DB, prefix string, setCode func(string), row any) error {
	var err error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		setCode(utils.NewReference(prefix))
		err = tx.Transaction(func(inner *gorm.DB) error {
			return inner.Omit(clause.Associations).Create(row).Error
		})
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			return err
		}
	}
	return fmt.Errorf("failed to allocate a unique %s code after %d attempts: %w", prefix, maxCodeAttempts, err)
}

func requireStay(tx *gorm.DB, id uint) (models.Stay, error) {
	var stay models.Stay
	if err := tx.First(&stay, id).Error; err != nil {
		return stay, findErr(err, "stay", id)
	}
	return stay, nil
}

// requireOpenStay locks a stay that can still take ledger lines.
func requireOpenStay(tx *gorm.DB, id uint, op string) (models.Stay, error) {
	stay, err := lockStay(tx, id)
	if err != nil {
		return stay, err
	}
	if stay.State.Terminal() {
		return stay, &StateError{Entity: "stay", Reference: stay.Code, State: string(stay.State), Op: op}
	}
	return stay, nil
}
