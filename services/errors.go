package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrNotFound is wrapped by every lookup that finds no row.
var ErrNotFound = errors.New("not found")

// ValidationError is malformed or out-of-range input on one field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConflictError is a uniqueness or dependency violation.
type ConflictError struct {
	Message   string
	Reference string
}

func (e *ConflictError) Error() string { return e.Message }

// AvailabilityError is a date-range collision on a room.
type AvailabilityError struct {
	RoomNumber string
	Kind       string // "reservation" or "stay"
	Reference  string
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("room %s is not available: conflicts with %s %s", e.RoomNumber, e.Kind, e.Reference)
}

type InsufficientStockError struct {
	ProductCode string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d available, %d requested", e.ProductCode, e.Available, e.Requested)
}

type OverpaymentError struct {
	Amount     decimal.Decimal
	BalanceDue decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment %s exceeds balance due %s", e.Amount.StringFixed(2), e.BalanceDue.StringFixed(2))
}

// StateError is an operation that the entity's lifecycle state does not allow.
type StateError struct {
	Entity    string
	Reference string
	State     string
	Op        string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s %s %s in state %s", e.Op, e.Entity, e.Reference, e.State)
}

func notFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// findErr turns gorm.ErrRecordNotFound into ErrNotFound and wraps everything else.
func findErr(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, id)
	}
	return fmt.Errorf("failed to load %s %d: %w", entity, id, err)
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate") || strings.Contains(lower, "unique constraint")
}
