package models

import (
	"strings"
	"time"
)

type DocumentType string

const (
	DocumentIDCard     DocumentType = "id_card"
	DocumentPassport   DocumentType = "passport"
	DocumentNationalID DocumentType = "national_id"
)

func (d DocumentType) Valid() bool {
	switch d {
	case DocumentIDCard, DocumentPassport, DocumentNationalID:
		return true
	}
	return false
}

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	FirstName      string       `gorm:"size:100;not null" json:"first_name"`
	LastName       string       `gorm:"size:100;not null" json:"last_name"`
	DocumentType   DocumentType `gorm:"size:20;not null" json:"document_type"`
	DocumentNumber string       `gorm:"size:50;uniqueIndex;not null" json:"document_number"`
	Phone          string       `gorm:"size:20" json:"phone"`
	Email          string       `gorm:"size:150" json:"email"`
	Address        string       `gorm:"type:text" json:"address"`
	BirthDate      *time.Time   `gorm:"type:date" json:"birth_date,omitempty"`

	CompanyID *uint    `gorm:"index" json:"company_id,omitempty"`
	Company   *Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL" json:"company,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g Guest) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}
