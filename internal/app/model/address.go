package model

import (
	"time"

	"gorm.io/gorm"
)

type Address struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Label        string         `gorm:"size:100" json:"label"` // e.g. "Home", "Office"
	AddressLine1 string         `gorm:"size:255;not null" json:"address_line1"`
	AddressLine2 string         `gorm:"size:255" json:"address_line2"`
	City         string         `gorm:"size:100;not null" json:"city"`
	State        string         `gorm:"size:100" json:"state"`
	PostalCode   string         `gorm:"size:20" json:"postal_code"`
	IsDefault    bool           `gorm:"default:false" json:"is_default"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}

// FullAddress renders the address as a single line for checkout prefill
func (a *Address) FullAddress() string {
	s := a.AddressLine1
	if a.AddressLine2 != "" {
		s += ", " + a.AddressLine2
	}
	s += ", " + a.City
	if a.State != "" {
		s += ", " + a.State
	}
	if a.PostalCode != "" {
		s += " " + a.PostalCode
	}
	return s
}
