package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleStaff    UserRole = "staff"
	RoleDelivery UserRole = "delivery"
	RoleCustomer UserRole = "customer"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Phone        string         `json:"phone"`
	Role         UserRole       `gorm:"type:varchar(20);default:'customer'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Addresses []Address `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsStaffRole reports whether the role may work the kitchen queue
func (u *User) IsStaffRole() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager || u.Role == RoleStaff || u.Role == RoleDelivery
}

// CanManageOrders reports whether the role may progress and assign orders
func (u *User) CanManageOrders() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}
