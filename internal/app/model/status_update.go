package model

import (
	"time"
)

// StatusUpdate is one row of the append-only status ledger. Rows are
// never edited or deleted; the order's cached Status must always equal
// the status of its newest row.
type StatusUpdate struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	OrderID     uint        `gorm:"not null;index" json:"order_id"`
	Status      OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	Notes       string      `gorm:"type:text" json:"notes"`
	UpdatedByID *uint       `gorm:"index" json:"updated_by_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`

	Order     Order `gorm:"foreignKey:OrderID" json:"-"`
	UpdatedBy *User `gorm:"foreignKey:UpdatedByID" json:"updated_by,omitempty"`
}

func (StatusUpdate) TableName() string {
	return "status_updates"
}
