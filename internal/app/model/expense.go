package model

import (
	"time"

	"gorm.io/gorm"
)

type ExpenseCategory string

const (
	ExpenseIngredients ExpenseCategory = "INGREDIENTS"
	ExpenseStaff       ExpenseCategory = "STAFF"
	ExpenseUtilities   ExpenseCategory = "UTILITIES"
	ExpenseRent        ExpenseCategory = "RENT"
	ExpenseEquipment   ExpenseCategory = "EQUIPMENT"
	ExpenseMarketing   ExpenseCategory = "MARKETING"
	ExpenseMaintenance ExpenseCategory = "MAINTENANCE"
	ExpenseOther       ExpenseCategory = "OTHER"
)

// ExpenseCategories lists every recognized expense category
var ExpenseCategories = []ExpenseCategory{
	ExpenseIngredients,
	ExpenseStaff,
	ExpenseUtilities,
	ExpenseRent,
	ExpenseEquipment,
	ExpenseMarketing,
	ExpenseMaintenance,
	ExpenseOther,
}

// IsValid reports whether c is one of the recognized categories
func (c ExpenseCategory) IsValid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

type Expense struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Title       string          `gorm:"size:100;not null" json:"title"`
	Amount      Money           `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category    ExpenseCategory `gorm:"type:varchar(20);not null" json:"category"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Description string          `gorm:"type:text" json:"description"`
	ReceiptURL  string          `json:"receipt_url"`
	CreatedByID uint            `gorm:"not null;index" json:"created_by_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	CreatedBy User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

func (Expense) TableName() string {
	return "expenses"
}

// DailySummary is the nightly roll-up of orders and expenses for one day
type DailySummary struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Date          time.Time `gorm:"uniqueIndex;not null" json:"date"`
	TotalOrders   int       `gorm:"default:0" json:"total_orders"`
	TotalRevenue  Money     `gorm:"type:decimal(10,2);default:0" json:"total_revenue"`
	TotalExpenses Money     `gorm:"type:decimal(10,2);default:0" json:"total_expenses"`
	NetProfit     Money     `gorm:"type:decimal(10,2);default:0" json:"net_profit"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (DailySummary) TableName() string {
	return "daily_summaries"
}
