package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is one line of a user's cart. The cart itself has no row of
// its own: a user's cart is the set of their cart items, and its totals
// are recomputed on every read.
type CartItem struct {
	ID                  uint           `gorm:"primarykey" json:"id"`
	UserID              uint           `gorm:"not null;index" json:"user_id"`
	MenuItemID          uint           `gorm:"not null;index" json:"menu_item_id"`
	VariantID           *uint          `gorm:"index" json:"variant_id,omitempty"`
	Quantity            int            `gorm:"not null;default:1" json:"quantity"`
	SpecialInstructions string         `gorm:"type:text" json:"special_instructions"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	User     User             `gorm:"foreignKey:UserID" json:"-"`
	MenuItem MenuItem         `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Variant  *MenuItemVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// UnitPrice is the item base price plus the variant adjustment, derived
// at read time so catalog edits are reflected until checkout freezes it.
func (ci *CartItem) UnitPrice() Money {
	price := ci.MenuItem.Price.Decimal
	if ci.Variant != nil {
		price = price.Add(ci.Variant.PriceAdjustment.Decimal)
	}
	return NewMoney(price)
}

// TotalPrice is unit price times quantity
func (ci *CartItem) TotalPrice() Money {
	return NewMoney(ci.UnitPrice().Mul(decimal.NewFromInt(int64(ci.Quantity))))
}

// Cart is the read-time aggregate view of a user's cart items
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice Money      `json:"total_price"`
}

// NewCart builds the aggregate view, summing quantities and line totals
func NewCart(items []CartItem) *Cart {
	total := decimal.Zero
	cart := &Cart{Items: items}
	for i := range items {
		cart.TotalItems += items[i].Quantity
		total = total.Add(items[i].TotalPrice().Decimal)
	}
	cart.TotalPrice = NewMoney(total)
	return cart
}
