package model

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `json:"image_url"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	MenuItems []MenuItem `gorm:"foreignKey:CategoryID" json:"menu_items,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

type MenuItem struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Slug            string          `gorm:"uniqueIndex;not null" json:"slug"`
	CategoryID      uint            `gorm:"not null;index" json:"category_id"`
	Description     string          `gorm:"type:text" json:"description"`
	Price           Money           `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL        string          `json:"image_url"`
	IsVegetarian    bool            `gorm:"default:false" json:"is_vegetarian"`
	IsVegan         bool            `gorm:"default:false" json:"is_vegan"`
	IsGlutenFree    bool            `gorm:"default:false" json:"is_gluten_free"`
	IsAvailable     bool            `gorm:"default:true" json:"is_available"`
	PreparationTime int             `gorm:"default:15" json:"preparation_time"` // minutes
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	Category    Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Variants    []MenuItemVariant `gorm:"foreignKey:MenuItemID" json:"variants,omitempty"`
	Ingredients []Ingredient      `gorm:"many2many:menu_item_ingredients" json:"ingredients,omitempty"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}

// MenuItemVariant is a named option on a menu item (e.g. size) with a
// price adjustment that may be negative.
type MenuItemVariant struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	MenuItemID      uint   `gorm:"not null;index" json:"menu_item_id"`
	Name            string `gorm:"size:100;not null" json:"name"`
	PriceAdjustment Money  `gorm:"type:decimal(10,2);default:0" json:"price_adjustment"`

	MenuItem MenuItem `gorm:"foreignKey:MenuItemID" json:"-"`
}

func (MenuItemVariant) TableName() string {
	return "menu_item_variants"
}

type Ingredient struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	Name       string `gorm:"size:100;not null" json:"name"`
	IsAllergen bool   `gorm:"default:false" json:"is_allergen"`

	MenuItems []MenuItem `gorm:"many2many:menu_item_ingredients" json:"-"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
