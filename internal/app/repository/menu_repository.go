package repository

import (
	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"gorm.io/gorm"
)

// MenuItemFilter holds optional filters for menu listing
type MenuItemFilter struct {
	CategoryID    uint
	CategorySlug  string
	Search        string
	VegetarianOnly bool
	VeganOnly      bool
	GlutenFreeOnly bool
	AvailableOnly  bool
}

// MenuRepository handles category and menu item data access
type MenuRepository interface {
	CreateCategory(category *model.Category) error
	FindCategories(activeOnly bool) ([]model.Category, error)
	FindCategoryByID(id uint) (*model.Category, error)
	FindCategoryBySlug(slug string) (*model.Category, error)
	UpdateCategory(category *model.Category) error
	DeleteCategory(category *model.Category) error

	CreateMenuItem(item *model.MenuItem) error
	FindMenuItems(filter MenuItemFilter) ([]model.MenuItem, error)
	FindMenuItemByID(id uint) (*model.MenuItem, error)
	FindMenuItemBySlug(slug string) (*model.MenuItem, error)
	UpdateMenuItem(item *model.MenuItem) error
	DeleteMenuItem(item *model.MenuItem) error

	FindVariantByID(id uint) (*model.MenuItemVariant, error)
	FindIngredientsByIDs(ids []uint) ([]model.Ingredient, error)
}

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) CreateCategory(category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"name": category.Name,
		"slug": category.Slug,
	})

	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"slug": category.Slug,
		})
		return err
	}
	return nil
}

func (r *menuRepository) FindCategories(activeOnly bool) ([]model.Category, error) {
	var categories []model.Category
	query := r.db.Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&categories).Error; err != nil {
		logger.Error("Failed to find categories", err)
		return nil, err
	}
	return categories, nil
}

func (r *menuRepository) FindCategoryByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *menuRepository) FindCategoryBySlug(slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *menuRepository) UpdateCategory(category *model.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

func (r *menuRepository) DeleteCategory(category *model.Category) error {
	if err := r.db.Delete(category).Error; err != nil {
		logger.Error("Failed to delete category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

func (r *menuRepository) CreateMenuItem(item *model.MenuItem) error {
	logger.Debug("Creating menu item in database", map[string]interface{}{
		"name":        item.Name,
		"category_id": item.CategoryID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create menu item in database", err, map[string]interface{}{
			"name": item.Name,
		})
		return err
	}
	return nil
}

func (r *menuRepository) FindMenuItems(filter MenuItemFilter) ([]model.MenuItem, error) {
	var items []model.MenuItem
	query := r.db.
		Preload("Category").
		Preload("Variants").
		Preload("Ingredients")

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = menu_items.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("menu_items.name LIKE ? OR menu_items.description LIKE ?", like, like)
	}
	if filter.VegetarianOnly {
		query = query.Where("is_vegetarian = ?", true)
	}
	if filter.VeganOnly {
		query = query.Where("is_vegan = ?", true)
	}
	if filter.GlutenFreeOnly {
		query = query.Where("is_gluten_free = ?", true)
	}
	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}

	if err := query.Order("menu_items.name ASC").Find(&items).Error; err != nil {
		logger.Error("Failed to find menu items", err)
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) FindMenuItemByID(id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.
		Preload("Category").
		Preload("Variants").
		Preload("Ingredients").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) FindMenuItemBySlug(slug string) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.
		Preload("Category").
		Preload("Variants").
		Preload("Ingredients").
		Where("slug = ?", slug).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) UpdateMenuItem(item *model.MenuItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update menu item in database", err, map[string]interface{}{
			"menu_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *menuRepository) DeleteMenuItem(item *model.MenuItem) error {
	if err := r.db.Delete(item).Error; err != nil {
		logger.Error("Failed to delete menu item in database", err, map[string]interface{}{
			"menu_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *menuRepository) FindVariantByID(id uint) (*model.MenuItemVariant, error) {
	var variant model.MenuItemVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *menuRepository) FindIngredientsByIDs(ids []uint) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}
