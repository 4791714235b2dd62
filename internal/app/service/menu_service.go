package service

import (
	"errors"

	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// CategoryInput holds the fields of a menu category
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	ImageURL    string
	IsActive    *bool
}

// VariantInput is one named option with a price adjustment
type VariantInput struct {
	Name            string
	PriceAdjustment decimal.Decimal
}

// MenuItemInput holds the fields of a menu item
type MenuItemInput struct {
	Name            string
	Slug            string
	CategoryID      uint
	Description     string
	Price           decimal.Decimal
	ImageURL        string
	IsVegetarian    bool
	IsVegan         bool
	IsGlutenFree    bool
	IsAvailable     *bool
	PreparationTime int
	Variants        []VariantInput
	IngredientIDs   []uint
}

// MenuService manages the catalog of categories and menu items
type MenuService interface {
	ListCategories(includeInactive bool) ([]model.Category, error)
	GetCategoryBySlug(slug string) (*model.Category, error)
	CreateCategory(input CategoryInput) (*model.Category, error)
	UpdateCategory(categoryID uint, input CategoryInput) (*model.Category, error)
	DeleteCategory(categoryID uint) error

	ListMenuItems(filter repository.MenuItemFilter) ([]model.MenuItem, error)
	GetMenuItem(itemID uint) (*model.MenuItem, error)
	GetMenuItemBySlug(slug string) (*model.MenuItem, error)
	CreateMenuItem(input MenuItemInput) (*model.MenuItem, error)
	UpdateMenuItem(itemID uint, input MenuItemInput) (*model.MenuItem, error)
	SetMenuItemAvailability(itemID uint, available bool) (*model.MenuItem, error)
	DeleteMenuItem(itemID uint) error
}

type menuService struct {
	menuRepo repository.MenuRepository
	db       *gorm.DB
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo repository.MenuRepository, db *gorm.DB) MenuService {
	return &menuService{
		menuRepo: menuRepo,
		db:       db,
	}
}

func (s *menuService) ListCategories(includeInactive bool) ([]model.Category, error) {
	return s.menuRepo.FindCategories(!includeInactive)
}

func (s *menuService) GetCategoryBySlug(slug string) (*model.Category, error) {
	category, err := s.menuRepo.FindCategoryBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *menuService) CreateCategory(input CategoryInput) (*model.Category, error) {
	logger.Info("Creating category", map[string]interface{}{
		"name": input.Name,
		"slug": input.Slug,
	})

	category := &model.Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.menuRepo.CreateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *menuService) UpdateCategory(categoryID uint, input CategoryInput) (*model.Category, error) {
	category, err := s.menuRepo.FindCategoryByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	if input.Slug != "" {
		category.Slug = input.Slug
	}
	if input.Description != "" {
		category.Description = input.Description
	}
	if input.ImageURL != "" {
		category.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.menuRepo.UpdateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *menuService) DeleteCategory(categoryID uint) error {
	category, err := s.menuRepo.FindCategoryByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.menuRepo.DeleteCategory(category)
}

func (s *menuService) ListMenuItems(filter repository.MenuItemFilter) ([]model.MenuItem, error) {
	return s.menuRepo.FindMenuItems(filter)
}

func (s *menuService) GetMenuItem(itemID uint) (*model.MenuItem, error) {
	item, err := s.menuRepo.FindMenuItemByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *menuService) GetMenuItemBySlug(slug string) (*model.MenuItem, error) {
	item, err := s.menuRepo.FindMenuItemBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *menuService) CreateMenuItem(input MenuItemInput) (*model.MenuItem, error) {
	logger.Info("Creating menu item", map[string]interface{}{
		"name":        input.Name,
		"category_id": input.CategoryID,
	})

	if _, err := s.menuRepo.FindCategoryByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	item := &model.MenuItem{
		Name:            input.Name,
		Slug:            input.Slug,
		CategoryID:      input.CategoryID,
		Description:     input.Description,
		Price:           model.NewMoney(input.Price),
		ImageURL:        input.ImageURL,
		IsVegetarian:    input.IsVegetarian,
		IsVegan:         input.IsVegan,
		IsGlutenFree:    input.IsGlutenFree,
		IsAvailable:     true,
		PreparationTime: input.PreparationTime,
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}
	for _, v := range input.Variants {
		item.Variants = append(item.Variants, model.MenuItemVariant{
			Name:            v.Name,
			PriceAdjustment: model.NewMoney(v.PriceAdjustment),
		})
	}

	ingredients, err := s.menuRepo.FindIngredientsByIDs(input.IngredientIDs)
	if err != nil {
		return nil, err
	}
	item.Ingredients = ingredients

	if err := s.menuRepo.CreateMenuItem(item); err != nil {
		return nil, err
	}
	return s.GetMenuItem(item.ID)
}

func (s *menuService) UpdateMenuItem(itemID uint, input MenuItemInput) (*model.MenuItem, error) {
	item, err := s.GetMenuItem(itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	if input.Slug != "" {
		item.Slug = input.Slug
	}
	if input.CategoryID != 0 {
		if _, err := s.menuRepo.FindCategoryByID(input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		item.CategoryID = input.CategoryID
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if !input.Price.IsZero() {
		item.Price = model.NewMoney(input.Price)
	}
	if input.ImageURL != "" {
		item.ImageURL = input.ImageURL
	}
	if input.PreparationTime != 0 {
		item.PreparationTime = input.PreparationTime
	}
	item.IsVegetarian = input.IsVegetarian
	item.IsVegan = input.IsVegan
	item.IsGlutenFree = input.IsGlutenFree
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}

	// Variants are replaced wholesale when provided
	if input.Variants != nil {
		if err := s.db.Where("menu_item_id = ?", item.ID).Delete(&model.MenuItemVariant{}).Error; err != nil {
			return nil, err
		}
		item.Variants = nil
		for _, v := range input.Variants {
			item.Variants = append(item.Variants, model.MenuItemVariant{
				MenuItemID:      item.ID,
				Name:            v.Name,
				PriceAdjustment: model.NewMoney(v.PriceAdjustment),
			})
		}
	}

	if input.IngredientIDs != nil {
		ingredients, err := s.menuRepo.FindIngredientsByIDs(input.IngredientIDs)
		if err != nil {
			return nil, err
		}
		if err := s.db.Model(item).Association("Ingredients").Replace(ingredients); err != nil {
			return nil, err
		}
	}

	if err := s.menuRepo.UpdateMenuItem(item); err != nil {
		return nil, err
	}

	logger.Info("Menu item updated", map[string]interface{}{
		"menu_item_id": item.ID,
	})
	return s.GetMenuItem(item.ID)
}

// SetMenuItemAvailability toggles the 86 flag without touching the rest
// of the item.
func (s *menuService) SetMenuItemAvailability(itemID uint, available bool) (*model.MenuItem, error) {
	item, err := s.GetMenuItem(itemID)
	if err != nil {
		return nil, err
	}

	item.IsAvailable = available
	if err := s.menuRepo.UpdateMenuItem(item); err != nil {
		return nil, err
	}

	logger.Info("Menu item availability changed", map[string]interface{}{
		"menu_item_id": item.ID,
		"is_available": available,
	})
	return item, nil
}

func (s *menuService) DeleteMenuItem(itemID uint) error {
	item, err := s.GetMenuItem(itemID)
	if err != nil {
		return err
	}
	return s.menuRepo.DeleteMenuItem(item)
}
