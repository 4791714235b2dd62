package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/rahat/tastybites-backend/internal/errors"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/rahat/tastybites-backend/internal/app/service"
	"github.com/rahat/tastybites-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// MenuController handles catalog endpoints
type MenuController struct {
	menuService service.MenuService
}

// NewMenuController creates a new menu controller
func NewMenuController(menuService service.MenuService) *MenuController {
	return &MenuController{menuService: menuService}
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
}

type variantRequest struct {
	Name            string          `json:"name" binding:"required"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

type menuItemRequest struct {
	Name            string           `json:"name" binding:"required"`
	Slug            string           `json:"slug" binding:"required"`
	CategoryID      uint             `json:"category_id" binding:"required"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price" binding:"required"`
	ImageURL        string           `json:"image_url"`
	IsVegetarian    bool             `json:"is_vegetarian"`
	IsVegan         bool             `json:"is_vegan"`
	IsGlutenFree    bool             `json:"is_gluten_free"`
	IsAvailable     *bool            `json:"is_available"`
	PreparationTime int              `json:"preparation_time"`
	Variants        []variantRequest `json:"variants"`
	IngredientIDs   []uint           `json:"ingredient_ids"`
}

type menuItemUpdateRequest struct {
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	CategoryID      uint             `json:"category_id"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	ImageURL        string           `json:"image_url"`
	IsVegetarian    bool             `json:"is_vegetarian"`
	IsVegan         bool             `json:"is_vegan"`
	IsGlutenFree    bool             `json:"is_gluten_free"`
	IsAvailable     *bool            `json:"is_available"`
	PreparationTime int              `json:"preparation_time"`
	Variants        []variantRequest `json:"variants"`
	IngredientIDs   []uint           `json:"ingredient_ids"`
}

type availabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// ListCategories handles GET /api/menu/categories
func (ctrl *MenuController) ListCategories(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	categories, err := ctrl.menuService.ListCategories(includeInactive)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory handles POST /api/menu/categories
func (ctrl *MenuController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.menuService.CreateCategory(service.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		log.Error("Category creation failed", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory handles PUT /api/menu/categories/:id
func (ctrl *MenuController) UpdateCategory(c *gin.Context) {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.menuService.UpdateCategory(categoryID, service.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles DELETE /api/menu/categories/:id
func (ctrl *MenuController) DeleteCategory(c *gin.Context) {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	if err := ctrl.menuService.DeleteCategory(categoryID); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// ListItems handles GET /api/menu/items
func (ctrl *MenuController) ListItems(c *gin.Context) {
	filter := repository.MenuItemFilter{
		CategorySlug:   c.Query("category"),
		Search:         c.Query("search"),
		VegetarianOnly: c.Query("vegetarian") == "true",
		VeganOnly:      c.Query("vegan") == "true",
		GlutenFreeOnly: c.Query("gluten_free") == "true",
		AvailableOnly:  c.Query("include_unavailable") != "true",
	}

	items, err := ctrl.menuService.ListMenuItems(filter)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetItem handles GET /api/menu/items/:slug
func (ctrl *MenuController) GetItem(c *gin.Context) {
	item, err := ctrl.menuService.GetMenuItemBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			apperrors.NotFound(c, apperrors.MenuItemNotFound, "Menu item not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// CreateItem handles POST /api/menu/items
func (ctrl *MenuController) CreateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid menu item data")
		return
	}

	item, err := ctrl.menuService.CreateMenuItem(menuItemInput(
		req.Name, req.Slug, req.CategoryID, req.Description, req.Price, req.ImageURL,
		req.IsVegetarian, req.IsVegan, req.IsGlutenFree, req.IsAvailable,
		req.PreparationTime, req.Variants, req.IngredientIDs,
	))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.BadRequest(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		log.Error("Menu item creation failed", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateItem handles PUT /api/menu/items/:id
func (ctrl *MenuController) UpdateItem(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid menu item ID")
		return
	}

	var req menuItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid menu item data")
		return
	}

	item, err := ctrl.menuService.UpdateMenuItem(itemID, menuItemInput(
		req.Name, req.Slug, req.CategoryID, req.Description, req.Price, req.ImageURL,
		req.IsVegetarian, req.IsVegan, req.IsGlutenFree, req.IsAvailable,
		req.PreparationTime, req.Variants, req.IngredientIDs,
	))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMenuItemNotFound):
			apperrors.NotFound(c, apperrors.MenuItemNotFound, "Menu item not found")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.BadRequest(c, apperrors.CategoryNotFound, "Category not found")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// SetAvailability handles PATCH /api/menu/items/:id/availability
func (ctrl *MenuController) SetAvailability(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid menu item ID")
		return
	}

	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAvailable == nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "is_available is required")
		return
	}

	item, err := ctrl.menuService.SetMenuItemAvailability(itemID, *req.IsAvailable)
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			apperrors.NotFound(c, apperrors.MenuItemNotFound, "Menu item not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem handles DELETE /api/menu/items/:id
func (ctrl *MenuController) DeleteItem(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid menu item ID")
		return
	}

	if err := ctrl.menuService.DeleteMenuItem(itemID); err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			apperrors.NotFound(c, apperrors.MenuItemNotFound, "Menu item not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

func menuItemInput(
	name, slug string, categoryID uint, description string, price decimal.Decimal, imageURL string,
	vegetarian, vegan, glutenFree bool, available *bool,
	prepTime int, variants []variantRequest, ingredientIDs []uint,
) service.MenuItemInput {
	input := service.MenuItemInput{
		Name:            name,
		Slug:            slug,
		CategoryID:      categoryID,
		Description:     description,
		Price:           price,
		ImageURL:        imageURL,
		IsVegetarian:    vegetarian,
		IsVegan:         vegan,
		IsGlutenFree:    glutenFree,
		IsAvailable:     available,
		PreparationTime: prepTime,
		IngredientIDs:   ingredientIDs,
	}
	for _, v := range variants {
		input.Variants = append(input.Variants, service.VariantInput{
			Name:            v.Name,
			PriceAdjustment: v.PriceAdjustment,
		})
	}
	return input
}
