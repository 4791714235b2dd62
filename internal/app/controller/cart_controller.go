package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/rahat/tastybites-backend/internal/errors"
	"github.com/rahat/tastybites-backend/internal/app/service"
	"github.com/rahat/tastybites-backend/internal/middleware"
)

// CartController handles cart endpoints
type CartController struct {
	cartService service.CartService
}

// NewCartController creates a new cart controller
func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type addToCartRequest struct {
	MenuItemID          uint   `json:"menu_item_id" binding:"required"`
	VariantID           *uint  `json:"variant_id"`
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	SpecialInstructions string `json:"special_instructions"`
}

type updateCartItemRequest struct {
	Quantity            int     `json:"quantity"`
	SpecialInstructions *string `json:"special_instructions"`
}

// GetCart handles GET /api/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	cart, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// AddItem handles POST /api/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart item data")
		return
	}

	cart, err := ctrl.cartService.AddToCart(userID, service.AddToCartInput{
		MenuItemID:          req.MenuItemID,
		VariantID:           req.VariantID,
		Quantity:            req.Quantity,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMenuItemNotFound):
			apperrors.NotFound(c, apperrors.MenuItemNotFound, "Menu item not found")
		case errors.Is(err, service.ErrMenuItemUnavailable):
			apperrors.Conflict(c, apperrors.MenuItemUnavailable, "This item is currently unavailable")
		case errors.Is(err, service.ErrInvalidVariant):
			apperrors.BadRequest(c, apperrors.MenuInvalidVariant, "Variant does not belong to this item")
		case errors.Is(err, service.ErrCartInvalidQuantity):
			apperrors.BadRequest(c, apperrors.CartInvalidQuantity, "Quantity must be at least 1")
		default:
			log.Error("Failed to add item to cart", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cart": cart})
}

// UpdateItem handles PUT /api/cart/items/:id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	cartItemID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart item data")
		return
	}

	cart, err := ctrl.cartService.UpdateCartItem(userID, cartItemID, service.UpdateCartItemInput{
		Quantity:            req.Quantity,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// RemoveItem handles DELETE /api/cart/items/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	cartItemID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	cart, err := ctrl.cartService.RemoveFromCart(userID, cartItemID)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// Clear handles DELETE /api/cart
func (ctrl *CartController) Clear(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
