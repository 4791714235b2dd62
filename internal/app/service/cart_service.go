package service

import (
	"errors"

	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrCartInvalidQuantity = errors.New("quantity must be at least 1")
	ErrMenuItemUnavailable = errors.New("menu item is not available")
	ErrInvalidVariant      = errors.New("variant does not belong to this menu item")
)

// AddToCartInput holds the fields for adding a line to the cart
type AddToCartInput struct {
	MenuItemID          uint
	VariantID           *uint
	Quantity            int
	SpecialInstructions string
}

// UpdateCartItemInput holds the fields for editing a cart line
type UpdateCartItemInput struct {
	Quantity            int
	SpecialInstructions *string
}

// CartService manages the per-user cart. A cart always exists; reading
// an empty one returns zero items and zero totals.
type CartService interface {
	GetUserCart(userID uint) (*model.Cart, error)
	AddToCart(userID uint, input AddToCartInput) (*model.Cart, error)
	UpdateCartItem(userID, cartItemID uint, input UpdateCartItemInput) (*model.Cart, error)
	RemoveFromCart(userID, cartItemID uint) (*model.Cart, error)
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo repository.CartRepository
	menuRepo repository.MenuRepository
}

// NewCartService creates a new cart service
func NewCartService(cartRepo repository.CartRepository, menuRepo repository.MenuRepository) CartService {
	return &cartService{
		cartRepo: cartRepo,
		menuRepo: menuRepo,
	}
}

func (s *cartService) GetUserCart(userID uint) (*model.Cart, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	return model.NewCart(items), nil
}

func (s *cartService) AddToCart(userID uint, input AddToCartInput) (*model.Cart, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":      userID,
		"menu_item_id": input.MenuItemID,
		"quantity":     input.Quantity,
	})

	if input.Quantity < 1 {
		return nil, ErrCartInvalidQuantity
	}

	menuItem, err := s.menuRepo.FindMenuItemByID(input.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	if !menuItem.IsAvailable {
		logger.Warn("Attempt to add unavailable menu item to cart", map[string]interface{}{
			"user_id":      userID,
			"menu_item_id": menuItem.ID,
		})
		return nil, ErrMenuItemUnavailable
	}

	if input.VariantID != nil {
		variant, err := s.menuRepo.FindVariantByID(*input.VariantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidVariant
			}
			return nil, err
		}
		if variant.MenuItemID != menuItem.ID {
			return nil, ErrInvalidVariant
		}
	}

	// Same item and variant merges into the existing line; only the
	// quantity grows, the line's instructions stay as first written.
	existing, err := s.cartRepo.FindByUserItemVariant(userID, input.MenuItemID, input.VariantID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil && err == nil {
		existing.Quantity += input.Quantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
	} else {
		item := &model.CartItem{
			UserID:              userID,
			MenuItemID:          input.MenuItemID,
			VariantID:           input.VariantID,
			Quantity:            input.Quantity,
			SpecialInstructions: input.SpecialInstructions,
		}
		if err := s.cartRepo.Create(item); err != nil {
			return nil, err
		}
	}

	return s.GetUserCart(userID)
}

func (s *cartService) UpdateCartItem(userID, cartItemID uint, input UpdateCartItemInput) (*model.Cart, error) {
	item, err := s.findOwnedItem(userID, cartItemID)
	if err != nil {
		return nil, err
	}

	// Zero or negative quantity removes the line
	if input.Quantity <= 0 {
		logger.Info("Removing cart item via zero quantity", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		if err := s.cartRepo.Delete(item); err != nil {
			return nil, err
		}
		return s.GetUserCart(userID)
	}

	item.Quantity = input.Quantity
	if input.SpecialInstructions != nil {
		item.SpecialInstructions = *input.SpecialInstructions
	}
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}

	return s.GetUserCart(userID)
}

func (s *cartService) RemoveFromCart(userID, cartItemID uint) (*model.Cart, error) {
	item, err := s.findOwnedItem(userID, cartItemID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Delete(item); err != nil {
		return nil, err
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})
	return s.GetUserCart(userID)
}

func (s *cartService) ClearCart(userID uint) error {
	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		return err
	}

	logger.Info("Cart cleared", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

// findOwnedItem loads a cart line, treating another user's line as not
// found rather than forbidden.
func (s *cartService) findOwnedItem(userID, cartItemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.UserID != userID {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}
