package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rahat/tastybites-backend/config"
	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"github.com/rahat/tastybites-backend/pkg/util"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrOrderInvalidDetails = errors.New("order details are invalid")
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")
)

// CheckoutInput holds everything the customer submits at checkout.
// Monetary amounts are never part of it; pricing is computed server-side.
type CheckoutInput struct {
	OrderType            model.OrderType
	CustomerName         string
	CustomerPhone        string
	CustomerEmail        string
	AddressID            *uint
	DeliveryAddress      string
	DeliveryInstructions string
	PickupTime           *time.Time
	PaymentMethod        model.PaymentMethod
}

// OrderService handles the customer side of ordering
type OrderService interface {
	PlaceOrder(userID uint, input CheckoutInput) (*model.Order, error)
	CancelOrder(userID uint, orderNumber string) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByNumber(userID uint, orderNumber string) (*model.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	addressRepo repository.AddressRepository
	userRepo    repository.UserRepository
	db          *gorm.DB
	orderCfg    config.OrderConfig
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	addressRepo repository.AddressRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
	orderCfg config.OrderConfig,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		userRepo:    userRepo,
		db:          db,
		orderCfg:    orderCfg,
	}
}

// PlaceOrder converts the user's cart into an order inside one
// transaction: price totals, frozen item snapshots, the first ledger
// row, and the cart wipe all commit or roll back together.
func (s *orderService) PlaceOrder(userID uint, input CheckoutInput) (*model.Order, error) {
	logger.Info("Placing order", map[string]interface{}{
		"user_id":    userID,
		"order_type": input.OrderType,
	})

	if input.OrderType == "" {
		input.OrderType = model.OrderTypeDelivery
	}
	if input.OrderType != model.OrderTypeDelivery && input.OrderType != model.OrderTypePickup {
		return nil, ErrOrderInvalidDetails
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = model.PaymentMethodCash
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Contact details fall back to the profile
	if input.CustomerName == "" {
		input.CustomerName = user.Name
	}
	if input.CustomerPhone == "" {
		input.CustomerPhone = user.Phone
	}
	if input.CustomerEmail == "" {
		input.CustomerEmail = user.Email
	}
	if input.CustomerName == "" || input.CustomerPhone == "" {
		return nil, ErrOrderInvalidDetails
	}

	deliveryAddress := input.DeliveryAddress
	if input.OrderType == model.OrderTypeDelivery {
		if deliveryAddress == "" && input.AddressID != nil {
			saved, err := s.addressRepo.FindByID(*input.AddressID)
			if err != nil || saved.UserID != userID {
				return nil, ErrOrderInvalidDetails
			}
			deliveryAddress = saved.FullAddress()
		}
		if deliveryAddress == "" {
			return nil, ErrOrderInvalidDetails
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// The cart is read through the transaction so totals, snapshots and
	// the final cart wipe all see the same lines. A line added after this
	// point belongs to the next order, not this one.
	cartItems, err := s.cartRepo.FindByUserIDTx(tx, userID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if len(cartItems) == 0 {
		tx.Rollback()
		logger.Warn("Checkout attempted with empty cart", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrCartEmpty
	}

	for i := range cartItems {
		if !cartItems[i].MenuItem.IsAvailable {
			tx.Rollback()
			logger.Warn("Checkout blocked by unavailable item", map[string]interface{}{
				"user_id":      userID,
				"menu_item_id": cartItems[i].MenuItemID,
			})
			return nil, ErrMenuItemUnavailable
		}
	}

	subtotal := decimal.Zero
	maxPrepTime := 0
	lineIDs := make([]uint, 0, len(cartItems))
	for i := range cartItems {
		subtotal = subtotal.Add(cartItems[i].TotalPrice().Decimal)
		lineIDs = append(lineIDs, cartItems[i].ID)
		if cartItems[i].MenuItem.PreparationTime > maxPrepTime {
			maxPrepTime = cartItems[i].MenuItem.PreparationTime
		}
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(s.orderCfg.TaxRate).Round(2)
	deliveryFee := decimal.Zero
	if input.OrderType == model.OrderTypeDelivery {
		deliveryFee = s.orderCfg.DeliveryFee
	}
	discount := decimal.Zero
	total := subtotal.Add(tax).Add(deliveryFee).Sub(discount)

	now := time.Now()
	estimated := now.Add(time.Duration(maxPrepTime) * time.Minute)
	if input.OrderType == model.OrderTypeDelivery {
		estimated = estimated.Add(30 * time.Minute)
	}

	order := &model.Order{
		UserID:               userID,
		OrderNumber:          util.GenerateOrderNumber(),
		Status:               model.OrderStatusNew,
		OrderType:            input.OrderType,
		CustomerName:         input.CustomerName,
		CustomerPhone:        input.CustomerPhone,
		CustomerEmail:        input.CustomerEmail,
		DeliveryAddress:      deliveryAddress,
		DeliveryInstructions: input.DeliveryInstructions,
		PickupTime:           input.PickupTime,
		PaymentStatus:        model.PaymentStatusPending,
		PaymentMethod:        input.PaymentMethod,
		Subtotal:             model.NewMoney(subtotal),
		Tax:                  model.NewMoney(tax),
		DeliveryFee:          model.NewMoney(deliveryFee),
		Discount:             model.NewMoney(discount),
		Total:                model.NewMoney(total),
		EstimatedFulfillmentAt: &estimated,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	for i := range cartItems {
		ci := &cartItems[i]
		variantLabel := ""
		if ci.Variant != nil {
			variantLabel = ci.Variant.Name
		}
		orderItem := &model.OrderItem{
			OrderID:             order.ID,
			MenuItemID:          ci.MenuItemID,
			MenuItemName:        ci.MenuItem.Name,
			Variant:             variantLabel,
			Quantity:            ci.Quantity,
			UnitPrice:           model.NewMoney(ci.UnitPrice().Round(2)),
			TotalPrice:          model.NewMoney(ci.TotalPrice().Round(2)),
			SpecialInstructions: ci.SpecialInstructions,
		}
		if err := tx.Create(orderItem).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to create order item", err, map[string]interface{}{
				"order_id":     order.ID,
				"menu_item_id": ci.MenuItemID,
			})
			return nil, err
		}
	}

	statusUpdate := &model.StatusUpdate{
		OrderID:     order.ID,
		Status:      model.OrderStatusNew,
		Notes:       "Order placed by customer",
		UpdatedByID: &userID,
	}
	if err := tx.Create(statusUpdate).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create initial status update", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return nil, err
	}

	// Only the snapshotted lines are removed; a line added concurrently
	// is left in place for the user's next order.
	if err := s.cartRepo.DeleteByIDsTx(tx, lineIDs); err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart after checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Order placed successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total.String(),
	})

	return s.orderRepo.FindByID(order.ID)
}

// CancelOrder cancels the order while it is still NEW. Once the kitchen
// has started, cancellation is refused.
func (s *orderService) CancelOrder(userID uint, orderNumber string) (*model.Order, error) {
	order, err := s.findOwnedOrder(userID, orderNumber)
	if err != nil {
		return nil, err
	}

	if order.Status != model.OrderStatusNew {
		logger.Warn("Cancellation refused", map[string]interface{}{
			"user_id":      userID,
			"order_number": orderNumber,
			"status":       order.Status,
		})
		return nil, ErrOrderNotCancellable
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&model.Order{}).Where("id = ?", order.ID).
		Update("status", model.OrderStatusCancelled).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	statusUpdate := &model.StatusUpdate{
		OrderID:     order.ID,
		Status:      model.OrderStatusCancelled,
		Notes:       "Order cancelled by customer",
		UpdatedByID: &userID,
	}
	if err := tx.Create(statusUpdate).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Order cancelled", map[string]interface{}{
		"user_id":      userID,
		"order_number": orderNumber,
	})
	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetOrderByNumber(userID uint, orderNumber string) (*model.Order, error) {
	return s.findOwnedOrder(userID, orderNumber)
}

// findOwnedOrder loads an order by number, treating another user's
// order as not found rather than forbidden.
func (s *orderService) findOwnedOrder(userID uint, orderNumber string) (*model.Order, error) {
	order, err := s.orderRepo.FindByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order %s: %w", orderNumber, err)
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
