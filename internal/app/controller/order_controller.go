package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/rahat/tastybites-backend/internal/errors"
	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/service"
	"github.com/rahat/tastybites-backend/internal/middleware"
)

// OrderController handles customer order endpoints
type OrderController struct {
	orderService service.OrderService
}

// NewOrderController creates a new order controller
func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

type checkoutRequest struct {
	OrderType            string     `json:"order_type"`
	CustomerName         string     `json:"customer_name"`
	CustomerPhone        string     `json:"customer_phone"`
	CustomerEmail        string     `json:"customer_email"`
	AddressID            *uint      `json:"address_id"`
	DeliveryAddress      string     `json:"delivery_address"`
	DeliveryInstructions string     `json:"delivery_instructions"`
	PickupTime           *time.Time `json:"pickup_time"`
	PaymentMethod        string     `json:"payment_method"`
}

// Checkout handles POST /api/orders
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid checkout data")
		return
	}

	order, err := ctrl.orderService.PlaceOrder(userID, service.CheckoutInput{
		OrderType:            model.OrderType(req.OrderType),
		CustomerName:         req.CustomerName,
		CustomerPhone:        req.CustomerPhone,
		CustomerEmail:        req.CustomerEmail,
		AddressID:            req.AddressID,
		DeliveryAddress:      req.DeliveryAddress,
		DeliveryInstructions: req.DeliveryInstructions,
		PickupTime:           req.PickupTime,
		PaymentMethod:        model.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")
		case errors.Is(err, service.ErrOrderInvalidDetails):
			apperrors.BadRequest(c, apperrors.OrderInvalidDetails, "Order details are incomplete or invalid")
		case errors.Is(err, service.ErrMenuItemUnavailable):
			apperrors.Conflict(c, apperrors.MenuItemUnavailable, "An item in your cart is no longer available")
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ListOrders handles GET /api/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder handles GET /api/orders/:number
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	order, err := ctrl.orderService.GetOrderByNumber(userID, c.Param("number"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder handles POST /api/orders/:number/cancel
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	order, err := ctrl.orderService.CancelOrder(userID, c.Param("number"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderNotCancellable):
			apperrors.Conflict(c, apperrors.OrderNotCancellable,
				"This order is already being prepared and can no longer be cancelled")
		default:
			log.Error("Order cancellation failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
