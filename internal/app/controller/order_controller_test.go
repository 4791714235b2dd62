package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rahat/tastybites-backend/config"
	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/rahat/tastybites-backend/internal/app/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func orderTestRouter(database *gorm.DB, user *model.User) *gin.Engine {
	orderService := service.NewOrderService(
		repository.NewOrderRepository(database),
		repository.NewCartRepository(database),
		repository.NewAddressRepository(database),
		repository.NewUserRepository(database),
		database,
		config.OrderConfig{
			TaxRate:     decimal.RequireFromString("0.08"),
			DeliveryFee: decimal.RequireFromString("2.99"),
			Currency:    "USD",
		},
	)
	ctrl := NewOrderController(orderService)

	r := gin.New()
	r.Use(authAs(user))
	r.POST("/api/orders", ctrl.Checkout)
	r.GET("/api/orders", ctrl.ListOrders)
	r.GET("/api/orders/:number", ctrl.GetOrder)
	r.POST("/api/orders/:number/cancel", ctrl.CancelOrder)
	return r
}

func fillTestCart(t *testing.T, database *gorm.DB, user *model.User, quantity int) *model.MenuItem {
	t.Helper()
	item := createMenuItem(t, database, "Margherita", "margherita", "12.50")
	require.NoError(t, database.Create(&model.CartItem{
		UserID:     user.ID,
		MenuItemID: item.ID,
		Quantity:   quantity,
	}).Error)
	return item
}

func TestOrderController_Checkout(t *testing.T) {
	database := setupControllerTest(t)
	user := createUser(t, database, "orders@example.com", model.RoleCustomer)
	fillTestCart(t, database, user, 2)
	r := orderTestRouter(database, user)

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"order_type":       "DELIVERY",
		"delivery_address": "1 Main St, Springfield",
		"payment_method":   "CASH",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	order := decodeBody(t, w)["order"].(map[string]interface{})
	assert.Equal(t, "NEW", order["status"])
	assert.Equal(t, "29.99", order["total"])
	assert.Len(t, order["order_number"], 8)
}

func TestOrderController_CheckoutEmptyCart(t *testing.T) {
	database := setupControllerTest(t)
	user := createUser(t, database, "orders@example.com", model.RoleCustomer)
	r := orderTestRouter(database, user)

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"order_type":       "DELIVERY",
		"delivery_address": "1 Main St, Springfield",
		"payment_method":   "CASH",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CART_EMPTY", decodeBody(t, w)["error"])
}

func TestOrderController_CheckoutMissingAddress(t *testing.T) {
	database := setupControllerTest(t)
	user := createUser(t, database, "orders@example.com", model.RoleCustomer)
	fillTestCart(t, database, user, 1)
	r := orderTestRouter(database, user)

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"order_type":     "DELIVERY",
		"payment_method": "CASH",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ORDER_INVALID_DETAILS", decodeBody(t, w)["error"])
}

func TestOrderController_GetOrder(t *testing.T) {
	database := setupControllerTest(t)
	user := createUser(t, database, "orders@example.com", model.RoleCustomer)
	fillTestCart(t, database, user, 1)
	r := orderTestRouter(database, user)

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"order_type":     "PICKUP",
		"payment_method": "CASH",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	number := decodeBody(t, w)["order"].(map[string]interface{})["order_number"].(string)

	w = doJSON(t, r, http.MethodGet, "/api/orders/"+number, nil)
	require.Equal(t, http.StatusOK, w.Code)
	order := decodeBody(t, w)["order"].(map[string]interface{})
	assert.Equal(t, number, order["order_number"])
}

func TestOrderController_GetOtherUsersOrder(t *testing.T) {
	database := setupControllerTest(t)
	owner := createUser(t, database, "owner@example.com", model.RoleCustomer)
	intruder := createUser(t, database, "intruder@example.com", model.RoleCustomer)
	fillTestCart(t, database, owner, 1)

	ownerRouter := orderTestRouter(database, owner)
	w := doJSON(t, ownerRouter, http.MethodPost, "/api/orders", gin.H{
		"order_type":     "PICKUP",
		"payment_method": "CASH",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	number := decodeBody(t, w)["order"].(map[string]interface{})["order_number"].(string)

	intruderRouter := orderTestRouter(database, intruder)
	w = doJSON(t, intruderRouter, http.MethodGet, "/api/orders/"+number, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", decodeBody(t, w)["error"])
}

func TestOrderController_Cancel(t *testing.T) {
	database := setupControllerTest(t)
	user := createUser(t, database, "orders@example.com", model.RoleCustomer)
	fillTestCart(t, database, user, 1)
	r := orderTestRouter(database, user)

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"order_type":     "PICKUP",
		"payment_method": "CASH",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	number := decodeBody(t, w)["order"].(map[string]interface{})["order_number"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/orders/"+number+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	order := decodeBody(t, w)["order"].(map[string]interface{})
	assert.Equal(t, "CANCELLED", order["status"])
}

func TestOrderController_CancelAfterPreparingStarts(t *testing.T) {
	database := setupControllerTest(t)
	user := createUser(t, database, "orders@example.com", model.RoleCustomer)
	fillTestCart(t, database, user, 1)
	r := orderTestRouter(database, user)

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"order_type":     "PICKUP",
		"payment_method": "CASH",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	number := decodeBody(t, w)["order"].(map[string]interface{})["order_number"].(string)

	require.NoError(t, database.Model(&model.Order{}).
		Where("order_number = ?", number).
		Update("status", model.OrderStatusPreparing).Error)

	w = doJSON(t, r, http.MethodPost, "/api/orders/"+number+"/cancel", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ORDER_NOT_CANCELLABLE", decodeBody(t, w)["error"])
}

func TestOrderController_ListOrders(t *testing.T) {
	database := setupControllerTest(t)
	user := createUser(t, database, "orders@example.com", model.RoleCustomer)
	fillTestCart(t, database, user, 1)
	r := orderTestRouter(database, user)

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"order_type":     "PICKUP",
		"payment_method": "CASH",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders := decodeBody(t, w)["orders"].([]interface{})
	assert.Len(t, orders, 1)
}
