package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/rahat/tastybites-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func cartTestRouter(database *gorm.DB, user *model.User) *gin.Engine {
	cartService := service.NewCartService(
		repository.NewCartRepository(database),
		repository.NewMenuRepository(database),
	)
	ctrl := NewCartController(cartService)

	r := gin.New()
	r.Use(authAs(user))
	r.GET("/api/cart", ctrl.GetCart)
	r.POST("/api/cart/items", ctrl.AddItem)
	r.PUT("/api/cart/items/:id", ctrl.UpdateItem)
	r.DELETE("/api/cart/items/:id", ctrl.RemoveItem)
	r.DELETE("/api/cart", ctrl.Clear)
	return r
}

func TestCartController_GetEmptyCart(t *testing.T) {
	database := setupControllerTest(t)
	user := createUser(t, database, "cart@example.com", model.RoleCustomer)
	r := cartTestRouter(database, user)

	w := doJSON(t, r, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	cart := body["cart"].(map[string]interface{})
	assert.Equal(t, float64(0), cart["total_items"])
}

func TestCartController_AddItem(t *testing.T) {
	database := setupControllerTest(t)
	user := createUser(t, database, "cart@example.com", model.RoleCustomer)
	item := createMenuItem(t, database, "Pad Thai", "pad-thai", "11.25")
	r := cartTestRouter(database, user)

	w := doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{
		"menu_item_id": item.ID,
		"quantity":     2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	cart := body["cart"].(map[string]interface{})
	assert.Equal(t, float64(2), cart["total_items"])
	assert.Equal(t, "22.50", cart["total_price"])
}

func TestCartController_AddUnknownItem(t *testing.T) {
	database := setupControllerTest(t)
	user := createUser(t, database, "cart@example.com", model.RoleCustomer)
	r := cartTestRouter(database, user)

	w := doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{
		"menu_item_id": 9999,
		"quantity":     1,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "MENU_ITEM_NOT_FOUND", decodeBody(t, w)["error"])
}

func TestCartController_AddUnavailableItem(t *testing.T) {
	database := setupControllerTest(t)
	user := createUser(t, database, "cart@example.com", model.RoleCustomer)
	item := createMenuItem(t, database, "Pad Thai", "pad-thai", "11.25")
	require.NoError(t, database.Model(item).Update("is_available", false).Error)
	r := cartTestRouter(database, user)

	w := doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{
		"menu_item_id": item.ID,
		"quantity":     1,
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "MENU_ITEM_UNAVAILABLE", decodeBody(t, w)["error"])
}

func TestCartController_AddMissingQuantity(t *testing.T) {
	database := setupControllerTest(t)
	user := createUser(t, database, "cart@example.com", model.RoleCustomer)
	item := createMenuItem(t, database, "Pad Thai", "pad-thai", "11.25")
	r := cartTestRouter(database, user)

	w := doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{
		"menu_item_id": item.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartController_UpdateOtherUsersItem(t *testing.T) {
	database := setupControllerTest(t)
	owner := createUser(t, database, "owner@example.com", model.RoleCustomer)
	intruder := createUser(t, database, "intruder@example.com", model.RoleCustomer)
	item := createMenuItem(t, database, "Pad Thai", "pad-thai", "11.25")

	line := &model.CartItem{UserID: owner.ID, MenuItemID: item.ID, Quantity: 1}
	require.NoError(t, database.Create(line).Error)

	r := cartTestRouter(database, intruder)
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/cart/items/%d", line.ID), gin.H{
		"quantity": 3,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CART_ITEM_NOT_FOUND", decodeBody(t, w)["error"])
}

func TestCartController_Clear(t *testing.T) {
	database := setupControllerTest(t)
	user := createUser(t, database, "cart@example.com", model.RoleCustomer)
	item := createMenuItem(t, database, "Pad Thai", "pad-thai", "11.25")
	require.NoError(t, database.Create(&model.CartItem{
		UserID: user.ID, MenuItemID: item.ID, Quantity: 2,
	}).Error)

	r := cartTestRouter(database, user)
	w := doJSON(t, r, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/cart", nil)
	cart := decodeBody(t, w)["cart"].(map[string]interface{})
	assert.Equal(t, float64(0), cart["total_items"])
}
