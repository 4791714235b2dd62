package service

import (
	"testing"

	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCartService(database *gorm.DB) CartService {
	return NewCartService(
		repository.NewCartRepository(database),
		repository.NewMenuRepository(database),
	)
}

func TestGetUserCart_Empty(t *testing.T) {
	database := setupServiceTest(t)
	svc := newCartService(database)
	user := createTestUser(t, database, model.RoleCustomer)

	cart, err := svc.GetUserCart(user.ID)
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalItems)
	assert.True(t, cart.TotalPrice.IsZero())
}

func TestAddToCart(t *testing.T) {
	database := setupServiceTest(t)
	svc := newCartService(database)
	user := createTestUser(t, database, model.RoleCustomer)
	pizza, _ := createTestMenu(t, database)

	cart, err := svc.AddToCart(user.ID, AddToCartInput{
		MenuItemID: pizza.ID,
		Quantity:   2,
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.TotalItems)
	assert.True(t, cart.TotalPrice.Equal(decimal.RequireFromString("25.00")),
		"expected 25.00, got %s", cart.TotalPrice)
}

func TestAddToCart_MergesSameItemAndVariant(t *testing.T) {
	database := setupServiceTest(t)
	svc := newCartService(database)
	user := createTestUser(t, database, model.RoleCustomer)
	pizza, _ := createTestMenu(t, database)

	_, err := svc.AddToCart(user.ID, AddToCartInput{MenuItemID: pizza.ID, Quantity: 1})
	require.NoError(t, err)

	cart, err := svc.AddToCart(user.ID, AddToCartInput{MenuItemID: pizza.ID, Quantity: 2})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1, "same item without a variant must merge into one line")
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddToCart_MergeKeepsExistingInstructions(t *testing.T) {
	database := setupServiceTest(t)
	svc := newCartService(database)
	user := createTestUser(t, database, model.RoleCustomer)
	pizza, _ := createTestMenu(t, database)

	_, err := svc.AddToCart(user.ID, AddToCartInput{
		MenuItemID:          pizza.ID,
		Quantity:            2,
		SpecialInstructions: "extra cheese",
	})
	require.NoError(t, err)

	cart, err := svc.AddToCart(user.ID, AddToCartInput{
		MenuItemID:          pizza.ID,
		Quantity:            3,
		SpecialInstructions: "no cheese",
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, "extra cheese", cart.Items[0].SpecialInstructions,
		"merging must not touch the line's instructions")
}

func TestAddToCart_VariantMakesDistinctLine(t *testing.T) {
	database := setupServiceTest(t)
	svc := newCartService(database)
	user := createTestUser(t, database, model.RoleCustomer)
	pizza, _ := createTestMenu(t, database)
	variantID := pizza.Variants[0].ID

	_, err := svc.AddToCart(user.ID, AddToCartInput{MenuItemID: pizza.ID, Quantity: 1})
	require.NoError(t, err)

	cart, err := svc.AddToCart(user.ID, AddToCartInput{
		MenuItemID: pizza.ID,
		VariantID:  &variantID,
		Quantity:   1,
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	// 12.50 + (12.50 + 3.00)
	assert.True(t, cart.TotalPrice.Equal(decimal.RequireFromString("28.00")),
		"expected 28.00, got %s", cart.TotalPrice)
}

func TestAddToCart_UnavailableItem(t *testing.T) {
	database := setupServiceTest(t)
	svc := newCartService(database)
	user := createTestUser(t, database, model.RoleCustomer)
	pizza, _ := createTestMenu(t, database)

	require.NoError(t, database.Model(pizza).Update("is_available", false).Error)

	_, err := svc.AddToCart(user.ID, AddToCartInput{MenuItemID: pizza.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrMenuItemUnavailable)
}

func TestAddToCart_UnknownItem(t *testing.T) {
	database := setupServiceTest(t)
	svc := newCartService(database)
	user := createTestUser(t, database, model.RoleCustomer)

	_, err := svc.AddToCart(user.ID, AddToCartInput{MenuItemID: 9999, Quantity: 1})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestAddToCart_VariantFromOtherItem(t *testing.T) {
	database := setupServiceTest(t)
	svc := newCartService(database)
	user := createTestUser(t, database, model.RoleCustomer)
	pizza, salad := createTestMenu(t, database)
	variantID := pizza.Variants[0].ID

	_, err := svc.AddToCart(user.ID, AddToCartInput{
		MenuItemID: salad.ID,
		VariantID:  &variantID,
		Quantity:   1,
	})
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	database := setupServiceTest(t)
	svc := newCartService(database)
	user := createTestUser(t, database, model.RoleCustomer)
	pizza, _ := createTestMenu(t, database)

	_, err := svc.AddToCart(user.ID, AddToCartInput{MenuItemID: pizza.ID, Quantity: 0})
	assert.ErrorIs(t, err, ErrCartInvalidQuantity)
}

func TestUpdateCartItem(t *testing.T) {
	database := setupServiceTest(t)
	svc := newCartService(database)
	user := createTestUser(t, database, model.RoleCustomer)
	pizza, _ := createTestMenu(t, database)

	cart, err := svc.AddToCart(user.ID, AddToCartInput{MenuItemID: pizza.ID, Quantity: 1})
	require.NoError(t, err)

	cart, err = svc.UpdateCartItem(user.ID, cart.Items[0].ID, UpdateCartItemInput{Quantity: 5})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestUpdateCartItem_ZeroQuantityRemovesLine(t *testing.T) {
	database := setupServiceTest(t)
	svc := newCartService(database)
	user := createTestUser(t, database, model.RoleCustomer)
	pizza, _ := createTestMenu(t, database)

	cart, err := svc.AddToCart(user.ID, AddToCartInput{MenuItemID: pizza.ID, Quantity: 2})
	require.NoError(t, err)

	cart, err = svc.UpdateCartItem(user.ID, cart.Items[0].ID, UpdateCartItemInput{Quantity: 0})
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
}

func TestUpdateCartItem_OtherUsersLine(t *testing.T) {
	database := setupServiceTest(t)
	svc := newCartService(database)
	owner := createTestUser(t, database, model.RoleCustomer)
	intruder := createTestUser(t, database, model.RoleCustomer)
	pizza, _ := createTestMenu(t, database)

	cart, err := svc.AddToCart(owner.ID, AddToCartInput{MenuItemID: pizza.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.UpdateCartItem(intruder.ID, cart.Items[0].ID, UpdateCartItemInput{Quantity: 3})
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestRemoveFromCart(t *testing.T) {
	database := setupServiceTest(t)
	svc := newCartService(database)
	user := createTestUser(t, database, model.RoleCustomer)
	pizza, salad := createTestMenu(t, database)

	_, err := svc.AddToCart(user.ID, AddToCartInput{MenuItemID: pizza.ID, Quantity: 1})
	require.NoError(t, err)
	cart, err := svc.AddToCart(user.ID, AddToCartInput{MenuItemID: salad.ID, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	cart, err = svc.RemoveFromCart(user.ID, cart.Items[0].ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestClearCart(t *testing.T) {
	database := setupServiceTest(t)
	svc := newCartService(database)
	user := createTestUser(t, database, model.RoleCustomer)
	pizza, _ := createTestMenu(t, database)

	_, err := svc.AddToCart(user.ID, AddToCartInput{MenuItemID: pizza.ID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(user.ID))

	cart, err := svc.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
