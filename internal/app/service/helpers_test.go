package service

import (
	"fmt"
	"testing"

	"github.com/rahat/tastybites-backend/config"
	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(database)
	})
	return database
}

func testOrderConfig() config.OrderConfig {
	return config.OrderConfig{
		TaxRate:     decimal.RequireFromString("0.08"),
		DeliveryFee: decimal.RequireFromString("2.99"),
		Currency:    "USD",
	}
}

var testUserSeq int

func createTestUser(t *testing.T, database *gorm.DB, role model.UserRole) *model.User {
	t.Helper()

	testUserSeq++
	user := &model.User{
		Email:        fmt.Sprintf("user%d@example.com", testUserSeq),
		PasswordHash: "not-a-real-hash",
		Name:         fmt.Sprintf("Test User %d", testUserSeq),
		Phone:        "555-0100",
		Role:         role,
	}
	require.NoError(t, database.Create(user).Error)
	return user
}

// createTestMenu seeds one category with two items. The first item is
// priced 12.50 and has a Large variant at +3.00; the second is 8.75
// with no variants.
func createTestMenu(t *testing.T, database *gorm.DB) (*model.MenuItem, *model.MenuItem) {
	t.Helper()

	category := &model.Category{
		Name:     "Mains",
		Slug:     fmt.Sprintf("mains-%d", testUserSeq),
		IsActive: true,
	}
	testUserSeq++
	require.NoError(t, database.Create(category).Error)

	first := &model.MenuItem{
		Name:            "Margherita Pizza",
		Slug:            fmt.Sprintf("margherita-%d", testUserSeq),
		CategoryID:      category.ID,
		Price:           model.NewMoney(decimal.RequireFromString("12.50")),
		IsAvailable:     true,
		PreparationTime: 20,
		Variants: []model.MenuItemVariant{
			{Name: "Large", PriceAdjustment: model.NewMoney(decimal.RequireFromString("3.00"))},
		},
	}
	require.NoError(t, database.Create(first).Error)

	second := &model.MenuItem{
		Name:            "Caesar Salad",
		Slug:            fmt.Sprintf("caesar-%d", testUserSeq),
		CategoryID:      category.ID,
		Price:           model.NewMoney(decimal.RequireFromString("8.75")),
		IsAvailable:     true,
		PreparationTime: 10,
	}
	require.NoError(t, database.Create(second).Error)

	return first, second
}
