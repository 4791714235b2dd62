package db

import (
	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Address{},
		&model.Category{},
		&model.MenuItem{},
		&model.MenuItemVariant{},
		&model.Ingredient{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.StatusUpdate{},
		&model.Expense{},
		&model.DailySummary{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedIngredients(); err != nil {
		logger.Error("Failed to seed ingredients", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedIngredients creates the common ingredient list used for allergen
// labelling on menu items
func seedIngredients() error {
	var count int64
	if err := DB.Model(&model.Ingredient{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Ingredients already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding ingredient data...")

	ingredients := []model.Ingredient{
		{Name: "Wheat flour", IsAllergen: true},
		{Name: "Eggs", IsAllergen: true},
		{Name: "Milk", IsAllergen: true},
		{Name: "Peanuts", IsAllergen: true},
		{Name: "Tree nuts", IsAllergen: true},
		{Name: "Soy", IsAllergen: true},
		{Name: "Shellfish", IsAllergen: true},
		{Name: "Fish", IsAllergen: true},
		{Name: "Sesame", IsAllergen: true},
		{Name: "Tomato"},
		{Name: "Onion"},
		{Name: "Garlic"},
		{Name: "Chicken"},
		{Name: "Beef"},
		{Name: "Rice"},
		{Name: "Basmati rice"},
		{Name: "Mozzarella"},
		{Name: "Basil"},
		{Name: "Olive oil"},
		{Name: "Chili"},
	}

	totalInserted := 0
	for _, ingredient := range ingredients {
		if err := DB.Create(&ingredient).Error; err != nil {
			logger.Error("Failed to create ingredient", err, map[string]interface{}{
				"ingredient": ingredient.Name,
			})
			return err
		}
		totalInserted++
	}

	logger.Info("Ingredients seeded successfully", map[string]interface{}{
		"total_ingredients": totalInserted,
	})

	return nil
}
