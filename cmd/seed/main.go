// Command seed imports a menu catalog from an XLSX workbook.
//
// The workbook needs a "Categories" sheet (name, slug, description) and
// a "Menu Items" sheet (name, slug, category slug, price, description,
// vegetarian, vegan, gluten free, prep minutes). The first row of each
// sheet is a header and is skipped.
package main

import (
	"flag"
	"strconv"
	"strings"

	"github.com/rahat/tastybites-backend/config"
	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/db"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func main() {
	path := flag.String("file", "menu.xlsx", "path to the menu workbook")
	flag.Parse()

	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	f, err := excelize.OpenFile(*path)
	if err != nil {
		logger.Fatal("Failed to open workbook", err, map[string]interface{}{
			"file": *path,
		})
	}
	defer f.Close()

	categories, err := importCategories(f)
	if err != nil {
		logger.Fatal("Failed to import categories", err)
	}

	itemCount, err := importMenuItems(f, categories)
	if err != nil {
		logger.Fatal("Failed to import menu items", err)
	}

	logger.Info("Menu import completed", map[string]interface{}{
		"categories": len(categories),
		"menu_items": itemCount,
	})
}

// importCategories upserts categories by slug and returns slug -> ID
func importCategories(f *excelize.File) (map[string]uint, error) {
	rows, err := f.GetRows("Categories")
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]uint)
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		slug := strings.TrimSpace(row[1])
		if name == "" || slug == "" {
			continue
		}

		category := model.Category{
			Name:     name,
			Slug:     slug,
			IsActive: true,
		}
		if len(row) > 2 {
			category.Description = strings.TrimSpace(row[2])
		}

		var existing model.Category
		err := db.GetDB().Where("slug = ?", slug).First(&existing).Error
		if err == nil {
			bySlug[slug] = existing.ID
			continue
		}

		if err := db.GetDB().Create(&category).Error; err != nil {
			return nil, err
		}
		bySlug[slug] = category.ID

		logger.Info("Category imported", map[string]interface{}{
			"name": name,
			"slug": slug,
		})
	}
	return bySlug, nil
}

func importMenuItems(f *excelize.File, categories map[string]uint) (int, error) {
	rows, err := f.GetRows("Menu Items")
	if err != nil {
		return 0, err
	}

	imported := 0
	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue
		}
		name := strings.TrimSpace(row[0])
		slug := strings.TrimSpace(row[1])
		categorySlug := strings.TrimSpace(row[2])
		if name == "" || slug == "" {
			continue
		}

		categoryID, ok := categories[categorySlug]
		if !ok {
			logger.Warn("Skipping item with unknown category", map[string]interface{}{
				"item":     name,
				"category": categorySlug,
			})
			continue
		}

		price, err := decimal.NewFromString(strings.TrimSpace(row[3]))
		if err != nil {
			logger.Warn("Skipping item with invalid price", map[string]interface{}{
				"item":  name,
				"price": row[3],
			})
			continue
		}

		var existing model.MenuItem
		if err := db.GetDB().Where("slug = ?", slug).First(&existing).Error; err == nil {
			continue
		}

		item := model.MenuItem{
			Name:        name,
			Slug:        slug,
			CategoryID:  categoryID,
			Price:       model.NewMoney(price),
			IsAvailable: true,
		}
		if len(row) > 4 {
			item.Description = strings.TrimSpace(row[4])
		}
		if len(row) > 5 {
			item.IsVegetarian = parseBool(row[5])
		}
		if len(row) > 6 {
			item.IsVegan = parseBool(row[6])
		}
		if len(row) > 7 {
			item.IsGlutenFree = parseBool(row[7])
		}
		if len(row) > 8 {
			if minutes, err := strconv.Atoi(strings.TrimSpace(row[8])); err == nil {
				item.PreparationTime = minutes
			}
		}

		if err := db.GetDB().Create(&item).Error; err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
