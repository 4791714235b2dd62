package repository

import (
	"time"

	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseFilter holds optional filters for expense listing
type ExpenseFilter struct {
	Category model.ExpenseCategory
	From     time.Time
	To       time.Time
}

// ExpenseRepository handles expense data access
type ExpenseRepository interface {
	Create(expense *model.Expense) error
	FindByID(id uint) (*model.Expense, error)
	Find(filter ExpenseFilter) ([]model.Expense, error)
	Update(expense *model.Expense) error
	Delete(expense *model.Expense) error
	SumByDateRange(from, to time.Time) (decimal.Decimal, error)
	SumByCategory(from, to time.Time) (map[model.ExpenseCategory]decimal.Decimal, error)
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(expense *model.Expense) error {
	logger.Debug("Creating expense in database", map[string]interface{}{
		"title":    expense.Title,
		"category": expense.Category,
	})

	if err := r.db.Create(expense).Error; err != nil {
		logger.Error("Failed to create expense in database", err, map[string]interface{}{
			"title": expense.Title,
		})
		return err
	}
	return nil
}

func (r *expenseRepository) FindByID(id uint) (*model.Expense, error) {
	var expense model.Expense
	if err := r.db.Preload("CreatedBy").First(&expense, id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) Find(filter ExpenseFilter) ([]model.Expense, error) {
	var expenses []model.Expense
	query := r.db.Preload("CreatedBy")

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if !filter.From.IsZero() {
		query = query.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("date < ?", filter.To)
	}

	if err := query.Order("date DESC, id DESC").Find(&expenses).Error; err != nil {
		logger.Error("Failed to find expenses", err)
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepository) Update(expense *model.Expense) error {
	if err := r.db.Save(expense).Error; err != nil {
		logger.Error("Failed to update expense in database", err, map[string]interface{}{
			"expense_id": expense.ID,
		})
		return err
	}
	return nil
}

func (r *expenseRepository) Delete(expense *model.Expense) error {
	if err := r.db.Delete(expense).Error; err != nil {
		logger.Error("Failed to delete expense in database", err, map[string]interface{}{
			"expense_id": expense.ID,
		})
		return err
	}
	return nil
}

func (r *expenseRepository) SumByDateRange(from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.Model(&model.Expense{}).
		Select("SUM(amount)").
		Where("date >= ? AND date < ?", from, to).
		Scan(&total).Error
	if err != nil {
		logger.Error("Failed to sum expenses", err)
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *expenseRepository) SumByCategory(from, to time.Time) (map[model.ExpenseCategory]decimal.Decimal, error) {
	type row struct {
		Category model.ExpenseCategory
		Total    decimal.Decimal
	}
	var rows []row
	err := r.db.Model(&model.Expense{}).
		Select("category, SUM(amount) as total").
		Where("date >= ? AND date < ?", from, to).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to sum expenses by category", err)
		return nil, err
	}

	sums := make(map[model.ExpenseCategory]decimal.Decimal, len(rows))
	for _, rw := range rows {
		sums[rw.Category] = rw.Total
	}
	return sums, nil
}
