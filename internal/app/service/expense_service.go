package service

import (
	"errors"
	"time"

	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound        = errors.New("expense not found")
	ErrExpenseInvalidCategory = errors.New("unknown expense category")
)

// ExpenseInput holds the fields of an expense record
type ExpenseInput struct {
	Title       string
	Amount      decimal.Decimal
	Category    model.ExpenseCategory
	Date        time.Time
	Description string
	ReceiptURL  string
}

// ExpenseService manages operating expense records
type ExpenseService interface {
	CreateExpense(createdByID uint, input ExpenseInput) (*model.Expense, error)
	GetExpense(expenseID uint) (*model.Expense, error)
	ListExpenses(filter repository.ExpenseFilter) ([]model.Expense, error)
	UpdateExpense(expenseID uint, input ExpenseInput) (*model.Expense, error)
	DeleteExpense(expenseID uint) error
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo}
}

func (s *expenseService) CreateExpense(createdByID uint, input ExpenseInput) (*model.Expense, error) {
	if !input.Category.IsValid() {
		return nil, ErrExpenseInvalidCategory
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	expense := &model.Expense{
		Title:       input.Title,
		Amount:      model.NewMoney(input.Amount),
		Category:    input.Category,
		Date:        date,
		Description: input.Description,
		ReceiptURL:  input.ReceiptURL,
		CreatedByID: createdByID,
	}
	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}

	logger.Info("Expense recorded", map[string]interface{}{
		"expense_id": expense.ID,
		"category":   expense.Category,
		"amount":     expense.Amount.String(),
	})
	return expense, nil
}

func (s *expenseService) GetExpense(expenseID uint) (*model.Expense, error) {
	expense, err := s.expenseRepo.FindByID(expenseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(filter repository.ExpenseFilter) ([]model.Expense, error) {
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, ErrExpenseInvalidCategory
	}
	return s.expenseRepo.Find(filter)
}

func (s *expenseService) UpdateExpense(expenseID uint, input ExpenseInput) (*model.Expense, error) {
	expense, err := s.GetExpense(expenseID)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		expense.Title = input.Title
	}
	if !input.Amount.IsZero() {
		expense.Amount = model.NewMoney(input.Amount)
	}
	if input.Category != "" {
		if !input.Category.IsValid() {
			return nil, ErrExpenseInvalidCategory
		}
		expense.Category = input.Category
	}
	if !input.Date.IsZero() {
		expense.Date = input.Date
	}
	if input.Description != "" {
		expense.Description = input.Description
	}
	if input.ReceiptURL != "" {
		expense.ReceiptURL = input.ReceiptURL
	}

	if err := s.expenseRepo.Update(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) DeleteExpense(expenseID uint) error {
	expense, err := s.GetExpense(expenseID)
	if err != nil {
		return err
	}

	if err := s.expenseRepo.Delete(expense); err != nil {
		return err
	}

	logger.Info("Expense deleted", map[string]interface{}{
		"expense_id": expenseID,
	})
	return nil
}
