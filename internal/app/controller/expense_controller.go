package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/rahat/tastybites-backend/internal/errors"
	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/rahat/tastybites-backend/internal/app/service"
	"github.com/rahat/tastybites-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// ExpenseController handles expense tracking endpoints
type ExpenseController struct {
	expenseService service.ExpenseService
}

// NewExpenseController creates a new expense controller
func NewExpenseController(expenseService service.ExpenseService) *ExpenseController {
	return &ExpenseController{expenseService: expenseService}
}

type expenseRequest struct {
	Title       string          `json:"title" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Description string          `json:"description"`
	ReceiptURL  string          `json:"receipt_url"`
}

type expenseUpdateRequest struct {
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	ReceiptURL  string          `json:"receipt_url"`
}

// Create handles POST /api/expenses
func (ctrl *ExpenseController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid expense data")
		return
	}

	date, err := parseDateParam(req.Date)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Date must be YYYY-MM-DD")
		return
	}

	expense, err := ctrl.expenseService.CreateExpense(userID, service.ExpenseInput{
		Title:       req.Title,
		Amount:      req.Amount,
		Category:    model.ExpenseCategory(req.Category),
		Date:        date,
		Description: req.Description,
		ReceiptURL:  req.ReceiptURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrExpenseInvalidCategory) {
			apperrors.BadRequest(c, apperrors.ExpenseInvalidCategory, "Unknown expense category")
			return
		}
		log.Error("Expense creation failed", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// List handles GET /api/expenses
func (ctrl *ExpenseController) List(c *gin.Context) {
	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "from must be YYYY-MM-DD")
		return
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "to must be YYYY-MM-DD")
		return
	}

	expenses, err := ctrl.expenseService.ListExpenses(repository.ExpenseFilter{
		Category: model.ExpenseCategory(c.Query("category")),
		From:     from,
		To:       to,
	})
	if err != nil {
		if errors.Is(err, service.ErrExpenseInvalidCategory) {
			apperrors.BadRequest(c, apperrors.ExpenseInvalidCategory, "Unknown expense category")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// Get handles GET /api/expenses/:id
func (ctrl *ExpenseController) Get(c *gin.Context) {
	expenseID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid expense ID")
		return
	}

	expense, err := ctrl.expenseService.GetExpense(expenseID)
	if err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			apperrors.NotFound(c, apperrors.ExpenseNotFound, "Expense not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// Update handles PUT /api/expenses/:id
func (ctrl *ExpenseController) Update(c *gin.Context) {
	expenseID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid expense ID")
		return
	}

	var req expenseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid expense data")
		return
	}

	date, err := parseDateParam(req.Date)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Date must be YYYY-MM-DD")
		return
	}

	expense, err := ctrl.expenseService.UpdateExpense(expenseID, service.ExpenseInput{
		Title:       req.Title,
		Amount:      req.Amount,
		Category:    model.ExpenseCategory(req.Category),
		Date:        date,
		Description: req.Description,
		ReceiptURL:  req.ReceiptURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpenseNotFound):
			apperrors.NotFound(c, apperrors.ExpenseNotFound, "Expense not found")
		case errors.Is(err, service.ErrExpenseInvalidCategory):
			apperrors.BadRequest(c, apperrors.ExpenseInvalidCategory, "Unknown expense category")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// Delete handles DELETE /api/expenses/:id
func (ctrl *ExpenseController) Delete(c *gin.Context) {
	expenseID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid expense ID")
		return
	}

	if err := ctrl.expenseService.DeleteExpense(expenseID); err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			apperrors.NotFound(c, apperrors.ExpenseNotFound, "Expense not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}

// parseDateParam parses an optional YYYY-MM-DD value. Empty input is
// a zero time, not an error.
func parseDateParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
