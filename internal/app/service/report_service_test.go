package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func newReportService(database *gorm.DB) ReportService {
	return NewReportService(
		repository.NewReportRepository(database),
		repository.NewExpenseRepository(database),
	)
}

func TestDailyReport(t *testing.T) {
	database := setupServiceTest(t)
	svc := newReportService(database)
	customer := createTestUser(t, database, model.RoleCustomer)

	// 12.50 subtotal + 1.00 tax + 2.99 fee = 16.49 total per order
	placeTestOrder(t, database, customer.ID)
	placeTestOrder(t, database, customer.ID)

	report, err := svc.DailyReport(time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(2), report.TotalOrders)
	assert.Zero(t, report.CancelledOrders)
	assert.True(t, report.TotalRevenue.Equal(decimal.RequireFromString("32.98")),
		"revenue %s", report.TotalRevenue)
}

func TestDailyReport_ExcludesCancelledRevenue(t *testing.T) {
	database := setupServiceTest(t)
	svc := newReportService(database)
	customer := createTestUser(t, database, model.RoleCustomer)

	kept := placeTestOrder(t, database, customer.ID)
	dropped := placeTestOrder(t, database, customer.ID)

	_, err := newOrderService(database).CancelOrder(customer.ID, dropped.OrderNumber)
	require.NoError(t, err)

	report, err := svc.DailyReport(time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.TotalOrders)
	assert.Equal(t, int64(1), report.CancelledOrders)
	assert.True(t, report.TotalRevenue.Equal(kept.Total.Decimal),
		"revenue %s, want %s", report.TotalRevenue, kept.Total)
}

func TestDailyReport_NetProfit(t *testing.T) {
	database := setupServiceTest(t)
	svc := newReportService(database)
	customer := createTestUser(t, database, model.RoleCustomer)
	manager := createTestUser(t, database, model.RoleManager)

	order := placeTestOrder(t, database, customer.ID)

	expenseSvc := NewExpenseService(repository.NewExpenseRepository(database))
	_, err := expenseSvc.CreateExpense(manager.ID, ExpenseInput{
		Title:    "Flour delivery",
		Amount:   decimal.RequireFromString("5.00"),
		Category: model.ExpenseIngredients,
		Date:     time.Now(),
	})
	require.NoError(t, err)

	report, err := svc.DailyReport(time.Now())
	require.NoError(t, err)

	assert.True(t, report.TotalExpenses.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, report.NetProfit.Equal(order.Total.Sub(decimal.RequireFromString("5.00"))),
		"net profit %s", report.NetProfit)
	assert.True(t, report.ExpensesByType[model.ExpenseIngredients].Equal(decimal.RequireFromString("5.00")))
}

func TestDailyReport_PopularItems(t *testing.T) {
	database := setupServiceTest(t)
	svc := newReportService(database)
	customer := createTestUser(t, database, model.RoleCustomer)

	pizza, salad := createTestMenu(t, database)
	cartSvc := newCartService(database)
	_, err := cartSvc.AddToCart(customer.ID, AddToCartInput{MenuItemID: pizza.ID, Quantity: 3})
	require.NoError(t, err)
	_, err = cartSvc.AddToCart(customer.ID, AddToCartInput{MenuItemID: salad.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = newOrderService(database).PlaceOrder(customer.ID, deliveryCheckout())
	require.NoError(t, err)

	report, err := svc.DailyReport(time.Now())
	require.NoError(t, err)

	require.Len(t, report.PopularItems, 2)
	assert.Equal(t, "Margherita Pizza", report.PopularItems[0].MenuItemName)
	assert.Equal(t, 3, report.PopularItems[0].Quantity)
	require.Len(t, report.CategorySales, 1)
	assert.Equal(t, 4, report.CategorySales[0].Quantity)
}

func TestRangeReport_InvalidRange(t *testing.T) {
	database := setupServiceTest(t)
	svc := newReportService(database)

	now := time.Now()
	_, err := svc.RangeReport(now, now.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidReportRange)
}

func TestExportReportXLSX(t *testing.T) {
	database := setupServiceTest(t)
	svc := newReportService(database)
	customer := createTestUser(t, database, model.RoleCustomer)
	placeTestOrder(t, database, customer.ID)

	report, err := svc.DailyReport(time.Now())
	require.NoError(t, err)

	data, err := svc.ExportReportXLSX(report)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Popular Items")
	assert.Contains(t, sheets, "Category Sales")
	assert.Contains(t, sheets, "Expenses")

	orders, err := workbook.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "1", orders)
}

func TestRollUpDay(t *testing.T) {
	database := setupServiceTest(t)
	svc := newReportService(database)
	customer := createTestUser(t, database, model.RoleCustomer)
	order := placeTestOrder(t, database, customer.ID)

	summary, err := svc.RollUpDay(time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalOrders)
	assert.True(t, summary.TotalRevenue.Equal(order.Total.Decimal))

	// Running the roll-up again replaces, not duplicates
	_, err = svc.RollUpDay(time.Now())
	require.NoError(t, err)

	var count int64
	require.NoError(t, database.Model(&model.DailySummary{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
