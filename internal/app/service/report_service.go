package service

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

var ErrInvalidReportRange = errors.New("invalid report range")

// SalesReport is the aggregated view of a reporting period
type SalesReport struct {
	From            time.Time                                 `json:"from"`
	To              time.Time                                 `json:"to"`
	TotalOrders     int64                                     `json:"total_orders"`
	CancelledOrders int64                                     `json:"cancelled_orders"`
	TotalRevenue    model.Money                           `json:"total_revenue"`
	TotalExpenses   model.Money                           `json:"total_expenses"`
	NetProfit       model.Money                           `json:"net_profit"`
	PopularItems    []repository.PopularItem              `json:"popular_items"`
	CategorySales   []repository.CategorySales            `json:"category_sales"`
	ExpensesByType  map[model.ExpenseCategory]model.Money `json:"expenses_by_type"`
}

// ReportService builds sales and expense reports for the dashboard
type ReportService interface {
	DailyReport(day time.Time) (*SalesReport, error)
	WeeklyReport(weekStart time.Time) (*SalesReport, error)
	MonthlyReport(year int, month time.Month) (*SalesReport, error)
	RangeReport(from, to time.Time) (*SalesReport, error)
	ExportReportXLSX(report *SalesReport) ([]byte, error)
	RollUpDay(day time.Time) (*model.DailySummary, error)
}

type reportService struct {
	reportRepo  repository.ReportRepository
	expenseRepo repository.ExpenseRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, expenseRepo repository.ExpenseRepository) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		expenseRepo: expenseRepo,
	}
}

func (s *reportService) DailyReport(day time.Time) (*SalesReport, error) {
	from := truncateToDay(day)
	return s.RangeReport(from, from.AddDate(0, 0, 1))
}

func (s *reportService) WeeklyReport(weekStart time.Time) (*SalesReport, error) {
	from := truncateToDay(weekStart)
	return s.RangeReport(from, from.AddDate(0, 0, 7))
}

func (s *reportService) MonthlyReport(year int, month time.Month) (*SalesReport, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return s.RangeReport(from, from.AddDate(0, 1, 0))
}

func (s *reportService) RangeReport(from, to time.Time) (*SalesReport, error) {
	if !to.After(from) {
		return nil, ErrInvalidReportRange
	}

	logger.Info("Building sales report", map[string]interface{}{
		"from": from,
		"to":   to,
	})

	totalOrders, err := s.reportRepo.CountOrders(from, to)
	if err != nil {
		return nil, err
	}
	cancelled, err := s.reportRepo.CountCancelledOrders(from, to)
	if err != nil {
		return nil, err
	}
	revenue, err := s.reportRepo.SumRevenue(from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.SumByDateRange(from, to)
	if err != nil {
		return nil, err
	}
	popular, err := s.reportRepo.PopularItems(from, to, 10)
	if err != nil {
		return nil, err
	}
	categorySales, err := s.reportRepo.SalesByCategory(from, to)
	if err != nil {
		return nil, err
	}
	categorySums, err := s.expenseRepo.SumByCategory(from, to)
	if err != nil {
		return nil, err
	}
	expensesByType := make(map[model.ExpenseCategory]model.Money, len(categorySums))
	for category, sum := range categorySums {
		expensesByType[category] = model.NewMoney(sum)
	}

	return &SalesReport{
		From:            from,
		To:              to,
		TotalOrders:     totalOrders,
		CancelledOrders: cancelled,
		TotalRevenue:    model.NewMoney(revenue),
		TotalExpenses:   model.NewMoney(expenses),
		NetProfit:       model.NewMoney(revenue.Sub(expenses)),
		PopularItems:    popular,
		CategorySales:   categorySales,
		ExpensesByType:  expensesByType,
	}, nil
}

// ExportReportXLSX renders the report as a spreadsheet with a summary
// sheet and per-section detail sheets.
func (s *reportService) ExportReportXLSX(report *SalesReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	summaryRows := [][]interface{}{
		{"Report period", fmt.Sprintf("%s to %s", report.From.Format("2006-01-02"), report.To.Format("2006-01-02"))},
		{"Total orders", report.TotalOrders},
		{"Cancelled orders", report.CancelledOrders},
		{"Total revenue", report.TotalRevenue.InexactFloat64()},
		{"Total expenses", report.TotalExpenses.InexactFloat64()},
		{"Net profit", report.NetProfit.InexactFloat64()},
	}
	for i, row := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const itemsSheet = "Popular Items"
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, err
	}
	header := []interface{}{"Item", "Quantity sold", "Revenue"}
	if err := f.SetSheetRow(itemsSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, item := range report.PopularItems {
		row := []interface{}{item.MenuItemName, item.Quantity, item.Revenue.InexactFloat64()}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(itemsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const categorySheet = "Category Sales"
	if _, err := f.NewSheet(categorySheet); err != nil {
		return nil, err
	}
	header = []interface{}{"Category", "Quantity sold", "Revenue"}
	if err := f.SetSheetRow(categorySheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, sale := range report.CategorySales {
		row := []interface{}{sale.CategoryName, sale.Quantity, sale.Revenue.InexactFloat64()}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(categorySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const expenseSheet = "Expenses"
	if _, err := f.NewSheet(expenseSheet); err != nil {
		return nil, err
	}
	header = []interface{}{"Category", "Amount"}
	if err := f.SetSheetRow(expenseSheet, "A1", &header); err != nil {
		return nil, err
	}
	rowIdx := 2
	for _, category := range model.ExpenseCategories {
		amount, ok := report.ExpensesByType[category]
		if !ok {
			continue
		}
		row := []interface{}{string(category), amount.InexactFloat64()}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(expenseSheet, cell, &row); err != nil {
			return nil, err
		}
		rowIdx++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to write report spreadsheet", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

// RollUpDay recomputes and stores the daily summary row for the day
func (s *reportService) RollUpDay(day time.Time) (*model.DailySummary, error) {
	from := truncateToDay(day)
	report, err := s.RangeReport(from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	summary := &model.DailySummary{
		Date:          from,
		TotalOrders:   int(report.TotalOrders),
		TotalRevenue:  report.TotalRevenue,
		TotalExpenses: report.TotalExpenses,
		NetProfit:     report.NetProfit,
	}
	if err := s.reportRepo.UpsertDailySummary(summary); err != nil {
		return nil, err
	}

	logger.Info("Daily summary rolled up", map[string]interface{}{
		"date":         from.Format("2006-01-02"),
		"total_orders": summary.TotalOrders,
		"net_profit":   summary.NetProfit.String(),
	})
	return summary, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
