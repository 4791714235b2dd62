package repository

import (
	"time"

	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PopularItem is one row of a best-seller ranking
type PopularItem struct {
	MenuItemID   uint        `json:"menu_item_id"`
	MenuItemName string      `json:"menu_item_name"`
	Quantity     int         `json:"quantity"`
	Revenue      model.Money `json:"revenue"`
}

// CategorySales is one row of a per-category revenue breakdown
type CategorySales struct {
	CategoryID   uint        `json:"category_id"`
	CategoryName string      `json:"category_name"`
	Quantity     int         `json:"quantity"`
	Revenue      model.Money `json:"revenue"`
}

// ReportRepository runs the aggregation queries behind dashboard reports
type ReportRepository interface {
	CountOrders(from, to time.Time) (int64, error)
	CountCancelledOrders(from, to time.Time) (int64, error)
	SumRevenue(from, to time.Time) (decimal.Decimal, error)
	PopularItems(from, to time.Time, limit int) ([]PopularItem, error)
	SalesByCategory(from, to time.Time) ([]CategorySales, error)
	UpsertDailySummary(summary *model.DailySummary) error
	FindDailySummaries(from, to time.Time) ([]model.DailySummary, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// revenueStatuses are the order states that count toward revenue.
// Cancelled orders never do.
var revenueStatuses = []model.OrderStatus{
	model.OrderStatusNew,
	model.OrderStatusPreparing,
	model.OrderStatusReady,
	model.OrderStatusOutForDelivery,
	model.OrderStatusDelivered,
	model.OrderStatusPickedUp,
}

func (r *reportRepository) CountOrders(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Where("status IN ?", revenueStatuses).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count orders for report", err)
		return 0, err
	}
	return count, nil
}

func (r *reportRepository) CountCancelledOrders(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Where("status = ?", model.OrderStatusCancelled).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count cancelled orders for report", err)
		return 0, err
	}
	return count, nil
}

func (r *reportRepository) SumRevenue(from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.Model(&model.Order{}).
		Select("SUM(total)").
		Where("created_at >= ? AND created_at < ?", from, to).
		Where("status IN ?", revenueStatuses).
		Scan(&total).Error
	if err != nil {
		logger.Error("Failed to sum revenue for report", err)
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *reportRepository) PopularItems(from, to time.Time, limit int) ([]PopularItem, error) {
	var items []PopularItem
	err := r.db.Model(&model.OrderItem{}).
		Select("order_items.menu_item_id, order_items.menu_item_name, SUM(order_items.quantity) as quantity, SUM(order_items.total_price) as revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", from, to).
		Where("orders.status IN ?", revenueStatuses).
		Group("order_items.menu_item_id, order_items.menu_item_name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		logger.Error("Failed to find popular items for report", err)
		return nil, err
	}
	return items, nil
}

func (r *reportRepository) SalesByCategory(from, to time.Time) ([]CategorySales, error) {
	var sales []CategorySales
	err := r.db.Model(&model.OrderItem{}).
		Select("categories.id as category_id, categories.name as category_name, SUM(order_items.quantity) as quantity, SUM(order_items.total_price) as revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Joins("JOIN categories ON categories.id = menu_items.category_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", from, to).
		Where("orders.status IN ?", revenueStatuses).
		Group("categories.id, categories.name").
		Order("revenue DESC").
		Scan(&sales).Error
	if err != nil {
		logger.Error("Failed to find category sales for report", err)
		return nil, err
	}
	return sales, nil
}

// UpsertDailySummary inserts or replaces the roll-up row for the
// summary's date.
func (r *reportRepository) UpsertDailySummary(summary *model.DailySummary) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_orders", "total_revenue", "total_expenses", "net_profit", "updated_at",
		}),
	}).Create(summary).Error
	if err != nil {
		logger.Error("Failed to upsert daily summary", err, map[string]interface{}{
			"date": summary.Date,
		})
		return err
	}
	return nil
}

func (r *reportRepository) FindDailySummaries(from, to time.Time) ([]model.DailySummary, error) {
	var summaries []model.DailySummary
	err := r.db.
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Find(&summaries).Error
	if err != nil {
		logger.Error("Failed to find daily summaries", err)
		return nil, err
	}
	return summaries, nil
}
