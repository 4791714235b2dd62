package repository

import (
	"time"

	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"gorm.io/gorm"
)

// OrderRepository handles order data access. Checkout and status
// transitions run inside service-managed transactions; the repository
// covers reads and simple writes.
type OrderRepository interface {
	FindByID(id uint) (*model.Order, error)
	FindByOrderNumber(orderNumber string) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	FindByStatus(status model.OrderStatus) ([]model.Order, error)
	FindActive() ([]model.Order, error)
	FindByAssignee(staffID uint) ([]model.Order, error)
	CountByStatus() (map[model.OrderStatus]int64, error)
	FindByDateRange(from, to time.Time) ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// withDetail preloads everything a single-order view needs. Status
// updates come back oldest first so the last element is the current one.
func (r *orderRepository) withDetail() *gorm.DB {
	return r.db.
		Preload("OrderItems").
		Preload("StatusUpdates", func(db *gorm.DB) *gorm.DB {
			return db.Order("status_updates.created_at ASC, status_updates.id ASC")
		}).
		Preload("StatusUpdates.UpdatedBy").
		Preload("AssignedTo")
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	if err := r.withDetail().First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByOrderNumber(orderNumber string) (*model.Order, error) {
	var order model.Order
	err := r.withDetail().
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByStatus(status model.OrderStatus) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Preload("OrderItems").
		Preload("AssignedTo").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by status", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}
	return orders, nil
}

// FindActive returns orders still in the kitchen pipeline, oldest first
func (r *orderRepository) FindActive() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Preload("OrderItems").
		Preload("AssignedTo").
		Where("status NOT IN ?", []model.OrderStatus{
			model.OrderStatusDelivered,
			model.OrderStatusPickedUp,
			model.OrderStatusCancelled,
		}).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find active orders", err)
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByAssignee(staffID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Preload("OrderItems").
		Where("assigned_to_id = ?", staffID).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by assignee", err, map[string]interface{}{
			"staff_id": staffID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) CountByStatus() (map[model.OrderStatus]int64, error) {
	type row struct {
		Status model.OrderStatus
		Count  int64
	}
	var rows []row
	err := r.db.Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to count orders by status", err)
		return nil, err
	}

	counts := make(map[model.OrderStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

func (r *orderRepository) FindByDateRange(from, to time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Preload("OrderItems").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by date range", err, map[string]interface{}{
			"from": from,
			"to":   to,
		})
		return nil, err
	}
	return orders, nil
}
