package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderInvalidStatus   = errors.New("unknown order status")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrStaffNotFound        = errors.New("staff member not found")
)

// UpdateStatusInput holds the fields of a staff status change
type UpdateStatusInput struct {
	Status model.OrderStatus
	Notes  string
}

// StaffService handles the kitchen side of the order workflow
type StaffService interface {
	ListOrders(status model.OrderStatus) ([]model.Order, error)
	ListActiveOrders() ([]model.Order, error)
	ListAssignedOrders(staffID uint) ([]model.Order, error)
	GetOrder(orderID uint) (*model.Order, error)
	GetOrderByNumber(orderNumber string) (*model.Order, error)
	UpdateOrderStatus(staffID, orderID uint, input UpdateStatusInput) (*model.Order, error)
	AssignOrder(managerID, orderID, staffID uint) (*model.Order, error)
	MarkPaid(staffID, orderID uint) (*model.Order, error)
	StatusCounts() (map[model.OrderStatus]int64, error)
	ListStaff() ([]model.User, error)
}

type staffService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	db        *gorm.DB
}

// NewStaffService creates a new staff service
func NewStaffService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, db *gorm.DB) StaffService {
	return &staffService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		db:        db,
	}
}

func (s *staffService) ListOrders(status model.OrderStatus) ([]model.Order, error) {
	if status == "" {
		return s.orderRepo.FindActive()
	}
	if !status.IsValid() {
		return nil, ErrOrderInvalidStatus
	}
	return s.orderRepo.FindByStatus(status)
}

func (s *staffService) ListActiveOrders() ([]model.Order, error) {
	return s.orderRepo.FindActive()
}

func (s *staffService) ListAssignedOrders(staffID uint) ([]model.Order, error) {
	return s.orderRepo.FindByAssignee(staffID)
}

func (s *staffService) GetOrder(orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *staffService) GetOrderByNumber(orderNumber string) (*model.Order, error) {
	order, err := s.orderRepo.FindByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// transitionAllowed is the single place transition policy lives. The
// policy is deliberately lenient: staff may move an order between any
// recognized statuses, including reopening a cancelled one. Swap in an
// allowed-transition table here to harden it without touching callers.
func transitionAllowed(from, to model.OrderStatus) bool {
	return true
}

// UpdateOrderStatus moves the order to a new status: the cached status
// on the order row and a new ledger row commit together.
func (s *staffService) UpdateOrderStatus(staffID, orderID uint, input UpdateStatusInput) (*model.Order, error) {
	if !input.Status.IsValid() {
		return nil, ErrOrderInvalidStatus
	}

	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(order.Status, input.Status) {
		logger.Warn("Status transition refused", map[string]interface{}{
			"order_id": orderID,
			"from":     order.Status,
			"to":       input.Status,
		})
		return nil, ErrTransitionNotAllowed
	}

	notes := input.Notes
	if notes == "" {
		notes = fmt.Sprintf("Status changed to %s", input.Status)
	}

	updates := map[string]interface{}{"status": input.Status}
	if input.Status == model.OrderStatusDelivered || input.Status == model.OrderStatusPickedUp {
		now := time.Now()
		updates["actual_fulfillment_at"] = &now
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&model.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	statusUpdate := &model.StatusUpdate{
		OrderID:     order.ID,
		Status:      input.Status,
		Notes:       notes,
		UpdatedByID: &staffID,
	}
	if err := tx.Create(statusUpdate).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to append status update", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"staff_id": staffID,
		"from":     order.Status,
		"to":       input.Status,
	})
	return s.orderRepo.FindByID(order.ID)
}

// AssignOrder hands the order to a staff member. The order keeps its
// current status; the assignment is still recorded in the ledger.
func (s *staffService) AssignOrder(managerID, orderID, staffID uint) (*model.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	staff, err := s.userRepo.FindByID(staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	if !staff.IsStaffRole() {
		return nil, ErrStaffNotFound
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&model.Order{}).Where("id = ?", order.ID).
		Update("assigned_to_id", staffID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	statusUpdate := &model.StatusUpdate{
		OrderID:     order.ID,
		Status:      order.Status,
		Notes:       fmt.Sprintf("Assigned to %s", staff.Name),
		UpdatedByID: &managerID,
	}
	if err := tx.Create(statusUpdate).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Order assigned", map[string]interface{}{
		"order_id":   orderID,
		"staff_id":   staffID,
		"manager_id": managerID,
	})
	return s.orderRepo.FindByID(order.ID)
}

// MarkPaid records payment received, typically for cash on delivery
func (s *staffService) MarkPaid(staffID, orderID uint) (*model.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&model.Order{}).Where("id = ?", order.ID).
		Update("payment_status", model.PaymentStatusPaid).Error; err != nil {
		logger.Error("Failed to mark order paid", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	logger.Info("Order marked paid", map[string]interface{}{
		"order_id": orderID,
		"staff_id": staffID,
	})
	return s.orderRepo.FindByID(order.ID)
}

func (s *staffService) StatusCounts() (map[model.OrderStatus]int64, error) {
	return s.orderRepo.CountByStatus()
}

func (s *staffService) ListStaff() ([]model.User, error) {
	return s.userRepo.FindStaff()
}
