package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/rahat/tastybites-backend/internal/errors"
	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/service"
	"github.com/rahat/tastybites-backend/internal/middleware"
)

// StaffController handles kitchen-side order endpoints
type StaffController struct {
	staffService  service.StaffService
	reportService service.ReportService
}

// NewStaffController creates a new staff controller
func NewStaffController(staffService service.StaffService, reportService service.ReportService) *StaffController {
	return &StaffController{staffService: staffService, reportService: reportService}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type assignOrderRequest struct {
	StaffID uint `json:"staff_id" binding:"required"`
}

// ListOrders handles GET /api/staff/orders
func (ctrl *StaffController) ListOrders(c *gin.Context) {
	status := model.OrderStatus(c.Query("status"))

	orders, err := ctrl.staffService.ListOrders(status)
	if err != nil {
		if errors.Is(err, service.ErrOrderInvalidStatus) {
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Unknown order status")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ListMine handles GET /api/staff/assigned
func (ctrl *StaffController) ListMine(c *gin.Context) {
	staffID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.staffService.ListAssignedOrders(staffID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder handles GET /api/staff/orders/:id
func (ctrl *StaffController) GetOrder(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.staffService.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateStatus handles PATCH /api/staff/orders/:id/status
func (ctrl *StaffController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	staffID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Status is required")
		return
	}

	order, err := ctrl.staffService.UpdateOrderStatus(staffID, orderID, service.UpdateStatusInput{
		Status: model.OrderStatus(req.Status),
		Notes:  req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderInvalidStatus):
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Unknown order status")
		case errors.Is(err, service.ErrTransitionNotAllowed):
			apperrors.Conflict(c, apperrors.OrderInvalidStatus, "This status change is not allowed")
		default:
			log.Error("Status update failed", err, map[string]interface{}{
				"order_id": orderID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Assign handles PATCH /api/staff/orders/:id/assign
func (ctrl *StaffController) Assign(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	managerID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req assignOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "staff_id is required")
		return
	}

	order, err := ctrl.staffService.AssignOrder(managerID, orderID, req.StaffID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrStaffNotFound):
			apperrors.BadRequest(c, apperrors.OrderStaffNotFound, "Staff member not found")
		default:
			log.Error("Order assignment failed", err, map[string]interface{}{
				"order_id": orderID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// MarkPaid handles PATCH /api/staff/orders/:id/paid
func (ctrl *StaffController) MarkPaid(c *gin.Context) {
	staffID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.staffService.MarkPaid(staffID, orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Dashboard handles GET /api/staff/dashboard
func (ctrl *StaffController) Dashboard(c *gin.Context) {
	counts, err := ctrl.staffService.StatusCounts()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	today, err := ctrl.reportService.DailyReport(time.Now())
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	queue, err := ctrl.staffService.ListOrders("")
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	if len(queue) > 10 {
		queue = queue[:10]
	}

	c.JSON(http.StatusOK, gin.H{
		"status_counts": counts,
		"today":         today,
		"active_orders": queue,
	})
}

// ListStaff handles GET /api/staff/members
func (ctrl *StaffController) ListStaff(c *gin.Context) {
	staff, err := ctrl.staffService.ListStaff()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"staff": staff})
}
