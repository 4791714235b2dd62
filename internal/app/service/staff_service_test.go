package service

import (
	"testing"

	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStaffService(database *gorm.DB) StaffService {
	return NewStaffService(
		repository.NewOrderRepository(database),
		repository.NewUserRepository(database),
		database,
	)
}

func placeTestOrder(t *testing.T, database *gorm.DB, userID uint) *model.Order {
	t.Helper()
	pizza, _ := createTestMenu(t, database)
	fillCart(t, database, userID, pizza, 1)
	order, err := newOrderService(database).PlaceOrder(userID, deliveryCheckout())
	require.NoError(t, err)
	return order
}

func TestUpdateOrderStatus(t *testing.T) {
	database := setupServiceTest(t)
	svc := newStaffService(database)
	customer := createTestUser(t, database, model.RoleCustomer)
	staff := createTestUser(t, database, model.RoleStaff)
	order := placeTestOrder(t, database, customer.ID)

	updated, err := svc.UpdateOrderStatus(staff.ID, order.ID, UpdateStatusInput{
		Status: model.OrderStatusPreparing,
		Notes:  "On the grill",
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPreparing, updated.Status)
	require.Len(t, updated.StatusUpdates, 2)

	last := updated.StatusUpdates[len(updated.StatusUpdates)-1]
	assert.Equal(t, model.OrderStatusPreparing, last.Status)
	assert.Equal(t, "On the grill", last.Notes)
	require.NotNil(t, last.UpdatedByID)
	assert.Equal(t, staff.ID, *last.UpdatedByID)
	// Cached status always equals the newest ledger row
	assert.Equal(t, last.Status, updated.Status)
}

func TestUpdateOrderStatus_DefaultNote(t *testing.T) {
	database := setupServiceTest(t)
	svc := newStaffService(database)
	customer := createTestUser(t, database, model.RoleCustomer)
	staff := createTestUser(t, database, model.RoleStaff)
	order := placeTestOrder(t, database, customer.ID)

	updated, err := svc.UpdateOrderStatus(staff.ID, order.ID, UpdateStatusInput{
		Status: model.OrderStatusReady,
	})
	require.NoError(t, err)

	last := updated.StatusUpdates[len(updated.StatusUpdates)-1]
	assert.Equal(t, "Status changed to READY", last.Notes)
}

func TestUpdateOrderStatus_UnknownStatus(t *testing.T) {
	database := setupServiceTest(t)
	svc := newStaffService(database)
	customer := createTestUser(t, database, model.RoleCustomer)
	staff := createTestUser(t, database, model.RoleStaff)
	order := placeTestOrder(t, database, customer.ID)

	_, err := svc.UpdateOrderStatus(staff.ID, order.ID, UpdateStatusInput{Status: "FROZEN"})
	assert.ErrorIs(t, err, ErrOrderInvalidStatus)
}

func TestUpdateOrderStatus_CancelledCanBeReopened(t *testing.T) {
	database := setupServiceTest(t)
	svc := newStaffService(database)
	customer := createTestUser(t, database, model.RoleCustomer)
	staff := createTestUser(t, database, model.RoleStaff)
	order := placeTestOrder(t, database, customer.ID)

	_, err := newOrderService(database).CancelOrder(customer.ID, order.OrderNumber)
	require.NoError(t, err)

	// No transition guard: staff may move a cancelled order back into
	// the pipeline, and the ledger records both moves.
	updated, err := svc.UpdateOrderStatus(staff.ID, order.ID, UpdateStatusInput{
		Status: model.OrderStatusPreparing,
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPreparing, updated.Status)
	require.Len(t, updated.StatusUpdates, 3)
	assert.Equal(t, model.OrderStatusCancelled, updated.StatusUpdates[1].Status)
	assert.Equal(t, model.OrderStatusPreparing, updated.StatusUpdates[2].Status)
}

func TestUpdateOrderStatus_SkippingStepsIsAllowed(t *testing.T) {
	database := setupServiceTest(t)
	svc := newStaffService(database)
	customer := createTestUser(t, database, model.RoleCustomer)
	staff := createTestUser(t, database, model.RoleStaff)
	order := placeTestOrder(t, database, customer.ID)

	// NEW straight to DELIVERED, no intermediate steps required
	updated, err := svc.UpdateOrderStatus(staff.ID, order.ID, UpdateStatusInput{
		Status: model.OrderStatusDelivered,
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusDelivered, updated.Status)
	assert.NotNil(t, updated.ActualFulfillmentAt)
}

func TestAssignOrder(t *testing.T) {
	database := setupServiceTest(t)
	svc := newStaffService(database)
	customer := createTestUser(t, database, model.RoleCustomer)
	manager := createTestUser(t, database, model.RoleManager)
	staff := createTestUser(t, database, model.RoleStaff)
	order := placeTestOrder(t, database, customer.ID)

	assigned, err := svc.AssignOrder(manager.ID, order.ID, staff.ID)
	require.NoError(t, err)

	require.NotNil(t, assigned.AssignedToID)
	assert.Equal(t, staff.ID, *assigned.AssignedToID)
	// Assignment is recorded without changing the order's status
	assert.Equal(t, model.OrderStatusNew, assigned.Status)

	last := assigned.StatusUpdates[len(assigned.StatusUpdates)-1]
	assert.Equal(t, model.OrderStatusNew, last.Status)
	assert.Equal(t, "Assigned to "+staff.Name, last.Notes)
}

func TestAssignOrder_CustomerIsNotStaff(t *testing.T) {
	database := setupServiceTest(t)
	svc := newStaffService(database)
	customer := createTestUser(t, database, model.RoleCustomer)
	manager := createTestUser(t, database, model.RoleManager)
	other := createTestUser(t, database, model.RoleCustomer)
	order := placeTestOrder(t, database, customer.ID)

	_, err := svc.AssignOrder(manager.ID, order.ID, other.ID)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestListOrders_ByStatus(t *testing.T) {
	database := setupServiceTest(t)
	svc := newStaffService(database)
	customer := createTestUser(t, database, model.RoleCustomer)
	staff := createTestUser(t, database, model.RoleStaff)

	first := placeTestOrder(t, database, customer.ID)
	placeTestOrder(t, database, customer.ID)

	_, err := svc.UpdateOrderStatus(staff.ID, first.ID, UpdateStatusInput{
		Status: model.OrderStatusPreparing,
	})
	require.NoError(t, err)

	preparing, err := svc.ListOrders(model.OrderStatusPreparing)
	require.NoError(t, err)
	require.Len(t, preparing, 1)
	assert.Equal(t, first.ID, preparing[0].ID)

	newOrders, err := svc.ListOrders(model.OrderStatusNew)
	require.NoError(t, err)
	assert.Len(t, newOrders, 1)
}

func TestListOrders_ActiveExcludesFinished(t *testing.T) {
	database := setupServiceTest(t)
	svc := newStaffService(database)
	customer := createTestUser(t, database, model.RoleCustomer)
	staff := createTestUser(t, database, model.RoleStaff)

	first := placeTestOrder(t, database, customer.ID)
	placeTestOrder(t, database, customer.ID)

	_, err := svc.UpdateOrderStatus(staff.ID, first.ID, UpdateStatusInput{
		Status: model.OrderStatusDelivered,
	})
	require.NoError(t, err)

	active, err := svc.ListOrders("")
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestMarkPaid(t *testing.T) {
	database := setupServiceTest(t)
	svc := newStaffService(database)
	customer := createTestUser(t, database, model.RoleCustomer)
	staff := createTestUser(t, database, model.RoleStaff)
	order := placeTestOrder(t, database, customer.ID)

	paid, err := svc.MarkPaid(staff.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, paid.PaymentStatus)
}

func TestStatusCounts(t *testing.T) {
	database := setupServiceTest(t)
	svc := newStaffService(database)
	customer := createTestUser(t, database, model.RoleCustomer)

	placeTestOrder(t, database, customer.ID)
	placeTestOrder(t, database, customer.ID)

	counts, err := svc.StatusCounts()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[model.OrderStatusNew])
}
