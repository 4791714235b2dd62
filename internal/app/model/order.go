package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type OrderType string
type PaymentStatus string
type PaymentMethod string

const (
	OrderStatusNew            OrderStatus = "NEW"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusReady          OrderStatus = "READY"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusPickedUp       OrderStatus = "PICKED_UP"
	OrderStatusCancelled      OrderStatus = "CANCELLED"

	OrderTypeDelivery OrderType = "DELIVERY"
	OrderTypePickup   OrderType = "PICKUP"

	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"

	PaymentMethodCash          PaymentMethod = "CASH"
	PaymentMethodCreditCard    PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard     PaymentMethod = "DEBIT_CARD"
	PaymentMethodOnlinePayment PaymentMethod = "ONLINE_PAYMENT"
)

// OrderStatuses lists every recognized status value
var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusPickedUp,
	OrderStatusCancelled,
}

// IsValid reports whether s is one of the recognized status values
func (s OrderStatus) IsValid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Order struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	OrderNumber string      `gorm:"size:20;uniqueIndex;not null" json:"order_number"`
	Status      OrderStatus `gorm:"type:varchar(20);default:'NEW'" json:"status"`
	OrderType   OrderType   `gorm:"type:varchar(10);default:'DELIVERY'" json:"order_type"`

	// Customer contact, copied at checkout so later profile edits do not
	// alter historical orders
	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20;not null" json:"customer_phone"`
	CustomerEmail string `gorm:"size:255;not null" json:"customer_email"`

	// Delivery details (delivery orders)
	DeliveryAddress      string `gorm:"type:text" json:"delivery_address"`
	DeliveryInstructions string `gorm:"type:text" json:"delivery_instructions"`

	// Pickup details (pickup orders)
	PickupTime *time.Time `json:"pickup_time,omitempty"`

	// Payment is recorded, not processed
	PaymentStatus PaymentStatus `gorm:"type:varchar(10);default:'PENDING'" json:"payment_status"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(15);default:'CASH'" json:"payment_method"`

	// Monetary fields; Total = Subtotal + Tax + DeliveryFee - Discount
	Subtotal    Money `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax         Money `gorm:"type:decimal(10,2);not null" json:"tax"`
	DeliveryFee Money `gorm:"type:decimal(10,2);default:0" json:"delivery_fee"`
	Discount    Money `gorm:"type:decimal(10,2);default:0" json:"discount"`
	Total       Money `gorm:"type:decimal(10,2);not null" json:"total"`

	AssignedToID *uint `gorm:"index" json:"assigned_to_id,omitempty"`

	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	EstimatedFulfillmentAt *time.Time    `json:"estimated_fulfillment_at,omitempty"`
	ActualFulfillmentAt    *time.Time    `json:"actual_fulfillment_at,omitempty"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`

	User          User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AssignedTo    *User          `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	OrderItems    []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
	StatusUpdates []StatusUpdate `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"status_updates,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// IsDelivery reports whether the order is fulfilled by delivery
func (o *Order) IsDelivery() bool {
	return o.OrderType == OrderTypeDelivery
}

// IsPickup reports whether the order is fulfilled by pickup
func (o *Order) IsPickup() bool {
	return o.OrderType == OrderTypePickup
}

// OrderItem is a price- and variant-frozen snapshot of a cart line taken
// at checkout. Immutable once created; catalog edits never touch it.
type OrderItem struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	OrderID             uint      `gorm:"not null;index" json:"order_id"`
	MenuItemID          uint      `gorm:"not null;index" json:"menu_item_id"`
	MenuItemName        string    `gorm:"size:100;not null" json:"menu_item_name"`
	Variant             string    `gorm:"size:100" json:"variant"` // display label, not a live reference
	Quantity            int       `gorm:"not null;default:1" json:"quantity"`
	UnitPrice           Money     `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice          Money     `gorm:"type:decimal(10,2);not null" json:"total_price"`
	SpecialInstructions string    `gorm:"type:text" json:"special_instructions"`
	CreatedAt           time.Time `json:"created_at"`

	Order    Order    `gorm:"foreignKey:OrderID" json:"-"`
	MenuItem MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
