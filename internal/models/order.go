package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a wash order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is the payment state of an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial, PaymentStatusRefunded:
		return true
	}
	return false
}

// Order is a wash order. TotalAmount snapshots the service price at creation
// time; later price changes never touch existing orders. OrderNumber is
// unique across the whole system, not per tenant.
type Order struct {
	BaseModel

	OrderNumber string      `json:"order_number" gorm:"type:varchar(50);uniqueIndex;not null"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Notes       string      `json:"notes" gorm:"type:text"`

	ScheduledAt *time.Time `json:"scheduled_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:numeric(10,2);not null"`
	PaymentStatus PaymentStatus   `json:"payment_status" gorm:"type:varchar(20);not null;default:'pending'"`

	OrganizationID     uuid.UUID  `json:"organization_id" gorm:"type:uuid;not null;index"`
	ClientID           uuid.UUID  `json:"client_id" gorm:"type:uuid;not null;index"`
	ServiceID          uuid.UUID  `json:"service_id" gorm:"type:uuid;not null"`
	VehicleID          uuid.UUID  `json:"vehicle_id" gorm:"type:uuid;not null"`
	AssignedEmployeeID *uuid.UUID `json:"assigned_employee_id" gorm:"type:uuid"`
	BranchID           *uuid.UUID `json:"branch_id" gorm:"type:uuid"`

	Organization     *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Client           *Client       `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Service          *Service      `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Vehicle          *Vehicle      `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	AssignedEmployee *Employee     `json:"assigned_employee,omitempty" gorm:"foreignKey:AssignedEmployeeID"`
	Branch           *Branch       `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) OwnerOrganization() uuid.UUID {
	return o.OrganizationID
}
