package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusOpen       OrderStatus = "open"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderStatuses lists all statuses in declaration order. AllowedTransitions
// renders its result in this order so UI selectors stay stable.
var orderStatuses = []OrderStatus{
	OrderStatusOpen,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// statusTransitions is the fixed directed graph of legal status changes.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusOpen:       {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted, OrderStatusCancelled, OrderStatusOpen},
	OrderStatusCompleted:  {OrderStatusOpen},
	OrderStatusCancelled:  {OrderStatusOpen},
}

// Valid reports whether the status is one of the known variants.
func (s OrderStatus) Valid() bool {
	for _, known := range orderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses an order in the given status may
// move to, always including the status itself. The same function backs the
// detail-view payload and transition enforcement so the two never diverge.
func AllowedTransitions(current OrderStatus) []OrderStatus {
	destinations := statusTransitions[current]

	allowed := make([]OrderStatus, 0, len(destinations)+1)
	for _, status := range orderStatuses {
		if status == current {
			allowed = append(allowed, status)
			continue
		}
		for _, dest := range destinations {
			if status == dest {
				allowed = append(allowed, status)
				break
			}
		}
	}
	return allowed
}

// TransitionAllowed reports whether an order may move from current to target.
func TransitionAllowed(current, target OrderStatus) bool {
	for _, status := range AllowedTransitions(current) {
		if status == target {
			return true
		}
	}
	return false
}

// ClearsExecutor reports whether entering the status releases the assigned
// executor. Only in_progress keeps the assignment.
func (s OrderStatus) ClearsExecutor() bool {
	return s == OrderStatusOpen || s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order represents a unit of work posted by a customer.
type Order struct {
	ID                 uuid.UUID           `json:"id" gorm:"type:char(36);primaryKey"`
	Title              string              `json:"title" gorm:"size:255;not null"`
	Description        string              `json:"description" gorm:"type:text;not null"`
	Status             OrderStatus         `json:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	Deadline           *time.Time          `json:"deadline,omitempty"`
	Budget             decimal.NullDecimal `json:"budget,omitempty" gorm:"type:decimal(10,2)"`
	CustomerID         uint                `json:"customer_id" gorm:"not null;index"`
	AssignedExecutorID *uint               `json:"assigned_executor_id,omitempty" gorm:"index"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`

	// Relations
	Customer         User  `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	AssignedExecutor *User `json:"-" gorm:"foreignKey:AssignedExecutorID;constraint:OnDelete:SET NULL"`
	Bids             []Bid `json:"bids,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID and default status before creating the record.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderStatusOpen
	}
	return nil
}
