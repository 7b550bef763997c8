package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bid represents an executor's proposal on an order. The composite unique
// index enforces at most one bid per (order, executor) pair; concurrent
// submissions are resolved by the database, not the application.
type Bid struct {
	ID            uuid.UUID           `json:"id" gorm:"type:char(36);primaryKey"`
	OrderID       uuid.UUID           `json:"order_id" gorm:"type:char(36);not null;uniqueIndex:idx_order_executor"`
	ExecutorID    uint                `json:"executor_id" gorm:"not null;uniqueIndex:idx_order_executor"`
	Message       string              `json:"message,omitempty" gorm:"type:text"`
	PriceProposal decimal.NullDecimal `json:"price_proposal,omitempty" gorm:"type:decimal(10,2)"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`

	// Relations
	Order    Order `json:"-" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Executor User  `json:"-" gorm:"foreignKey:ExecutorID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
