package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"worklink/internal/model"
)

// OrderRepository defines order persistence operations. Mutations are
// single-row saves; the workflow relies on the store's per-record atomicity.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	Save(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListOpen(ctx context.Context) ([]model.Order, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]model.Order, error)
	ListByExecutor(ctx context.Context, executorID uint) ([]model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) Save(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOpen lists orders that are open for bidding.
func (r *orderRepository) ListOpen(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).
		Where("status = ?", model.OrderStatusOpen).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uint) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ListByExecutor(ctx context.Context, executorID uint) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).
		Where("assigned_executor_id = ?", executorID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// List lists all orders with customer and executor loaded, for reporting.
func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).
		Preload("Customer").Preload("AssignedExecutor").
		Order("created_at").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
