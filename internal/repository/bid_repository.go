package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"worklink/internal/model"
)

// BidRepository defines bid persistence operations. Create surfaces
// gorm.ErrDuplicatedKey when the (order, executor) unique index rejects a
// second bid; that constraint is the sole guard against the submit race.
type BidRepository interface {
	Create(ctx context.Context, bid *model.Bid) error
	Exists(ctx context.Context, orderID uuid.UUID, executorID uint) (bool, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Bid, error)
	List(ctx context.Context) ([]model.Bid, error)
}

type bidRepository struct {
	db *gorm.DB
}

// NewBidRepository creates a new bid repository.
func NewBidRepository(db *gorm.DB) BidRepository {
	return &bidRepository{db: db}
}

func (r *bidRepository) Create(ctx context.Context, bid *model.Bid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

// Exists reports whether the executor already has a bid on the order.
func (r *bidRepository) Exists(ctx context.Context, orderID uuid.UUID, executorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Bid{}).
		Where("order_id = ? AND executor_id = ?", orderID, executorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByOrder lists an order's bids with executor profiles loaded.
func (r *bidRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Bid, error) {
	var bids []model.Bid
	if err := r.db.WithContext(ctx).
		Preload("Executor").Preload("Executor.Profile").
		Where("order_id = ?", orderID).
		Order("created_at").
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

// List lists all bids with order and executor loaded, for reporting.
func (r *bidRepository) List(ctx context.Context) ([]model.Bid, error) {
	var bids []model.Bid
	if err := r.db.WithContext(ctx).
		Preload("Order").Preload("Executor").
		Order("created_at").
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}
