package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"worklink/internal/cache"
	"worklink/internal/errors"
	"worklink/internal/model"
	"worklink/internal/repository"
)

// BidInput carries the executor-supplied bid fields.
type BidInput struct {
	Message       string
	PriceProposal decimal.NullDecimal
}

// BidService handles bid submission and listing.
type BidService interface {
	Submit(ctx context.Context, callerID uint, orderID uuid.UUID, input BidInput) (*model.Bid, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Bid, error)
}

type bidService struct {
	bidRepo   repository.BidRepository
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	cache     *cache.Client
}

// NewBidService builds a BidService over its repositories.
func NewBidService(
	bidRepo repository.BidRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) BidService {
	return &bidService{
		bidRepo:   bidRepo,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		cache:     cache,
	}
}

// Submit creates the calling executor's bid on an order. The (order,
// executor) unique index is the single guard against duplicates, so two
// racing submissions resolve to one row with the loser failing cleanly.
func (s *bidService) Submit(ctx context.Context, callerID uint, orderID uuid.UUID, input BidInput) (*model.Bid, error) {
	caller, err := loadCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(caller, model.RoleExecutor); err != nil {
		return nil, err
	}
	if input.PriceProposal.Valid && input.PriceProposal.Decimal.LessThan(minAmount) {
		return nil, errors.ErrBudgetTooLow
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, err
	}

	bid := &model.Bid{
		OrderID:       order.ID,
		ExecutorID:    caller.ID,
		Message:       input.Message,
		PriceProposal: input.PriceProposal,
	}
	if err := s.bidRepo.Create(ctx, bid); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrDuplicateBid
		}
		return nil, fmt.Errorf("create bid: %w", err)
	}
	_ = s.cache.Delete(ctx, orderCacheKey(order.ID))
	return bid, nil
}

func (s *bidService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Bid, error) {
	return s.bidRepo.ListByOrder(ctx, orderID)
}
