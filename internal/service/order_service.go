package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"worklink/internal/cache"
	"worklink/internal/errors"
	"worklink/internal/model"
	"worklink/internal/repository"
)

const orderCacheTTL = 5 * time.Minute

// minAmount is the floor for order budgets and bid price proposals.
// Exactly 1000 is accepted.
var minAmount = decimal.NewFromInt(1000)

// OrderInput carries the customer-editable order fields. The same input
// backs creation and editing so both validate identically.
type OrderInput struct {
	Title       string
	Description string
	Deadline    *time.Time
	Budget      decimal.NullDecimal
}

// OrderDetail is the effective state of one order: the record, its bids and
// the transitions the transition table allows from the current status.
type OrderDetail struct {
	Order              model.Order         `json:"order"`
	Bids               []model.Bid         `json:"bids"`
	AllowedTransitions []model.OrderStatus `json:"allowed_transitions"`
}

// OrderService is the order workflow engine. Every mutating method resolves
// the caller's role from the stored profile and checks ownership before
// touching the order.
type OrderService interface {
	Create(ctx context.Context, callerID uint, input OrderInput) (*model.Order, error)
	Update(ctx context.Context, callerID uint, orderID uuid.UUID, input OrderInput) (*model.Order, error)
	Detail(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error)
	ListOpen(ctx context.Context) ([]model.Order, error)
	ListByCustomer(ctx context.Context, callerID uint) ([]model.Order, error)
	ListAssigned(ctx context.Context, callerID uint) ([]model.Order, error)
	ListExecutors(ctx context.Context) ([]model.User, error)
	AssignExecutor(ctx context.Context, callerID uint, orderID uuid.UUID, executorID uint) (*model.Order, error)
	UnassignExecutor(ctx context.Context, callerID uint, orderID uuid.UUID) (*model.Order, error)
	ChangeStatus(ctx context.Context, callerID uint, orderID uuid.UUID, target model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	bidRepo   repository.BidRepository
	userRepo  repository.UserRepository
	cache     *cache.Client
}

// NewOrderService builds the workflow engine over its repositories.
func NewOrderService(
	orderRepo repository.OrderRepository,
	bidRepo repository.BidRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		bidRepo:   bidRepo,
		userRepo:  userRepo,
		cache:     cache,
	}
}

func orderCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("order:%s", id)
}

// loadCaller resolves the authenticated caller with profile. A caller that
// does not resolve fails closed as forbidden rather than not-found.
func loadCaller(ctx context.Context, userRepo repository.UserRepository, callerID uint) (*model.User, error) {
	caller, err := userRepo.FindByID(ctx, callerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrForbidden
		}
		return nil, err
	}
	return caller, nil
}

// requireRole checks the caller's stored role against the closed role set.
// A missing profile or unknown role never grants anything.
func requireRole(caller *model.User, role model.Role) error {
	switch caller.RoleOrEmpty() {
	case role:
		return nil
	case model.RoleCustomer, model.RoleExecutor:
		return errors.ErrForbidden
	default:
		return errors.ErrForbidden
	}
}

func validateOrderInput(input OrderInput) error {
	if input.Budget.Valid && input.Budget.Decimal.LessThan(minAmount) {
		return errors.ErrBudgetTooLow
	}
	if input.Deadline != nil && !input.Deadline.After(time.Now()) {
		return errors.ErrDeadlinePast
	}
	return nil
}

func (s *orderService) findOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// Create posts a new order for the calling customer. Executors cannot
// create orders.
func (s *orderService) Create(ctx context.Context, callerID uint, input OrderInput) (*model.Order, error) {
	caller, err := loadCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(caller, model.RoleCustomer); err != nil {
		return nil, err
	}
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	order := &model.Order{
		Title:       input.Title,
		Description: input.Description,
		Status:      model.OrderStatusOpen,
		Deadline:    input.Deadline,
		Budget:      input.Budget,
		CustomerID:  caller.ID,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// Update edits the customer-editable fields of an owned order. Status and
// assignment are untouched; those move only through the workflow operations.
func (s *orderService) Update(ctx context.Context, callerID uint, orderID uuid.UUID, input OrderInput) (*model.Order, error) {
	caller, err := loadCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != caller.ID {
		return nil, errors.ErrForbidden
	}
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	order.Title = input.Title
	order.Description = input.Description
	order.Deadline = input.Deadline
	order.Budget = input.Budget
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	_ = s.cache.Delete(ctx, orderCacheKey(order.ID))
	return order, nil
}

// Detail returns the order, its bids and the allowed transitions. The
// result is cached briefly; every mutating operation invalidates it.
func (s *orderService) Detail(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error) {
	if data, _ := s.cache.Get(ctx, orderCacheKey(orderID)); data != nil {
		var cached OrderDetail
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	bids, err := s.bidRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	detail := &OrderDetail{
		Order:              *order,
		Bids:               bids,
		AllowedTransitions: model.AllowedTransitions(order.Status),
	}
	if payload, err := json.Marshal(detail); err == nil {
		_ = s.cache.Set(ctx, orderCacheKey(orderID), payload, orderCacheTTL)
	}
	return detail, nil
}

func (s *orderService) ListOpen(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.ListOpen(ctx)
}

// ListByCustomer lists the calling customer's own orders.
func (s *orderService) ListByCustomer(ctx context.Context, callerID uint) ([]model.Order, error) {
	caller, err := loadCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(caller, model.RoleCustomer); err != nil {
		return nil, err
	}
	return s.orderRepo.ListByCustomer(ctx, caller.ID)
}

// ListAssigned lists orders assigned to the calling executor.
func (s *orderService) ListAssigned(ctx context.Context, callerID uint) ([]model.Order, error) {
	caller, err := loadCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(caller, model.RoleExecutor); err != nil {
		return nil, err
	}
	return s.orderRepo.ListByExecutor(ctx, caller.ID)
}

func (s *orderService) ListExecutors(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListExecutors(ctx)
}

// AssignExecutor binds an executor to an owned order and forces the status
// to in_progress. The target must hold the executor role and must already
// have a bid on the order; the override skips the transition table.
func (s *orderService) AssignExecutor(ctx context.Context, callerID uint, orderID uuid.UUID, executorID uint) (*model.Order, error) {
	caller, err := loadCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != caller.ID {
		return nil, errors.ErrForbidden
	}

	executor, err := s.userRepo.FindByID(ctx, executorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	if executor.RoleOrEmpty() != model.RoleExecutor {
		return nil, errors.ErrNotAnExecutor
	}

	hasBid, err := s.bidRepo.Exists(ctx, order.ID, executor.ID)
	if err != nil {
		return nil, err
	}
	if !hasBid {
		return nil, errors.ErrBidRequired
	}

	order.AssignedExecutorID = &executor.ID
	order.Status = model.OrderStatusInProgress
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("assign executor: %w", err)
	}
	_ = s.cache.Delete(ctx, orderCacheKey(order.ID))
	return order, nil
}

// UnassignExecutor releases the executor and forces the status back to
// open, unconditionally.
func (s *orderService) UnassignExecutor(ctx context.Context, callerID uint, orderID uuid.UUID) (*model.Order, error) {
	caller, err := loadCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != caller.ID {
		return nil, errors.ErrForbidden
	}

	order.AssignedExecutorID = nil
	order.Status = model.OrderStatusOpen
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("unassign executor: %w", err)
	}
	_ = s.cache.Delete(ctx, orderCacheKey(order.ID))
	return order, nil
}

// ChangeStatus moves an owned order along the transition table. Entering
// open, completed or cancelled releases the assigned executor; entering
// in_progress leaves it untouched.
func (s *orderService) ChangeStatus(ctx context.Context, callerID uint, orderID uuid.UUID, target model.OrderStatus) (*model.Order, error) {
	caller, err := loadCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != caller.ID {
		return nil, errors.ErrForbidden
	}
	if !target.Valid() || !model.TransitionAllowed(order.Status, target) {
		return nil, errors.ErrInvalidTransition
	}

	order.Status = target
	if target.ClearsExecutor() {
		order.AssignedExecutorID = nil
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("change status: %w", err)
	}
	_ = s.cache.Delete(ctx, orderCacheKey(order.ID))
	return order, nil
}
