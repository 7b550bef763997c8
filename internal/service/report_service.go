package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"worklink/internal/repository"
)

// Column orders are a fixed contract per entity; consumers of the exports
// rely on them, so changes here are breaking.
var (
	profileColumns = []string{"id", "username", "email", "first_name", "last_name", "role", "specialization", "rating", "portfolio", "created_at", "updated_at"}
	orderColumns   = []string{"id", "title", "description", "customer_username", "customer_email", "assigned_executor_username", "status", "deadline", "budget", "created_at", "updated_at"}
	bidColumns     = []string{"id", "order_title", "executor_username", "executor_email", "message", "price_proposal", "created_at", "updated_at"}
)

// ReportService is a read-only export surface over profiles, orders and
// bids. It is decoupled from the workflow engine and never mutates state.
type ReportService interface {
	ExportProfiles(ctx context.Context, w io.Writer) error
	ExportOrders(ctx context.Context, w io.Writer) error
	ExportBids(ctx context.Context, w io.Writer) error
}

type reportService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	bidRepo   repository.BidRepository
}

// NewReportService creates a new report service.
func NewReportService(
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	bidRepo repository.BidRepository,
) ReportService {
	return &reportService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
		bidRepo:   bidRepo,
	}
}

// ExportProfiles writes all profiles as CSV in the fixed column order.
func (s *reportService) ExportProfiles(ctx context.Context, w io.Writer) error {
	profiles, err := s.userRepo.ListProfiles(ctx)
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(profileColumns); err != nil {
		return err
	}
	for _, p := range profiles {
		var username, email, firstName, lastName string
		if p.User != nil {
			username = p.User.Username
			email = p.User.Email
			firstName = p.User.FirstName
			lastName = p.User.LastName
		}
		record := []string{
			strconv.FormatUint(uint64(p.ID), 10),
			username,
			email,
			firstName,
			lastName,
			string(p.Role),
			p.Specialization,
			strconv.FormatFloat(p.Rating, 'f', -1, 64),
			p.Portfolio,
			formatTime(p.CreatedAt),
			formatTime(p.UpdatedAt),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportOrders writes all orders as CSV in the fixed column order.
func (s *reportService) ExportOrders(ctx context.Context, w io.Writer) error {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(orderColumns); err != nil {
		return err
	}
	for _, o := range orders {
		var executorUsername string
		if o.AssignedExecutor != nil {
			executorUsername = o.AssignedExecutor.Username
		}
		var deadline string
		if o.Deadline != nil {
			deadline = formatTime(*o.Deadline)
		}
		record := []string{
			o.ID.String(),
			o.Title,
			o.Description,
			o.Customer.Username,
			o.Customer.Email,
			executorUsername,
			string(o.Status),
			deadline,
			formatAmount(o.Budget),
			formatTime(o.CreatedAt),
			formatTime(o.UpdatedAt),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportBids writes all bids as CSV in the fixed column order.
func (s *reportService) ExportBids(ctx context.Context, w io.Writer) error {
	bids, err := s.bidRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list bids: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(bidColumns); err != nil {
		return err
	}
	for _, b := range bids {
		record := []string{
			b.ID.String(),
			b.Order.Title,
			b.Executor.Username,
			b.Executor.Email,
			b.Message,
			formatAmount(b.PriceProposal),
			formatTime(b.CreatedAt),
			formatTime(b.UpdatedAt),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}
