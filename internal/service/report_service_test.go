package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"worklink/internal/model"
)

func TestReportService_ExportProfiles(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	profiles := []model.Profile{
		{
			ID:             1,
			UserID:         2,
			Role:           model.RoleExecutor,
			Specialization: "backend",
			Rating:         4.5,
			Portfolio:      "https://example.com/bob",
			CreatedAt:      created,
			UpdatedAt:      created,
			User:           &model.User{ID: 2, Username: "bob", Email: "bob@example.com", FirstName: "Bob", LastName: "Builder"},
		},
	}

	mockUser := new(MockUserRepository)
	mockUser.On("ListProfiles", mock.Anything).Return(profiles, nil)

	svc := NewReportService(mockUser, new(MockOrderRepository), new(MockBidRepository))
	var buf bytes.Buffer
	assert.NoError(t, svc.ExportProfiles(context.Background(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, []string{"id", "username", "email", "first_name", "last_name", "role", "specialization", "rating", "portfolio", "created_at", "updated_at"}, records[0])
	assert.Equal(t, []string{"1", "bob", "bob@example.com", "Bob", "Builder", "executor", "backend", "4.5", "https://example.com/bob", "2026-03-14T09:26:53Z", "2026-03-14T09:26:53Z"}, records[1])
}

func TestReportService_ExportOrders(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	deadline := created.AddDate(0, 1, 0)
	executorID := uint(2)
	orders := []model.Order{
		{
			ID:                 uuid.MustParse("b2f7a8f0-0000-4000-8000-000000000001"),
			Title:              "Fix bug",
			Description:        "Crash on login",
			Status:             model.OrderStatusInProgress,
			Deadline:           &deadline,
			Budget:             nullDecimal("15000"),
			CustomerID:         1,
			AssignedExecutorID: &executorID,
			CreatedAt:          created,
			UpdatedAt:          created,
			Customer:           model.User{ID: 1, Username: "alice", Email: "alice@example.com"},
			AssignedExecutor:   &model.User{ID: 2, Username: "bob"},
		},
		{
			ID:          uuid.MustParse("b2f7a8f0-0000-4000-8000-000000000002"),
			Title:       "Write docs",
			Description: "User guide",
			Status:      model.OrderStatusOpen,
			CustomerID:  1,
			CreatedAt:   created,
			UpdatedAt:   created,
			Customer:    model.User{ID: 1, Username: "alice", Email: "alice@example.com"},
		},
	}

	mockOrder := new(MockOrderRepository)
	mockOrder.On("List", mock.Anything).Return(orders, nil)

	svc := NewReportService(new(MockUserRepository), mockOrder, new(MockBidRepository))
	var buf bytes.Buffer
	assert.NoError(t, svc.ExportOrders(context.Background(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, []string{"id", "title", "description", "customer_username", "customer_email", "assigned_executor_username", "status", "deadline", "budget", "created_at", "updated_at"}, records[0])
	assert.Equal(t, []string{"b2f7a8f0-0000-4000-8000-000000000001", "Fix bug", "Crash on login", "alice", "alice@example.com", "bob", "in_progress", "2026-04-14T09:26:53Z", "15000.00", "2026-03-14T09:26:53Z", "2026-03-14T09:26:53Z"}, records[1])
	// Unassigned order with no deadline and no budget leaves those cells empty.
	assert.Equal(t, []string{"b2f7a8f0-0000-4000-8000-000000000002", "Write docs", "User guide", "alice", "alice@example.com", "", "open", "", "", "2026-03-14T09:26:53Z", "2026-03-14T09:26:53Z"}, records[2])
}

func TestReportService_ExportBids(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	bids := []model.Bid{
		{
			ID:            uuid.MustParse("c3e8b9a1-0000-4000-8000-000000000001"),
			OrderID:       uuid.MustParse("b2f7a8f0-0000-4000-8000-000000000001"),
			ExecutorID:    2,
			Message:       "I can do this",
			PriceProposal: nullDecimal("12000"),
			CreatedAt:     created,
			UpdatedAt:     created,
			Order:         model.Order{Title: "Fix bug"},
			Executor:      model.User{ID: 2, Username: "bob", Email: "bob@example.com"},
		},
	}

	mockBid := new(MockBidRepository)
	mockBid.On("List", mock.Anything).Return(bids, nil)

	svc := NewReportService(new(MockUserRepository), new(MockOrderRepository), mockBid)
	var buf bytes.Buffer
	assert.NoError(t, svc.ExportBids(context.Background(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, []string{"id", "order_title", "executor_username", "executor_email", "message", "price_proposal", "created_at", "updated_at"}, records[0])
	assert.Equal(t, []string{"c3e8b9a1-0000-4000-8000-000000000001", "Fix bug", "bob", "bob@example.com", "I can do this", "12000.00", "2026-03-14T09:26:53Z", "2026-03-14T09:26:53Z"}, records[1])
}
