package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"worklink/internal/errors"
	"worklink/internal/model"
)

func TestBidService_Submit(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name          string
		callerID      uint
		input         BidInput
		setupMock     func(*MockUserRepository, *MockOrderRepository, *MockBidRepository)
		expectedError error
	}{
		{
			name:     "executor submits a bid",
			callerID: 2,
			input:    BidInput{Message: "I can do this", PriceProposal: nullDecimal("12000")},
			setupMock: func(mUser *MockUserRepository, mOrder *MockOrderRepository, mBid *MockBidRepository) {
				mUser.On("FindByID", mock.Anything, uint(2)).Return(testExecutor(2), nil)
				mOrder.On("FindByID", mock.Anything, orderID).Return(&model.Order{ID: orderID, CustomerID: 1, Status: model.OrderStatusOpen}, nil)
				mBid.On("Create", mock.Anything, mock.AnythingOfType("*model.Bid")).Return(nil)
			},
		},
		{
			name:     "second bid on the same order is rejected",
			callerID: 2,
			input:    BidInput{Message: "again"},
			setupMock: func(mUser *MockUserRepository, mOrder *MockOrderRepository, mBid *MockBidRepository) {
				mUser.On("FindByID", mock.Anything, uint(2)).Return(testExecutor(2), nil)
				mOrder.On("FindByID", mock.Anything, orderID).Return(&model.Order{ID: orderID, CustomerID: 1, Status: model.OrderStatusOpen}, nil)
				mBid.On("Create", mock.Anything, mock.AnythingOfType("*model.Bid")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: errors.ErrDuplicateBid,
		},
		{
			name:     "customer cannot bid",
			callerID: 1,
			input:    BidInput{Message: "me too"},
			setupMock: func(mUser *MockUserRepository, mOrder *MockOrderRepository, mBid *MockBidRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(testCustomer(1), nil)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:     "price proposal below the floor is rejected",
			callerID: 2,
			input:    BidInput{Message: "cheap", PriceProposal: nullDecimal("500")},
			setupMock: func(mUser *MockUserRepository, mOrder *MockOrderRepository, mBid *MockBidRepository) {
				mUser.On("FindByID", mock.Anything, uint(2)).Return(testExecutor(2), nil)
			},
			expectedError: errors.ErrBudgetTooLow,
		},
		{
			name:     "bid on a missing order",
			callerID: 2,
			input:    BidInput{Message: "hello"},
			setupMock: func(mUser *MockUserRepository, mOrder *MockOrderRepository, mBid *MockBidRepository) {
				mUser.On("FindByID", mock.Anything, uint(2)).Return(testExecutor(2), nil)
				mOrder.On("FindByID", mock.Anything, orderID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrOrderNotFound,
		},
		{
			name:     "unknown caller fails closed",
			callerID: 9,
			input:    BidInput{Message: "hello"},
			setupMock: func(mUser *MockUserRepository, mOrder *MockOrderRepository, mBid *MockBidRepository) {
				mUser.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserRepository)
			mockOrder := new(MockOrderRepository)
			mockBid := new(MockBidRepository)
			tt.setupMock(mockUser, mockOrder, mockBid)

			svc := NewBidService(mockBid, mockOrder, mockUser, nil)
			bid, err := svc.Submit(context.Background(), tt.callerID, orderID, tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, bid)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, bid)
				assert.Equal(t, orderID, bid.OrderID)
				assert.Equal(t, tt.callerID, bid.ExecutorID)
			}

			mockUser.AssertExpectations(t)
			mockOrder.AssertExpectations(t)
			mockBid.AssertExpectations(t)
		})
	}
}

// A submitted bid makes its executor assignable; without one the same
// assignment is refused. Exercises the two sides of the bid gate together.
func TestBidThenAssign(t *testing.T) {
	orderID := uuid.New()
	executorID := uint(2)

	mockUser := new(MockUserRepository)
	mockOrder := new(MockOrderRepository)
	mockBid := new(MockBidRepository)

	order := &model.Order{ID: orderID, CustomerID: 1, Status: model.OrderStatusOpen}
	mockUser.On("FindByID", mock.Anything, uint(1)).Return(testCustomer(1), nil)
	mockUser.On("FindByID", mock.Anything, executorID).Return(testExecutor(executorID), nil)
	mockOrder.On("FindByID", mock.Anything, orderID).Return(order, nil)
	mockBid.On("Exists", mock.Anything, orderID, executorID).Return(false, nil).Once()
	mockBid.On("Exists", mock.Anything, orderID, executorID).Return(true, nil).Once()
	mockBid.On("Create", mock.Anything, mock.AnythingOfType("*model.Bid")).Return(nil)
	mockOrder.On("Save", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)

	orders := NewOrderService(mockOrder, mockBid, mockUser, nil)
	bids := NewBidService(mockBid, mockOrder, mockUser, nil)

	_, err := orders.AssignExecutor(context.Background(), 1, orderID, executorID)
	assert.Equal(t, errors.ErrBidRequired, err)

	_, err = bids.Submit(context.Background(), executorID, orderID, BidInput{Message: "pick me", PriceProposal: nullDecimal("14000")})
	assert.NoError(t, err)

	assigned, err := orders.AssignExecutor(context.Background(), 1, orderID, executorID)
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusInProgress, assigned.Status)
	assert.Equal(t, executorID, *assigned.AssignedExecutorID)
}
