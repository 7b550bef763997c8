package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedTransitions(t *testing.T) {
	tests := []struct {
		name     string
		current  OrderStatus
		expected []OrderStatus
	}{
		{
			name:     "open",
			current:  OrderStatusOpen,
			expected: []OrderStatus{OrderStatusOpen, OrderStatusInProgress, OrderStatusCancelled},
		},
		{
			name:     "in_progress",
			current:  OrderStatusInProgress,
			expected: []OrderStatus{OrderStatusOpen, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled},
		},
		{
			name:     "completed",
			current:  OrderStatusCompleted,
			expected: []OrderStatus{OrderStatusOpen, OrderStatusCompleted},
		},
		{
			name:     "cancelled",
			current:  OrderStatusCancelled,
			expected: []OrderStatus{OrderStatusOpen, OrderStatusCancelled},
		},
		{
			name:     "unknown status yields nothing",
			current:  OrderStatus("archived"),
			expected: []OrderStatus{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AllowedTransitions(tt.current))
		})
	}
}

func TestAllowedTransitions_ContainsSelf(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusOpen, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled} {
		assert.Contains(t, AllowedTransitions(status), status, "allowed transitions for %s must include the status itself", status)
	}
}

func TestTransitionAllowed(t *testing.T) {
	assert.True(t, TransitionAllowed(OrderStatusOpen, OrderStatusInProgress))
	assert.True(t, TransitionAllowed(OrderStatusOpen, OrderStatusOpen), "no-op transition is always allowed")
	assert.True(t, TransitionAllowed(OrderStatusInProgress, OrderStatusCompleted))
	assert.True(t, TransitionAllowed(OrderStatusCompleted, OrderStatusOpen))
	assert.False(t, TransitionAllowed(OrderStatusOpen, OrderStatusCompleted))
	assert.False(t, TransitionAllowed(OrderStatusCompleted, OrderStatusInProgress))
	assert.False(t, TransitionAllowed(OrderStatusCancelled, OrderStatusCompleted))
}

func TestClearsExecutor(t *testing.T) {
	assert.True(t, OrderStatusOpen.ClearsExecutor())
	assert.True(t, OrderStatusCompleted.ClearsExecutor())
	assert.True(t, OrderStatusCancelled.ClearsExecutor())
	assert.False(t, OrderStatusInProgress.ClearsExecutor())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleCustomer.Valid())
	assert.True(t, RoleExecutor.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("admin").Valid())
}
