package domain

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct() *Product {
	return NewProduct("Laptop", "gaming laptop", 1000, 10, "electronics")
}

func testOrder(t *testing.T, status OrderStatus) *Order {
	t.Helper()
	o := NewOrder(testProduct(), 3, "Alice", "alice@example.com", "1 Main Street")
	o.Status = status
	return o
}

func TestNewOrderFreezesTotal(t *testing.T) {
	product := testProduct()
	order := NewOrder(product, 3, "Alice", "alice@example.com", "1 Main Street")

	require.Equal(t, OrderPending, order.Status)
	require.EqualValues(t, 3000, order.TotalAmount)

	// A later price change must not leak into the frozen total.
	product.Price = 999_999
	assert.EqualValues(t, 3000, order.TotalAmount)
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2025, 12, 8, 10, 0, 0, 0, time.UTC)
	format := regexp.MustCompile(`^ORD-20251208-\d{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := GenerateOrderNumber(now)
		assert.Regexp(t, format, n)
		require.False(t, seen[n], "order number %s repeated", n)
		seen[n] = true
	}
}

func TestTransitionTableExhaustive(t *testing.T) {
	allStatuses := []OrderStatus{OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled, OrderFailed}
	allActions := []OrderAction{ActionConfirm, ActionShip, ActionDeliver, ActionCancel}

	allowed := map[OrderStatus]map[OrderAction]OrderStatus{
		OrderPending:   {ActionConfirm: OrderConfirmed, ActionCancel: OrderCancelled},
		OrderConfirmed: {ActionShip: OrderShipped, ActionCancel: OrderCancelled},
		OrderShipped:   {ActionDeliver: OrderDelivered, ActionCancel: OrderCancelled},
	}

	for _, status := range allStatuses {
		for _, action := range allActions {
			next, err := NextStatus(status, action)
			want, ok := allowed[status][action]
			if ok {
				require.NoError(t, err, "%s + %s", status, action)
				assert.Equal(t, want, next, "%s + %s", status, action)
			} else {
				require.ErrorIs(t, err, ErrInvalidTransition, "%s + %s", status, action)
				assert.Equal(t, status, next, "illegal %s + %s must not move", status, action)
			}
		}
	}
}

func TestOrderLifecycleHappyPath(t *testing.T) {
	order := testOrder(t, OrderPending)

	require.NoError(t, order.Confirm())
	require.Equal(t, OrderConfirmed, order.Status)
	require.NoError(t, order.Ship())
	require.Equal(t, OrderShipped, order.Status)
	require.NoError(t, order.Deliver())
	require.Equal(t, OrderDelivered, order.Status)

	assert.True(t, order.Status.IsTerminal())
	assert.False(t, order.IsCancellable())
}

func TestIllegalTransitionLeavesStatusUnchanged(t *testing.T) {
	order := testOrder(t, OrderPending)
	before := order.UpdatedAt

	err := order.Deliver()
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, OrderPending, order.Status)
	assert.Equal(t, before, order.UpdatedAt)
}

func TestTransitionStampsUpdatedAt(t *testing.T) {
	order := testOrder(t, OrderPending)
	before := order.UpdatedAt

	time.Sleep(time.Millisecond)
	require.NoError(t, order.Confirm())
	assert.True(t, order.UpdatedAt.After(before))
}

func TestIsCancellable(t *testing.T) {
	cases := []struct {
		status OrderStatus
		want   bool
	}{
		{OrderPending, true},
		{OrderConfirmed, true},
		{OrderShipped, true},
		{OrderDelivered, false},
		{OrderCancelled, false},
		{OrderFailed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, testOrder(t, tc.status).IsCancellable(), "status %s", tc.status)
	}
}

func TestCancelFromTerminalFails(t *testing.T) {
	for _, status := range []OrderStatus{OrderDelivered, OrderCancelled, OrderFailed} {
		order := testOrder(t, status)
		err := order.Cancel()
		require.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
		assert.Equal(t, status, order.Status)
	}
}

func TestMarkPaymentFailed(t *testing.T) {
	order := testOrder(t, OrderPending)
	require.NoError(t, order.MarkPaymentFailed())
	assert.Equal(t, OrderFailed, order.Status)

	confirmed := testOrder(t, OrderConfirmed)
	err := confirmed.MarkPaymentFailed()
	require.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, OrderConfirmed, confirmed.Status)
}
