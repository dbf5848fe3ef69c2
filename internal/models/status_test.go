package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "paid", "processing", "shipped", "out-for-delivery", "delivered", "cancelled"} {
		status, err := ToOrderStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, OrderStatus(s), status)
	}

	for _, s := range []string{"", "Pending", "returned", "out_for_delivery"} {
		_, err := ToOrderStatus(s)
		assert.Error(t, err, s)
	}
}

func TestStatusRankOrdering(t *testing.T) {
	ordered := []OrderStatus{StatusPending, StatusPaid, StatusProcessing, StatusShipped, StatusOutForDelivery, StatusDelivered}
	prev := -1
	for _, s := range ordered {
		r, ok := s.Rank()
		require.True(t, ok, s)
		assert.Greater(t, r, prev, s)
		prev = r
	}

	_, ok := StatusCancelled.Rank()
	assert.False(t, ok)
}

func TestStatusTerminalAndCancellable(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())

	assert.True(t, StatusPending.CanCancel())
	assert.True(t, StatusProcessing.CanCancel())
	assert.False(t, StatusPaid.CanCancel())
	assert.False(t, StatusShipped.CanCancel())
	assert.False(t, StatusDelivered.CanCancel())
	assert.False(t, StatusCancelled.CanCancel())
}

func TestToPaymentMethod(t *testing.T) {
	for _, s := range []string{"cod", "card", "upi", "netbanking", "wallet"} {
		m, err := ToPaymentMethod(s)
		require.NoError(t, err, s)
		assert.Equal(t, PaymentMethod(s), m)
	}

	_, err := ToPaymentMethod("cheque")
	assert.Error(t, err)
}
