package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

func TestCheckRefundEligibility(t *testing.T) {
	tests := []struct {
		name          string
		status        models.OrderStatus
		payment       models.PaymentMethod
		transactionID string
		wantErr       error
	}{
		{"livrée carte", models.StatusDelivered, models.PaymentCard, "txn-1", nil},
		{"livrée cod", models.StatusDelivered, models.PaymentCOD, "txn-2", nil},
		{"annulée carte", models.StatusCancelled, models.PaymentCard, "txn-3", nil},
		{"annulée cod", models.StatusCancelled, models.PaymentCOD, "txn-4", ErrCodCancelledNotRefundable},
		{"en cours", models.StatusProcessing, models.PaymentCard, "txn-5", ErrOrderNotRefundable},
		{"expédiée", models.StatusShipped, models.PaymentCard, "txn-6", ErrOrderNotRefundable},
		{"identifiant vide", models.StatusDelivered, models.PaymentCard, "", ErrMissingTransactionID},
		{"identifiant blanc", models.StatusDelivered, models.PaymentCard, "   ", ErrMissingTransactionID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &models.Order{Status: tt.status, PaymentMethod: tt.payment}
			err := CheckRefundEligibility(o, tt.transactionID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRecordRefundTrimsAndPersists(t *testing.T) {
	store := newFakeOrders()
	o := newStoredOrder(t, store, models.StatusDelivered)
	svc := NewRefundService(store)

	updated, err := svc.RecordRefund(context.Background(), o.ID, "  txn-42  ")
	require.NoError(t, err)
	assert.Equal(t, "txn-42", updated.RefundTransactionID)
	// Le remboursement ne touche pas au statut.
	assert.Equal(t, models.StatusDelivered, updated.Status)

	stored, err := store.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "txn-42", stored.RefundTransactionID)
}

func TestRecordRefundRejectsIneligibleOrder(t *testing.T) {
	store := newFakeOrders()
	o := newStoredOrder(t, store, models.StatusShipped)
	svc := NewRefundService(store)

	_, err := svc.RecordRefund(context.Background(), o.ID, "txn-1")
	assert.ErrorIs(t, err, ErrOrderNotRefundable)
}

func TestRecordRefundUnknownOrder(t *testing.T) {
	svc := NewRefundService(newFakeOrders())
	_, err := svc.RecordRefund(context.Background(), timeUUID(t), "txn-1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
