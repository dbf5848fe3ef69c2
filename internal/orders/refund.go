package orders

import (
	"context"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

// CheckRefundEligibility est la fonction de décision, sans effet de bord.
//
//   - seul un statut "delivered" ou "cancelled" est remboursable ;
//   - une commande contre-remboursement annulée n'a rien à rembourser,
//     l'argent n'a jamais été encaissé ;
//   - l'identifiant de transaction ne peut pas être vide.
func CheckRefundEligibility(o *models.Order, transactionID string) error {
	if o.Status != models.StatusDelivered && o.Status != models.StatusCancelled {
		return ErrOrderNotRefundable
	}
	if o.Status == models.StatusCancelled && o.PaymentMethod == models.PaymentCOD {
		return ErrCodCancelledNotRefundable
	}
	if strings.TrimSpace(transactionID) == "" {
		return ErrMissingTransactionID
	}
	return nil
}

type RefundService struct {
	orders OrderStore
}

func NewRefundService(orders OrderStore) *RefundService {
	return &RefundService{orders: orders}
}

// RecordRefund enregistre l'identifiant de transaction du remboursement sur
// la commande. Le statut ne change pas.
func (s *RefundService) RecordRefund(ctx context.Context, orderID gocql.UUID, transactionID string) (*models.Order, error) {
	o, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := CheckRefundEligibility(o, transactionID); err != nil {
		return nil, err
	}

	o.RefundTransactionID = strings.TrimSpace(transactionID)
	o.UpdatedAt = time.Now()

	if err := s.orders.UpdateOrderCAS(ctx, o, o.Status); err != nil {
		return nil, err
	}
	return o, nil
}
