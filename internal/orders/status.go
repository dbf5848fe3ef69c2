package orders

import (
	"context"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

// Transition applique la machine à états sur la commande, en mémoire.
//
// Règles :
//   - même statut que l'actuel → no-op (changed=false), pour tolérer les
//     retries clients ;
//   - "cancelled" n'est atteignable que depuis "pending" ou "processing" ;
//   - tout retour en arrière dans l'ordre d'avancement est refusé, de même
//     que toute sortie d'un état terminal ;
//   - "delivered" exige qu'une facture soit déjà déposée.
//
// Sur une transition acceptée : statut, updated_at, et une entrée
// d'historique. L'historique n'est jamais tronqué ni réécrit.
func Transition(o *models.Order, target models.OrderStatus, note string, now time.Time) (changed bool, err error) {
	if target == o.Status {
		return false, nil
	}

	if target == models.StatusCancelled {
		if !o.Status.CanCancel() {
			return false, &InvalidTransitionError{From: o.Status, To: target}
		}
	} else {
		curRank, ok := o.Status.Rank()
		if !ok {
			// Statut courant hors classement : commande annulée, terminale.
			return false, &InvalidTransitionError{From: o.Status, To: target}
		}
		tgtRank, ok := target.Rank()
		if !ok {
			return false, &InvalidTransitionError{From: o.Status, To: target}
		}
		if tgtRank < curRank {
			return false, &InvalidTransitionError{From: o.Status, To: target}
		}
		if target == models.StatusDelivered && o.BillURL == "" {
			return false, ErrMissingBillDocument
		}
	}

	o.Status = target
	o.UpdatedAt = now
	o.StatusHistory = append(o.StatusHistory, models.StatusChange{
		Status:    target,
		Timestamp: now,
		Note:      note,
	})
	return true, nil
}

// StatusService applique les changements de statut décidés par le personnel
// et le dépôt de facture qui conditionne la livraison.
type StatusService struct {
	orders OrderStore
}

func NewStatusService(orders OrderStore) *StatusService {
	return &StatusService{orders: orders}
}

// UpdateStatus fait avancer la commande vers target. La persistance est un
// compare-and-swap sur le statut courant : une annulation concurrente ne
// peut pas être écrasée silencieusement.
func (s *StatusService) UpdateStatus(ctx context.Context, orderID gocql.UUID, target models.OrderStatus, note string) (*models.Order, error) {
	o, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	expected := o.Status
	changed, err := Transition(o, target, note, time.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	if err := s.orders.UpdateOrderCAS(ctx, o, expected); err != nil {
		return nil, err
	}
	return o, nil
}

// AttachBill dépose la référence de la facture de livraison. Mutation
// indépendante : elle ne change pas le statut, elle lève seulement le
// préalable à la transition vers "delivered".
func (s *StatusService) AttachBill(ctx context.Context, orderID gocql.UUID, billURL string) (*models.Order, error) {
	o, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	o.BillURL = billURL
	o.UpdatedAt = time.Now()

	if err := s.orders.UpdateOrderCAS(ctx, o, o.Status); err != nil {
		return nil, err
	}
	return o, nil
}
