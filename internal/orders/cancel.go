package orders

import (
	"context"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

// CancelService annule une commande et restitue son effet sur l'inventaire.
type CancelService struct {
	orders      OrderStore
	reservation *ReservationService
}

func NewCancelService(orders OrderStore, reservation *ReservationService) *CancelService {
	return &CancelService{orders: orders, reservation: reservation}
}

// Cancel passe la commande en "cancelled" puis restitue, produit par
// produit, exactement la quantité commandée à l'origine, même si le stock a
// été ajusté par un administrateur entre-temps.
//
// L'annulation est écrite en premier, par CAS sur le statut : une fois
// passée, la commande ne peut plus avancer. Une ligne de restitution qui
// échoue est journalisée et sautée, l'annulation reste acquise ; le journal
// des mouvements de stock permet de rejouer la ligne manquante.
func (s *CancelService) Cancel(ctx context.Context, userID string, orderID gocql.UUID, reason string) (*models.Order, error) {
	o, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrNotOrderOwner
	}

	expected := o.Status
	changed, err := Transition(o, models.StatusCancelled, reason, time.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		// Déjà annulée : retry client, pas de seconde restitution.
		return o, nil
	}
	o.CancelReason = reason

	if err := s.orders.UpdateOrderCAS(ctx, o, expected); err != nil {
		return nil, err
	}

	s.reservation.Release(ctx, o.ID, o.Items)

	return o, nil
}
