package orders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

// CreateOrderInput est un panier validé côté transport, accompagné des
// choix de livraison et de paiement.
type CreateOrderInput struct {
	Items         []ReservationLine
	Address       models.Address
	PaymentMethod models.PaymentMethod
	DeliveryDate  time.Time
	UserEmail     string
}

// AssemblyService transforme un panier en commande persistée : réservation
// du stock, calcul du total côté serveur, insertion, et notification
// asynchrone.
type AssemblyService struct {
	orders      OrderStore
	reservation *ReservationService
	notifier    Notifier
}

func NewAssemblyService(orders OrderStore, reservation *ReservationService, notifier Notifier) *AssemblyService {
	return &AssemblyService{orders: orders, reservation: reservation, notifier: notifier}
}

// CreateOrder crée la commande. Le total est calculé à partir des prix du
// catalogue au moment de la commande, jamais des prix fournis par le client.
// Si l'insertion échoue après le décrément du stock, chaque ligne est
// restituée avant de remonter ErrOrderCreationFailed.
func (s *AssemblyService) CreateOrder(ctx context.Context, userID string, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	orderID := gocql.TimeUUID()

	items, err := s.reservation.Reserve(ctx, orderID, in.Items)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Qty)
	}

	// Contre-remboursement : la commande attend l'encaissement. Tout autre
	// moyen de paiement est réputé déjà autorisé à ce stade.
	status := models.StatusPaid
	if in.PaymentMethod == models.PaymentCOD {
		status = models.StatusPending
	}

	now := time.Now()
	o := &models.Order{
		ID:            orderID,
		UserID:        userID,
		UserEmail:     in.UserEmail,
		Items:         items,
		Total:         total,
		Status:        status,
		StatusHistory: []models.StatusChange{{Status: status, Timestamp: now}},
		Address:       in.Address,
		PaymentMethod: in.PaymentMethod,
		DeliveryDate:  in.DeliveryDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orders.InsertOrder(ctx, o); err != nil {
		// Compensation : le stock déjà décrémenté est restitué avant de
		// remonter l'échec.
		s.reservation.Release(ctx, orderID, items)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	if s.notifier != nil {
		// Détaché du cycle requête/réponse : un échec d'envoi est
		// journalisé puis avalé.
		snapshot := *o
		go func() {
			if err := s.notifier.OrderConfirmation(&snapshot); err != nil {
				log.Printf("⚠️ Envoi de la confirmation de commande %s impossible: %v", snapshot.ID, err)
			}
		}()
	}

	return o, nil
}
