package models

import "errors"

type OrderStatus string

// Ne pas oublier d'ajouter tout nouveau statut dans statusRank ou dans les
// règles d'annulation ci-dessous.
const (
	StatusPending        OrderStatus = "pending"
	StatusPaid           OrderStatus = "paid"
	StatusProcessing     OrderStatus = "processing"
	StatusShipped        OrderStatus = "shipped"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// statusRank définit l'ordre d'avancement autorisé. "cancelled" n'a pas de
// rang : il est géré par sa propre règle d'échappement.
var statusRank = map[OrderStatus]int{
	StatusPending:        0,
	StatusPaid:           1,
	StatusProcessing:     2,
	StatusShipped:        3,
	StatusOutForDelivery: 4,
	StatusDelivered:      5,
}

// cancellableFrom : l'annulation n'est possible que tant que la commande
// n'est pas partie en préparation d'expédition.
var cancellableFrom = map[OrderStatus]bool{
	StatusPending:    true,
	StatusProcessing: true,
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := statusRank[status]; ok {
		return status, nil
	}
	if status == StatusCancelled {
		return status, nil
	}
	return "", errors.New("statut de commande invalide")
}

// Rank retourne la position du statut dans l'ordre d'avancement.
// ok vaut false pour "cancelled" et pour tout statut inconnu.
func (s OrderStatus) Rank() (int, bool) {
	r, ok := statusRank[s]
	return r, ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s OrderStatus) CanCancel() bool {
	return cancellableFrom[s]
}
