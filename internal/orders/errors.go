package orders

import (
	"errors"
	"fmt"

	"velora_back_end/internal/models"
)

var (
	ErrEmptyCart       = errors.New("panier vide")
	ErrProductNotFound = errors.New("produit introuvable")
	ErrOrderNotFound   = errors.New("commande introuvable")
	ErrReviewNotFound  = errors.New("avis introuvable")
	ErrNotOrderOwner   = errors.New("cette commande ne vous appartient pas")

	ErrOrderCreationFailed = errors.New("échec de la création de la commande")

	ErrMissingBillDocument = errors.New("la facture de livraison doit être déposée avant de marquer la commande livrée")

	ErrOrderNotRefundable        = errors.New("seules les commandes livrées ou annulées sont remboursables")
	ErrCodCancelledNotRefundable = errors.New("les commandes contre-remboursement annulées ne sont pas remboursables")
	ErrMissingTransactionID      = errors.New("identifiant de transaction requis")

	ErrOrderNotReviewable  = errors.New("commande non éligible à un avis")
	ErrReviewWindowExpired = errors.New("le délai pour laisser un avis est dépassé")
	ErrDuplicateReview     = errors.New("un avis existe déjà pour ce produit et cette commande")
	ErrInvalidRating       = errors.New("la note doit être comprise entre 1 et 5")
	ErrBlankComment        = errors.New("commentaire requis")

	// ErrVersionConflict : le CAS sur le statut a perdu la course contre une
	// autre écriture. Le client peut relire la commande et réessayer.
	ErrVersionConflict = errors.New("la commande a été modifiée entre-temps")
)

// InsufficientStockError porte le nom du produit et la quantité réellement
// disponible, pour que le client affiche un message précis.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuffisant pour %q : %d demandé, %d disponible",
		e.ProductName, e.Requested, e.Available)
}

type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transition de statut interdite : %s → %s", e.From, e.To)
}
