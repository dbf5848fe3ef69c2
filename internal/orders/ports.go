package orders

import (
	"context"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

// CatalogStore est l'accès au catalogue produits. DecrementStock et
// IncrementStock sont les deux seules primitives de mutation du stock : elles
// doivent être atomiques par produit (compare-and-swap côté base) pour que
// deux commandes concurrentes ne puissent pas survendre.
type CatalogStore interface {
	GetProduct(ctx context.Context, productID gocql.UUID) (*models.Product, error)

	// DecrementStock retire qty unités, uniquement si le stock courant les
	// couvre. Retourne *InsufficientStockError sinon.
	DecrementStock(ctx context.Context, productID gocql.UUID, qty int, orderID *gocql.UUID) error

	// IncrementStock restitue qty unités. Strictement additif.
	IncrementStock(ctx context.Context, productID gocql.UUID, qty int, orderID *gocql.UUID) error
}

// OrderStore est le stockage durable des commandes. UpdateOrderCAS n'écrit
// que si le statut en base vaut encore expected : c'est la sérialisation
// par commande exigée entre annulation et avancement de statut.
type OrderStore interface {
	InsertOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, orderID gocql.UUID) (*models.Order, error)
	UpdateOrderCAS(ctx context.Context, o *models.Order, expected models.OrderStatus) error
}

// ReviewStore : InsertReview retourne applied=false si un avis existe déjà
// pour (commande, produit), ce qui ferme la course entre la vérification
// d'éligibilité et l'écriture.
type ReviewStore interface {
	GetReview(ctx context.Context, orderID, productID gocql.UUID) (*models.Review, error)
	InsertReview(ctx context.Context, r *models.Review) (applied bool, err error)
}

// Notifier envoie la confirmation de commande. Appelé hors du cycle
// requête/réponse : un échec ne doit jamais annuler la commande.
type Notifier interface {
	OrderConfirmation(o *models.Order) error
}
