package orders

import (
	"context"
	"log"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

// ReservationLine est une ligne de panier avant validation : un produit et
// une quantité demandée.
type ReservationLine struct {
	ProductID gocql.UUID
	Qty       int
	Color     string
}

// ReservationService valide les quantités demandées contre le stock
// disponible puis commet le décrément, en tout-ou-rien sur l'ensemble des
// lignes d'une même commande.
type ReservationService struct {
	catalog CatalogStore
}

func NewReservationService(catalog CatalogStore) *ReservationService {
	return &ReservationService{catalog: catalog}
}

// Reserve exécute les deux passes :
//
//  1. validation — chaque ligne est vérifiée contre le stock courant, arrêt
//     à la première ligne insuffisante ;
//  2. commit — décrément conditionnel par ligne via le CAS du store.
//
// Si un décrément échoue (course perdue depuis la validation), les lignes
// déjà décrémentées sont restituées avant de remonter l'erreur. Les
// quantités inférieures à 1 sont ramenées à 1, jamais à 0 ni en négatif.
// Retourne les instantanés de lignes (nom et prix du moment) pour
// l'assemblage de la commande.
func (s *ReservationService) Reserve(ctx context.Context, orderID gocql.UUID, lines []ReservationLine) ([]models.OrderItem, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Passe de validation
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.Qty < 1 {
			line.Qty = 1
		}

		p, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if p.Stock < line.Qty {
			return nil, &InsufficientStockError{
				ProductName: p.Name,
				Available:   p.Stock,
				Requested:   line.Qty,
			}
		}

		items = append(items, models.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Qty:       line.Qty,
			Color:     line.Color,
		})
	}

	// Passe de commit
	for i, it := range items {
		if err := s.catalog.DecrementStock(ctx, it.ProductID, it.Qty, &orderID); err != nil {
			// Compensation : on restitue les lignes déjà décrémentées
			s.Release(ctx, orderID, items[:i])
			return nil, err
		}
	}

	return items, nil
}

// Release restitue exactement les quantités décrémentées. Une ligne qui
// échoue (produit supprimé depuis) est journalisée et sautée, les lignes
// restantes sont toujours traitées.
func (s *ReservationService) Release(ctx context.Context, orderID gocql.UUID, items []models.OrderItem) {
	for _, it := range items {
		if err := s.catalog.IncrementStock(ctx, it.ProductID, it.Qty, &orderID); err != nil {
			log.Printf("⚠️ Restitution impossible pour le produit %s (commande %s, qté %d): %v",
				it.ProductID, orderID, it.Qty, err)
		}
	}
}
