package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/orders"
)

// casMaxRetries borne la boucle compare-and-swap sur le stock : au-delà, la
// contention est anormale et on préfère échouer que boucler.
const casMaxRetries = 8

// ScyllaCatalog implémente orders.CatalogStore sur le keyspace products.
//
// Les mutations de stock sont des écritures conditionnelles (LWT) : on relit
// le stock, on calcule la nouvelle valeur, et on n'écrit que si le stock en
// base vaut encore la valeur lue. Deux commandes concurrentes ne peuvent
// donc jamais décrémenter à partir de la même valeur périmée.
type ScyllaCatalog struct{}

func NewScyllaCatalog() *ScyllaCatalog {
	return &ScyllaCatalog{}
}

func (s *ScyllaCatalog) GetProduct(ctx context.Context, productID gocql.UUID) (*models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	p := models.Product{ID: productID}
	err = session.Query(`SELECT name, description, price, stock, image_url, is_active, created_at, updated_at
		FROM products WHERE product_id = ?`, productID).
		WithContext(ctx).
		Scan(&p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, orders.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts retourne le catalogue complet (page publique).
func (s *ScyllaCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT product_id, name, description, price, stock, image_url, is_active, created_at, updated_at
		FROM products`).WithContext(ctx).Iter()

	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}

// DecrementStock retire qty unités si et seulement si le stock courant les
// couvre encore au moment de l'écriture. Le plancher à zéro est un
// garde-fou : aucune écriture ne peut produire une valeur négative.
func (s *ScyllaCatalog) DecrementStock(ctx context.Context, productID gocql.UUID, qty int, orderID *gocql.UUID) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}

	for attempt := 0; attempt < casMaxRetries; attempt++ {
		var name string
		var stock int
		err := session.Query(`SELECT name, stock FROM products WHERE product_id = ?`, productID).
			WithContext(ctx).
			Scan(&name, &stock)
		if errors.Is(err, gocql.ErrNotFound) {
			return orders.ErrProductNotFound
		}
		if err != nil {
			return err
		}

		if stock < qty {
			return &orders.InsufficientStockError{
				ProductName: name,
				Available:   stock,
				Requested:   qty,
			}
		}

		newStock := stock - qty
		if newStock < 0 {
			newStock = 0
		}

		var current int
		applied, err := session.Query(`UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ? IF stock = ?`,
			newStock, time.Now(), productID, stock).
			WithContext(ctx).
			ScanCAS(&current)
		if err != nil {
			return err
		}
		if applied {
			s.recordMovement(ctx, session, models.StockMovement{
				ProductID: productID,
				Type:      models.MovementSale,
				Quantity:  qty,
				PrevStock: stock,
				NewStock:  newStock,
				OrderID:   orderID,
			})
			cache.InvalidateProductCache(productID.String())
			return nil
		}
		// Valeur périmée : un autre décrément est passé entre la lecture et
		// l'écriture, on réessaie sur la valeur fraîche.
	}

	return fmt.Errorf("décrément de stock abandonné après %d tentatives (produit %s)", casMaxRetries, productID)
}

// IncrementStock restitue qty unités. Strictement additif : la restitution
// d'une annulation rend toujours la quantité commandée d'origine, même si le
// stock a été ajusté entre-temps.
func (s *ScyllaCatalog) IncrementStock(ctx context.Context, productID gocql.UUID, qty int, orderID *gocql.UUID) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}

	for attempt := 0; attempt < casMaxRetries; attempt++ {
		var stock int
		err := session.Query(`SELECT stock FROM products WHERE product_id = ?`, productID).
			WithContext(ctx).
			Scan(&stock)
		if errors.Is(err, gocql.ErrNotFound) {
			return orders.ErrProductNotFound
		}
		if err != nil {
			return err
		}

		newStock := stock + qty

		var current int
		applied, err := session.Query(`UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ? IF stock = ?`,
			newStock, time.Now(), productID, stock).
			WithContext(ctx).
			ScanCAS(&current)
		if err != nil {
			return err
		}
		if applied {
			s.recordMovement(ctx, session, models.StockMovement{
				ProductID: productID,
				Type:      models.MovementReturn,
				Quantity:  qty,
				PrevStock: stock,
				NewStock:  newStock,
				OrderID:   orderID,
			})
			cache.InvalidateProductCache(productID.String())
			return nil
		}
	}

	return fmt.Errorf("restitution de stock abandonnée après %d tentatives (produit %s)", casMaxRetries, productID)
}

// AdjustStock applique une opération d'inventaire manuelle : "restock"
// ajoute quantity unités, "adjustment" fixe la quantité absolue.
func (s *ScyllaCatalog) AdjustStock(ctx context.Context, productID gocql.UUID, quantity int, movementType, reason, userID string) (prevStock, newStock int, err error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return 0, 0, err
	}

	for attempt := 0; attempt < casMaxRetries; attempt++ {
		var stock int
		err := session.Query(`SELECT stock FROM products WHERE product_id = ?`, productID).
			WithContext(ctx).
			Scan(&stock)
		if errors.Is(err, gocql.ErrNotFound) {
			return 0, 0, orders.ErrProductNotFound
		}
		if err != nil {
			return 0, 0, err
		}

		switch movementType {
		case models.MovementRestock:
			newStock = stock + quantity
		case models.MovementAdjustment:
			newStock = quantity
		default:
			return 0, 0, fmt.Errorf("type d'opération invalide: %s", movementType)
		}
		if newStock < 0 {
			return 0, 0, fmt.Errorf("le stock ne peut pas être négatif")
		}

		var current int
		applied, err := session.Query(`UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ? IF stock = ?`,
			newStock, time.Now(), productID, stock).
			WithContext(ctx).
			ScanCAS(&current)
		if err != nil {
			return 0, 0, err
		}
		if applied {
			s.recordMovement(ctx, session, models.StockMovement{
				ProductID: productID,
				Type:      movementType,
				Quantity:  quantity,
				PrevStock: stock,
				NewStock:  newStock,
				Reason:    reason,
				UserID:    userID,
			})
			cache.InvalidateProductCache(productID.String())
			return stock, newStock, nil
		}
	}

	return 0, 0, fmt.Errorf("ajustement de stock abandonné après %d tentatives (produit %s)", casMaxRetries, productID)
}

// recordMovement journalise le mouvement de stock, en best-effort : un échec
// d'écriture du journal ne remet pas en cause la mutation elle-même.
func (s *ScyllaCatalog) recordMovement(ctx context.Context, session *gocql.Session, m models.StockMovement) {
	m.ID = gocql.TimeUUID()
	m.CreatedAt = time.Now()

	err := session.Query(`INSERT INTO stock_movements (product_id, id, type, quantity, prev_stock, new_stock, reason, order_id, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ProductID, m.ID, m.Type, m.Quantity, m.PrevStock, m.NewStock, m.Reason, m.OrderID, m.UserID, m.CreatedAt).
		WithContext(ctx).
		Exec()
	if err != nil {
		log.Printf("⚠️ Erreur enregistrement mouvement stock (produit %s, type %s): %v", m.ProductID, m.Type, err)
	}
}
