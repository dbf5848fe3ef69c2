package store

import (
	"context"
	"errors"
	"log"

	"github.com/gocql/gocql"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/orders"
)

// ScyllaReviews implémente orders.ReviewStore. La clé primaire de la table
// reviews est ((order_id), product_id) : l'unicité d'un avis par couple
// (commande, produit) est garantie par INSERT ... IF NOT EXISTS. Une table
// reviews_by_product sert l'affichage sur la fiche produit.
type ScyllaReviews struct{}

func NewScyllaReviews() *ScyllaReviews {
	return &ScyllaReviews{}
}

func (s *ScyllaReviews) GetReview(ctx context.Context, orderID, productID gocql.UUID) (*models.Review, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	r := models.Review{OrderID: orderID, ProductID: productID}
	err = session.Query(`SELECT review_id, user_id, user_name, rating, comment, admin_reply, created_at
		FROM reviews WHERE order_id = ? AND product_id = ?`, orderID, productID).
		WithContext(ctx).
		Scan(&r.ID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &r.AdminReply, &r.CreatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, orders.ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// InsertReview écrit l'avis de façon conditionnelle : applied vaut false si
// un avis existe déjà pour ce couple (commande, produit).
func (s *ScyllaReviews) InsertReview(ctx context.Context, r *models.Review) (bool, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return false, err
	}

	applied, err := session.Query(`INSERT INTO reviews (order_id, product_id, review_id, user_id, user_name, rating, comment, admin_reply, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) IF NOT EXISTS`,
		r.OrderID, r.ProductID, r.ID, r.UserID, r.UserName, r.Rating, r.Comment, r.AdminReply, r.CreatedAt).
		WithContext(ctx).
		MapScanCAS(map[string]interface{}{})
	if err != nil {
		return false, err
	}
	if !applied {
		return false, nil
	}

	// Index d'affichage par produit
	err = session.Query(`INSERT INTO reviews_by_product (product_id, created_at, order_id, review_id, user_id, user_name, rating, comment, admin_reply)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ProductID, r.CreatedAt, r.OrderID, r.ID, r.UserID, r.UserName, r.Rating, r.Comment, r.AdminReply).
		WithContext(ctx).
		Exec()
	if err != nil {
		log.Printf("⚠️ Erreur index reviews_by_product pour l'avis %s: %v", r.ID, err)
	}

	return true, nil
}

// ListReviewsByProduct retourne les avis d'un produit, les plus récents en
// premier.
func (s *ScyllaReviews) ListReviewsByProduct(ctx context.Context, productID gocql.UUID) ([]models.Review, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT created_at, order_id, review_id, user_id, user_name, rating, comment, admin_reply
		FROM reviews_by_product WHERE product_id = ?`, productID).
		WithContext(ctx).
		Iter()

	var reviews []models.Review
	var r models.Review
	r.ProductID = productID
	for iter.Scan(&r.CreatedAt, &r.OrderID, &r.ID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &r.AdminReply) {
		reviews = append(reviews, r)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListReviewsByOrder retourne les avis déjà déposés sur une commande.
func (s *ScyllaReviews) ListReviewsByOrder(ctx context.Context, orderID gocql.UUID) ([]models.Review, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT product_id, review_id, user_id, user_name, rating, comment, admin_reply, created_at
		FROM reviews WHERE order_id = ?`, orderID).
		WithContext(ctx).
		Iter()

	var reviews []models.Review
	var r models.Review
	r.OrderID = orderID
	for iter.Scan(&r.ProductID, &r.ID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &r.AdminReply, &r.CreatedAt) {
		reviews = append(reviews, r)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// SetAdminReply enregistre la réponse du personnel sous l'avis.
func (s *ScyllaReviews) SetAdminReply(ctx context.Context, orderID, productID gocql.UUID, reply string) error {
	r, err := s.GetReview(ctx, orderID, productID)
	if err != nil {
		return err
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	err = session.Query(`UPDATE reviews SET admin_reply = ? WHERE order_id = ? AND product_id = ?`,
		reply, orderID, productID).
		WithContext(ctx).
		Exec()
	if err != nil {
		return err
	}

	err = session.Query(`UPDATE reviews_by_product SET admin_reply = ? WHERE product_id = ? AND created_at = ? AND order_id = ?`,
		reply, productID, r.CreatedAt, orderID).
		WithContext(ctx).
		Exec()
	if err != nil {
		log.Printf("⚠️ Erreur mise à jour index reviews_by_product pour l'avis %s: %v", r.ID, err)
	}
	return nil
}

// DeleteReview supprime l'avis et son entrée d'index.
func (s *ScyllaReviews) DeleteReview(ctx context.Context, orderID, productID gocql.UUID) error {
	r, err := s.GetReview(ctx, orderID, productID)
	if err != nil {
		return err
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	err = session.Query(`DELETE FROM reviews WHERE order_id = ? AND product_id = ?`, orderID, productID).
		WithContext(ctx).
		Exec()
	if err != nil {
		return err
	}

	err = session.Query(`DELETE FROM reviews_by_product WHERE product_id = ? AND created_at = ? AND order_id = ?`,
		productID, r.CreatedAt, orderID).
		WithContext(ctx).
		Exec()
	if err != nil {
		log.Printf("⚠️ Erreur suppression index reviews_by_product pour l'avis %s: %v", r.ID, err)
	}
	return nil
}
