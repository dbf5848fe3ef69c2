package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/gocql/gocql"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/orders"
)

// ScyllaOrders implémente orders.OrderStore sur le keyspace orders.
//
// Les lignes, l'historique de statuts et l'adresse sont des instantanés
// sérialisés en JSON dans la ligne de commande. Une table d'index
// orders_by_user sert le listing par client.
type ScyllaOrders struct{}

func NewScyllaOrders() *ScyllaOrders {
	return &ScyllaOrders{}
}

const orderColumns = `user_id, user_email, items, total, status, status_history, address,
	payment_method, delivery_date, bill_url, cancel_reason, refund_transaction_id, created_at, updated_at`

func (s *ScyllaOrders) InsertOrder(ctx context.Context, o *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	historyJSON, err := json.Marshal(o.StatusHistory)
	if err != nil {
		return err
	}
	addressJSON, err := json.Marshal(o.Address)
	if err != nil {
		return err
	}

	err = session.Query(`INSERT INTO orders (order_id, `+orderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, o.UserEmail, string(itemsJSON), o.Total, string(o.Status), string(historyJSON),
		string(addressJSON), string(o.PaymentMethod), o.DeliveryDate, o.BillURL, o.CancelReason,
		o.RefundTransactionID, o.CreatedAt, o.UpdatedAt).
		WithContext(ctx).
		Exec()
	if err != nil {
		return err
	}

	// Index de listing par client
	err = session.Query(`INSERT INTO orders_by_user (user_id, created_at, order_id) VALUES (?, ?, ?)`,
		o.UserID, o.CreatedAt, o.ID).
		WithContext(ctx).
		Exec()
	if err != nil {
		log.Printf("⚠️ Erreur index orders_by_user pour la commande %s: %v", o.ID, err)
	}

	return nil
}

func (s *ScyllaOrders) GetOrder(ctx context.Context, orderID gocql.UUID) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var (
		o                                models.Order
		itemsJSON, historyJSON, addrJSON string
		status, paymentMethod            string
	)
	o.ID = orderID

	err = session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, orderID).
		WithContext(ctx).
		Scan(&o.UserID, &o.UserEmail, &itemsJSON, &o.Total, &status, &historyJSON, &addrJSON,
			&paymentMethod, &o.DeliveryDate, &o.BillURL, &o.CancelReason, &o.RefundTransactionID,
			&o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, orders.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := decodeOrderJSON(&o, status, paymentMethod, itemsJSON, historyJSON, addrJSON); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateOrderCAS réécrit les colonnes mutables de la commande, uniquement si
// le statut en base vaut encore expected. C'est la sérialisation par
// commande : une annulation et un avancement concurrents ne peuvent pas
// s'écraser silencieusement.
func (s *ScyllaOrders) UpdateOrderCAS(ctx context.Context, o *models.Order, expected models.OrderStatus) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	historyJSON, err := json.Marshal(o.StatusHistory)
	if err != nil {
		return err
	}

	var current string
	applied, err := session.Query(`UPDATE orders
		SET status = ?, status_history = ?, updated_at = ?, bill_url = ?, cancel_reason = ?, refund_transaction_id = ?
		WHERE order_id = ? IF status = ?`,
		string(o.Status), string(historyJSON), o.UpdatedAt, o.BillURL, o.CancelReason,
		o.RefundTransactionID, o.ID, string(expected)).
		WithContext(ctx).
		ScanCAS(&current)
	if errors.Is(err, gocql.ErrNotFound) {
		return orders.ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	if !applied {
		return orders.ErrVersionConflict
	}
	return nil
}

// ListOrdersByUser retourne les commandes d'un client, les plus récentes en
// premier (ordre de clustering de orders_by_user).
func (s *ScyllaOrders) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT order_id FROM orders_by_user WHERE user_id = ?`, userID).
		WithContext(ctx).
		Iter()

	var ids []gocql.UUID
	var id gocql.UUID
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	result := make([]models.Order, 0, len(ids))
	for _, orderID := range ids {
		o, err := s.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, orders.ErrOrderNotFound) {
				log.Printf("⚠️ Commande %s présente dans l'index mais absente de la table orders", orderID)
				continue
			}
			return nil, err
		}
		result = append(result, *o)
	}
	return result, nil
}

// ListOrders retourne toutes les commandes (vue back-office).
func (s *ScyllaOrders) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 500
	}

	iter := session.Query(`SELECT order_id, `+orderColumns+` FROM orders LIMIT ?`, limit).
		WithContext(ctx).
		Iter()

	var result []models.Order
	for {
		var (
			o                                models.Order
			itemsJSON, historyJSON, addrJSON string
			status, paymentMethod            string
		)
		if !iter.Scan(&o.ID, &o.UserID, &o.UserEmail, &itemsJSON, &o.Total, &status, &historyJSON,
			&addrJSON, &paymentMethod, &o.DeliveryDate, &o.BillURL, &o.CancelReason,
			&o.RefundTransactionID, &o.CreatedAt, &o.UpdatedAt) {
			break
		}
		if err := decodeOrderJSON(&o, status, paymentMethod, itemsJSON, historyJSON, addrJSON); err != nil {
			log.Printf("⚠️ Commande %s illisible, ignorée: %v", o.ID, err)
			continue
		}
		result = append(result, o)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return result, nil
}

func decodeOrderJSON(o *models.Order, status, paymentMethod, itemsJSON, historyJSON, addrJSON string) error {
	o.Status = models.OrderStatus(status)
	o.PaymentMethod = models.PaymentMethod(paymentMethod)
	if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
		return fmt.Errorf("items illisibles: %v", err)
	}
	if err := json.Unmarshal([]byte(historyJSON), &o.StatusHistory); err != nil {
		return fmt.Errorf("historique illisible: %v", err)
	}
	if err := json.Unmarshal([]byte(addrJSON), &o.Address); err != nil {
		return fmt.Errorf("adresse illisible: %v", err)
	}
	return nil
}
