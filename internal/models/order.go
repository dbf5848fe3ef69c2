package models

import (
	"time"

	"github.com/gocql/gocql"
)

// OrderItem est un instantané immuable : le nom et le prix sont ceux du
// produit au moment de la commande, jamais recalculés ensuite.
type OrderItem struct {
	ProductID gocql.UUID `json:"product_id"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Qty       int        `json:"qty"`
	Color     string     `json:"color,omitempty"`
}

// StatusChange est une entrée de l'historique de statuts, en append-only.
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Note      string      `json:"note,omitempty"`
}

// Address est l'instantané de l'adresse de livraison au moment de la
// commande, jamais re-dérivé du profil utilisateur.
type Address struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
}

type Order struct {
	ID                  gocql.UUID     `json:"id" db:"order_id"`
	UserID              string         `json:"user_id" db:"user_id"`
	UserEmail           string         `json:"user_email,omitempty" db:"user_email"`
	Items               []OrderItem    `json:"items" db:"items"`
	Total               float64        `json:"total" db:"total"`
	Status              OrderStatus    `json:"status" db:"status"`
	StatusHistory       []StatusChange `json:"status_history" db:"status_history"`
	Address             Address        `json:"address" db:"address"`
	PaymentMethod       PaymentMethod  `json:"payment_method" db:"payment_method"`
	DeliveryDate        time.Time      `json:"delivery_date" db:"delivery_date"`
	BillURL             string         `json:"bill_url,omitempty" db:"bill_url"`
	CancelReason        string         `json:"cancel_reason,omitempty" db:"cancel_reason"`
	RefundTransactionID string         `json:"refund_transaction_id,omitempty" db:"refund_transaction_id"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" db:"updated_at"`
}
