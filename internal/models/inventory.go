package models

import (
	"time"

	"github.com/gocql/gocql"
)

const (
	MovementSale       = "sale"
	MovementReturn     = "return"
	MovementRestock    = "restock"
	MovementAdjustment = "adjustment"
)

// StockMovement trace chaque mutation de stock. C'est le journal qui permet
// de rejouer une restitution qui aurait échoué à mi-chemin.
type StockMovement struct {
	ID        gocql.UUID  `json:"id"`
	ProductID gocql.UUID  `json:"product_id"`
	Type      string      `json:"type"` // "sale", "return", "restock", "adjustment"
	Quantity  int         `json:"quantity"`
	PrevStock int         `json:"prev_stock"`
	NewStock  int         `json:"new_stock"`
	Reason    string      `json:"reason"`
	OrderID   *gocql.UUID `json:"order_id,omitempty"`
	UserID    string      `json:"user_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
