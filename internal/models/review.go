package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Review : au plus un avis par couple (commande, produit), garanti par la
// clé primaire côté base.
type Review struct {
	ID         gocql.UUID `json:"id" db:"review_id"`
	OrderID    gocql.UUID `json:"order_id" db:"order_id"`
	ProductID  gocql.UUID `json:"product_id" db:"product_id"`
	UserID     string     `json:"user_id" db:"user_id"`
	UserName   string     `json:"user_name" db:"user_name"`
	Rating     int        `json:"rating" db:"rating"` // 1-5
	Comment    string     `json:"comment" db:"comment"`
	AdminReply string     `json:"admin_reply,omitempty" db:"admin_reply"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
