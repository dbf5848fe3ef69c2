package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

// ReviewWindow est la fenêtre pendant laquelle un avis peut être déposé,
// ancrée sur le dernier changement de statut de la commande.
const ReviewWindow = 72 * time.Hour

// CheckReviewEligibility est la fonction de décision, sans effet de bord.
// Un avis n'est possible que sur une commande expédiée ou livrée, dans la
// fenêtre de 72 heures suivant le dernier changement de statut, et s'il
// n'existe pas déjà d'avis pour ce couple (commande, produit).
func CheckReviewEligibility(o *models.Order, now time.Time, hasExisting bool) error {
	if o.Status != models.StatusDelivered && o.Status != models.StatusShipped {
		return ErrOrderNotReviewable
	}
	if now.Sub(o.UpdatedAt) > ReviewWindow {
		return ErrReviewWindowExpired
	}
	if hasExisting {
		return ErrDuplicateReview
	}
	return nil
}

type ReviewInput struct {
	OrderID   gocql.UUID
	ProductID gocql.UUID
	Rating    int
	Comment   string
}

// ReviewService applique la fenêtre d'éligibilité puis crée l'avis, en
// re-vérifiant l'unicité de façon atomique à l'écriture.
type ReviewService struct {
	orders  OrderStore
	reviews ReviewStore
}

func NewReviewService(orders OrderStore, reviews ReviewStore) *ReviewService {
	return &ReviewService{orders: orders, reviews: reviews}
}

func (s *ReviewService) SubmitReview(ctx context.Context, userID, userName string, in ReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	comment := strings.TrimSpace(in.Comment)
	if comment == "" {
		return nil, ErrBlankComment
	}

	o, err := s.orders.GetOrder(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}

	existing, err := s.reviews.GetReview(ctx, in.OrderID, in.ProductID)
	if err != nil && !errors.Is(err, ErrReviewNotFound) {
		return nil, err
	}

	if err := CheckReviewEligibility(o, time.Now(), existing != nil); err != nil {
		return nil, err
	}

	r := &models.Review{
		ID:        gocql.TimeUUID(),
		OrderID:   in.OrderID,
		ProductID: in.ProductID,
		UserID:    userID,
		UserName:  userName,
		Rating:    in.Rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	applied, err := s.reviews.InsertReview(ctx, r)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Course perdue entre la vérification et l'écriture.
		return nil, ErrDuplicateReview
	}
	return r, nil
}
