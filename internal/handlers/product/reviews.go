package product

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/models"
)

// ReviewLister est la vue lecture seule sur les avis publiés.
type ReviewLister interface {
	ListReviewsByProduct(ctx context.Context, productID gocql.UUID) ([]models.Review, error)
	ListReviewsByOrder(ctx context.Context, orderID gocql.UUID) ([]models.Review, error)
}

type ReviewHandler struct {
	Reviews ReviewLister
}

// GetReviews liste les avis publiés, par produit (?productId=) pour la fiche
// produit, ou par commande (?orderId=) pour l'écran de suivi.
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	if raw := c.Query("productId"); raw != "" {
		productID, err := gocql.ParseUUID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre productId invalide"})
			return
		}
		reviews, err := h.Reviews.ListReviewsByProduct(c.Request.Context(), productID)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
		return
	}

	if raw := c.Query("orderId"); raw != "" {
		orderID, err := gocql.ParseUUID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre orderId invalide"})
			return
		}
		reviews, err := h.Reviews.ListReviewsByOrder(c.Request.Context(), orderID)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre productId ou orderId requis"})
}
