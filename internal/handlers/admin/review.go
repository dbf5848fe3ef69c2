package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/store"
)

type ReviewHandler struct {
	Reviews *store.ScyllaReviews
}

type replyRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
	Reply     string `json:"reply" binding:"required"`
}

// ReplyToReview publie la réponse du personnel sous un avis.
func (h *ReviewHandler) ReplyToReview(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide : " + err.Error()})
		return
	}

	orderID, productID, ok := parseReviewKey(c, req.OrderID, req.ProductID)
	if !ok {
		return
	}

	if err := h.Reviews.SetAdminReply(c.Request.Context(), orderID, productID, req.Reply); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Réponse publiée ✅"})
}

type deleteReviewRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
}

// DeleteReview retire un avis et son entrée d'index produit.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	var req deleteReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide : " + err.Error()})
		return
	}

	orderID, productID, ok := parseReviewKey(c, req.OrderID, req.ProductID)
	if !ok {
		return
	}

	if err := h.Reviews.DeleteReview(c.Request.Context(), orderID, productID); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Avis supprimé ✅"})
}

func parseReviewKey(c *gin.Context, rawOrderID, rawProductID string) (gocql.UUID, gocql.UUID, bool) {
	orderID, err := gocql.ParseUUID(rawOrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de commande invalide"})
		return gocql.UUID{}, gocql.UUID{}, false
	}
	productID, err := gocql.ParseUUID(rawProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant produit invalide"})
		return gocql.UUID{}, gocql.UUID{}, false
	}
	return orderID, productID, true
}
