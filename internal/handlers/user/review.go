package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/orders"
)

type ReviewHandler struct {
	Reviews *orders.ReviewService
	Orders  orders.OrderStore
}

type submitReviewRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment" binding:"required"`
}

// SubmitReview dépose un avis sur un produit d'une commande expédiée ou
// livrée, dans la fenêtre de 72 heures.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide : " + err.Error()})
		return
	}

	orderID, err := gocql.ParseUUID(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de commande invalide"})
		return
	}
	productID, err := gocql.ParseUUID(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant produit invalide"})
		return
	}

	userID := c.GetString("user_id")

	// L'avis est réservé au client qui a passé la commande.
	o, err := h.Orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	if o.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": orders.ErrOrderNotFound.Error()})
		return
	}

	name, _ := c.Get("name")
	userName, _ := name.(string)

	r, err := h.Reviews.SubmitReview(c.Request.Context(), userID, userName, orders.ReviewInput{
		OrderID:   orderID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Avis enregistré ✅", "review": r})
}
