package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/orders"
)

// RespondError traduit une erreur du moteur de commandes en réponse HTTP.
// Les erreurs métier gardent leur message français tel quel ; tout le reste
// devient un 500 générique pour ne pas fuiter l'interne.
func RespondError(c *gin.Context, err error) {
	var stockErr *orders.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     stockErr.Error(),
			"product":   stockErr.ProductName,
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
		return
	}

	var transErr *orders.InvalidTransitionError
	if errors.As(err, &transErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error": transErr.Error(),
			"from":  string(transErr.From),
			"to":    string(transErr.To),
		})
		return
	}

	switch {
	case errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, orders.ErrProductNotFound),
		errors.Is(err, orders.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, orders.ErrNotOrderOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, orders.ErrEmptyCart),
		errors.Is(err, orders.ErrInvalidRating),
		errors.Is(err, orders.ErrBlankComment),
		errors.Is(err, orders.ErrMissingTransactionID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, orders.ErrVersionConflict),
		errors.Is(err, orders.ErrMissingBillDocument),
		errors.Is(err, orders.ErrOrderNotRefundable),
		errors.Is(err, orders.ErrCodCancelledNotRefundable),
		errors.Is(err, orders.ErrOrderNotReviewable),
		errors.Is(err, orders.ErrReviewWindowExpired),
		errors.Is(err, orders.ErrDuplicateReview):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		log.Println("❌ Erreur serveur :", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
	}
}
