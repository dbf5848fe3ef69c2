package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
)

type StockHandler struct {
	Catalog *store.ScyllaCatalog
}

type adjustStockRequest struct {
	Quantity     int    `json:"quantity"`
	MovementType string `json:"movement_type" binding:"required"`
	Reason       string `json:"reason"`
}

// AdjustStock corrige le stock d'un produit : "restock" ajoute des unités,
// "adjustment" fixe la valeur absolue après inventaire. Chaque correction
// laisse un mouvement de stock en audit.
func (h *StockHandler) AdjustStock(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant produit invalide"})
		return
	}

	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide : " + err.Error()})
		return
	}

	if req.MovementType != models.MovementRestock && req.MovementType != models.MovementAdjustment {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de mouvement inconnu : " + req.MovementType})
		return
	}
	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La quantité ne peut pas être négative"})
		return
	}

	prev, next, err := h.Catalog.AdjustStock(c.Request.Context(), productID, req.Quantity,
		req.MovementType, req.Reason, c.GetString("user_id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Stock mis à jour ✅",
		"previous_stock": prev,
		"new_stock":      next,
	})
}
