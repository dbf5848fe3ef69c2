package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/models"
	"velora_back_end/internal/orders"
	"velora_back_end/internal/services"
	"velora_back_end/internal/store"
)

type OrderHandler struct {
	Status *orders.StatusService
	Refund *orders.RefundService
	Orders *store.ScyllaOrders
}

// ListOrders retourne les commandes pour le back-office.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	result, err := h.Orders.ListOrders(c.Request.Context(), limit)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": result, "count": len(result)})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// UpdateOrderStatus fait avancer une commande dans son cycle de vie. Les
// retours en arrière et les transitions depuis un état terminal sont
// refusés ; marquer livré exige qu'une facture soit déjà déposée.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de commande invalide"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide : " + err.Error()})
		return
	}

	target, err := models.ToOrderStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu : " + req.Status})
		return
	}

	o, err := h.Status.UpdateStatus(c.Request.Context(), orderID, target, req.Note)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour ✅", "order": o})
}

// UploadBill dépose la facture de livraison sur MinIO puis l'attache à la
// commande. C'est le prérequis du passage au statut livré.
func (h *OrderHandler) UploadBill(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de commande invalide"})
		return
	}

	file, err := c.FormFile("bill")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier de facture manquant"})
		return
	}

	url, err := services.UploadBill(c.Request.Context(), orderID.String(), file)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	o, err := h.Status.AttachBill(c.Request.Context(), orderID, url)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Facture déposée ✅", "bill_url": url, "order": o})
}

type refundRequest struct {
	TransactionID string `json:"transaction_id"`
}

// RecordRefund enregistre le remboursement d'une commande livrée ou
// annulée. Le statut de la commande ne change pas.
func (h *OrderHandler) RecordRefund(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de commande invalide"})
		return
	}

	var req refundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide : " + err.Error()})
		return
	}

	o, err := h.Refund.RecordRefund(c.Request.Context(), orderID, req.TransactionID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Remboursement enregistré ✅", "order": o})
}
