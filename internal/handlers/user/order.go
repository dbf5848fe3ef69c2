package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/models"
	"velora_back_end/internal/orders"
	"velora_back_end/internal/store"
)

type OrderHandler struct {
	Assembly *orders.AssemblyService
	Cancel   *orders.CancelService
	Orders   *store.ScyllaOrders
}

type orderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Qty       int    `json:"qty"`
	Color     string `json:"color"`
}

type createOrderRequest struct {
	Items         []orderItemRequest `json:"items" binding:"required"`
	Address       models.Address     `json:"address" binding:"required"`
	PaymentMethod string             `json:"payment_method" binding:"required"`
	DeliveryDate  string             `json:"delivery_date"`
}

// CreateOrder crée une commande à partir du panier du client. Les prix sont
// relus au catalogue, jamais pris dans la requête.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide : " + err.Error()})
		return
	}

	method, err := models.ToPaymentMethod(req.PaymentMethod)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Moyen de paiement inconnu : " + req.PaymentMethod})
		return
	}

	lines := make([]orders.ReservationLine, 0, len(req.Items))
	for _, it := range req.Items {
		productID, err := gocql.ParseUUID(it.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant produit invalide : " + it.ProductID})
			return
		}
		lines = append(lines, orders.ReservationLine{ProductID: productID, Qty: it.Qty, Color: it.Color})
	}

	// Date de livraison indicative : J+5 par défaut.
	deliveryDate := time.Now().AddDate(0, 0, 5)
	if req.DeliveryDate != "" {
		if d, err := time.Parse("2006-01-02", req.DeliveryDate); err == nil {
			deliveryDate = d
		}
	}

	userID := c.GetString("user_id")
	email, _ := c.Get("email")
	userEmail, _ := email.(string)

	o, err := h.Assembly.CreateOrder(c.Request.Context(), userID, orders.CreateOrderInput{
		Items:         lines,
		Address:       req.Address,
		PaymentMethod: method,
		DeliveryDate:  deliveryDate,
		UserEmail:     userEmail,
	})
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Commande créée ✅", "order": o})
}

// GetMyOrders liste les commandes du client connecté.
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	result, err := h.Orders.ListOrdersByUser(c.Request.Context(), userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": result})
}

// GetOrderByID retourne une commande du client. Une commande appartenant à
// un autre client est traitée comme introuvable pour ne pas révéler son
// existence.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de commande invalide"})
		return
	}

	o, err := h.Orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	if o.UserID != c.GetString("user_id") {
		c.JSON(http.StatusNotFound, gin.H{"error": orders.ErrOrderNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder annule la commande du client et restitue le stock.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de commande invalide"})
		return
	}

	var req cancelOrderRequest
	_ = c.ShouldBindJSON(&req)

	o, err := h.Cancel.Cancel(c.Request.Context(), c.GetString("user_id"), orderID, req.Reason)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Commande annulée ✅", "order": o})
}
