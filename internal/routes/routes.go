package routes

import (
	"github.com/gin-gonic/gin"

	"velora_back_end/internal/handlers/admin"
	"velora_back_end/internal/handlers/product"
	"velora_back_end/internal/handlers/user"
	"velora_back_end/internal/middleware"
	"velora_back_end/internal/orders"
	"velora_back_end/internal/store"
	"velora_back_end/internal/utils"
)

// RegisterRoutes câble les stores Scylla, les services du moteur de
// commandes et les handlers HTTP, puis déclare les trois surfaces :
// publique, client authentifié, back-office.
func RegisterRoutes(r *gin.Engine) {
	catalog := store.NewScyllaCatalog()
	orderStore := store.NewScyllaOrders()
	reviewStore := store.NewScyllaReviews()

	reservation := orders.NewReservationService(catalog)
	assembly := orders.NewAssemblyService(orderStore, reservation, utils.MailNotifier{})
	cancel := orders.NewCancelService(orderStore, reservation)
	status := orders.NewStatusService(orderStore)
	refund := orders.NewRefundService(orderStore)
	review := orders.NewReviewService(orderStore, reviewStore)

	productHandler := &product.ProductHandler{Catalog: catalog}
	productReviews := &product.ReviewHandler{Reviews: reviewStore}
	userOrders := &user.OrderHandler{Assembly: assembly, Cancel: cancel, Orders: orderStore}
	userReviews := &user.ReviewHandler{Reviews: review, Orders: orderStore}
	adminOrders := &admin.OrderHandler{Status: status, Refund: refund, Orders: orderStore}
	adminReviews := &admin.ReviewHandler{Reviews: reviewStore}
	adminStock := &admin.StockHandler{Catalog: catalog}

	api := r.Group("/api")

	// Surface publique
	api.GET("/products", productHandler.GetProducts)
	api.GET("/products/:id", productHandler.GetProductByID)
	api.GET("/reviews", productReviews.GetReviews)

	// Surface client
	auth := api.Group("/")
	auth.Use(middleware.AuthRequired())
	{
		auth.POST("/orders", userOrders.CreateOrder)
		auth.GET("/orders", userOrders.GetMyOrders)
		auth.GET("/orders/:id", userOrders.GetOrderByID)
		auth.POST("/orders/:id/cancel", userOrders.CancelOrder)
		auth.POST("/reviews", userReviews.SubmitReview)
	}

	// Back-office
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRequired(), middleware.RequireAdmin())
	{
		adminGroup.GET("/orders", adminOrders.ListOrders)
		adminGroup.PATCH("/orders/:id/status", adminOrders.UpdateOrderStatus)
		adminGroup.POST("/orders/:id/bill", adminOrders.UploadBill)
		adminGroup.POST("/orders/:id/refund", adminOrders.RecordRefund)
		adminGroup.PATCH("/reviews", adminReviews.ReplyToReview)
		adminGroup.DELETE("/reviews", adminReviews.DeleteReview)
		adminGroup.PATCH("/products/:id/stock", adminStock.AdjustStock)
	}
}
