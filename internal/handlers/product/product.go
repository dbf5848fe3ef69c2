package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/handlers"
	"velora_back_end/internal/store"
)

type ProductHandler struct {
	Catalog *store.ScyllaCatalog
}

// GetProducts retourne le catalogue. La liste passe par le cache Redis ; le
// stock affiché est indicatif, seule la réservation fait foi.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	if products, ok := cache.GetProductListFromCache(); ok {
		c.JSON(http.StatusOK, gin.H{"products": products, "cached": true})
		return
	}

	products, err := h.Catalog.ListProducts(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	cache.SetProductListInCache(products)
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProductByID retourne la fiche d'un produit.
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant produit invalide"})
		return
	}

	if p, ok := cache.GetProductFromCache(productID.String()); ok {
		c.JSON(http.StatusOK, gin.H{"product": p, "cached": true})
		return
	}

	p, err := h.Catalog.GetProduct(c.Request.Context(), productID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	cache.SetProductInCache(p)
	c.JSON(http.StatusOK, gin.H{"product": p})
}
