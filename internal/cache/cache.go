package cache

import (
	"context"
	"encoding/json"
	"time"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

const (
	ProductCacheTTL     = 10 * time.Minute
	ProductListCacheTTL = 2 * time.Minute
)

const productListKey = "products:all"

// GetProductFromCache récupère un produit depuis Redis. Le stock servi
// depuis le cache est indicatif : toute décision d'inventaire passe par le
// store et son écriture conditionnelle, jamais par ici.
func GetProductFromCache(productID string) (*models.Product, bool) {
	ctx := context.Background()

	data, err := database.Redis.Get(ctx, "product:"+productID).Result()
	if err != nil {
		return nil, false
	}

	var p models.Product
	if json.Unmarshal([]byte(data), &p) != nil {
		return nil, false
	}
	return &p, true
}

// SetProductInCache met un produit en cache
func SetProductInCache(p *models.Product) {
	ctx := context.Background()

	jsonData, err := json.Marshal(p)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, "product:"+p.ID.String(), jsonData, ProductCacheTTL)
}

// GetProductListFromCache récupère la liste des produits actifs
func GetProductListFromCache() ([]models.Product, bool) {
	ctx := context.Background()

	data, err := database.Redis.Get(ctx, productListKey).Result()
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if json.Unmarshal([]byte(data), &products) != nil {
		return nil, false
	}
	return products, true
}

// SetProductListInCache met la liste des produits en cache
func SetProductListInCache(products []models.Product) {
	ctx := context.Background()

	jsonData, err := json.Marshal(products)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, productListKey, jsonData, ProductListCacheTTL)
}

// InvalidateProductCache invalide le cache d'un produit, appelé après
// chaque mutation de stock ou de fiche produit.
func InvalidateProductCache(productID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "product:"+productID, productListKey)
}
