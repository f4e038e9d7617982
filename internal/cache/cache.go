package cache

import (
	"context"
	"encoding/json"
	"time"

	"mercato_back_end/internal/database"
	"mercato_back_end/internal/models"
)

const ProductCacheTTL = 10 * time.Minute

// GetProduct lit un produit dans le cache Redis. Retourne (nil, false)
// sur miss ou si Redis n'est pas câblé (backend mémoire).
func GetProduct(ctx context.Context, productID string) (*models.Product, bool) {
	if database.Redis == nil {
		return nil, false
	}
	data, err := database.Redis.Get(ctx, "product:"+productID).Result()
	if err != nil || data == "" {
		return nil, false
	}
	var product models.Product
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		return nil, false
	}
	return &product, true
}

// StoreProduct met un produit en cache (best effort).
func StoreProduct(ctx context.Context, product *models.Product) {
	if database.Redis == nil || product == nil {
		return
	}
	jsonData, err := json.Marshal(product)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, "product:"+product.ID, jsonData, ProductCacheTTL)
}

// InvalidateProduct invalide le cache d'un produit
func InvalidateProduct(ctx context.Context, productID string) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, "product:"+productID)
}
