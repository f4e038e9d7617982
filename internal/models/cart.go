package models

import "time"

// CartItem est un instantané du produit au moment de l'ajout :
// le nom et le prix ne suivent pas les modifications ultérieures du catalogue.
type CartItem struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	Subtotal  int64      `json:"subtotal"`
	ItemCount int        `json:"item_count"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Recalculate recalcule subtotal et item_count depuis les items.
// À appeler à chaque mutation pour que les champs dérivés ne divergent jamais.
func (c *Cart) Recalculate() {
	var subtotal int64
	count := 0
	for _, item := range c.Items {
		subtotal += item.Price * int64(item.Quantity)
		count += item.Quantity
	}
	c.Subtotal = subtotal
	c.ItemCount = count
}

// QuantityOf retourne la quantité déjà présente pour un produit (0 si absent).
func (c *Cart) QuantityOf(productID string) int {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// HasItem indique si le produit figure dans le panier.
func (c *Cart) HasItem(productID string) bool {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
