package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mercato_back_end/internal/handlers"
	"mercato_back_end/internal/middleware"
	"mercato_back_end/internal/services"
)

type CartHandler struct {
	Carts *services.CartService
}

// GetCart retourne le panier de l'acheteur, créé vide au premier accès.
func (h *CartHandler) GetCart(c *gin.Context) {
	caller, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	cart, err := h.Carts.GetOrCreate(c.Request.Context(), caller)
	if err != nil {
		handlers.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem — POST /api/cart/add
func (h *CartHandler) AddItem(c *gin.Context) {
	caller, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1 // quantité par défaut
	}

	cart, err := h.Carts.AddItem(c.Request.Context(), caller, input.ProductID, input.Quantity)
	if err != nil {
		handlers.RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"cart":    cart,
	})
}

// UpdateQuantity — PATCH /api/cart/:productId
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	caller, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	cart, err := h.Carts.UpdateItemQuantity(c.Request.Context(), caller, c.Param("productId"), input.Quantity)
	if err != nil {
		handlers.RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quantité mise à jour",
		"cart":    cart,
	})
}

// RemoveItem — DELETE /api/cart/:productId. Idempotent.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	caller, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	cart, err := h.Carts.RemoveItem(c.Request.Context(), caller, c.Param("productId"))
	if err != nil {
		handlers.RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"cart":    cart,
	})
}
