package product

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mercato_back_end/internal/handlers"
	"mercato_back_end/internal/models"
	"mercato_back_end/internal/repository"
)

type Handler struct {
	Products repository.ProductRepository
}

// List — GET /api/products : catalogue public, produits actifs seulement.
func (h *Handler) List(c *gin.Context) {
	products, err := h.Products.FindAll(c.Request.Context(), false)
	if err != nil {
		handlers.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// ListAll — GET /api/admin/products : vue admin, produits inactifs inclus.
func (h *Handler) ListAll(c *gin.Context) {
	products, err := h.Products.FindAll(c.Request.Context(), true)
	if err != nil {
		handlers.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetByID — GET /api/products/:id. Un produit dépublié répond 404.
func (h *Handler) GetByID(c *gin.Context) {
	product, err := h.Products.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.RenderError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create — POST /api/admin/products
func (h *Handler) Create(c *gin.Context) {
	var input struct {
		Name              string `json:"name" binding:"required"`
		Description       string `json:"description"`
		Price             int64  `json:"price" binding:"required,min=1"` // centimes
		Stock             int    `json:"stock" binding:"min=0"`
		LowStockThreshold int    `json:"low_stock_threshold" binding:"min=0"`
		IsActive          bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	now := time.Now()
	product := models.Product{
		ID:                uuid.NewString(),
		Name:              input.Name,
		Description:       input.Description,
		Price:             input.Price,
		Stock:             input.Stock,
		LowStockThreshold: input.LowStockThreshold,
		IsActive:          input.IsActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := h.Products.Create(c.Request.Context(), &product); err != nil {
		handlers.RenderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// Update — PUT /api/admin/products/:id
func (h *Handler) Update(c *gin.Context) {
	productID := c.Param("id")

	existing, err := h.Products.FindByIDAny(c.Request.Context(), productID)
	if err != nil {
		handlers.RenderError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	var input struct {
		Name              string `json:"name" binding:"required"`
		Description       string `json:"description"`
		Price             int64  `json:"price" binding:"required,min=1"`
		LowStockThreshold int    `json:"low_stock_threshold" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Price = input.Price
	existing.LowStockThreshold = input.LowStockThreshold
	existing.UpdatedAt = time.Now()

	if err := h.Products.Update(c.Request.Context(), existing); err != nil {
		handlers.RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, existing)
}

// SetActive — PATCH /api/admin/products/:id/active
// Publie ou dépublie : un produit inactif disparaît du catalogue public
// et devient invisible pour le panier.
func (h *Handler) SetActive(c *gin.Context) {
	productID := c.Param("id")

	existing, err := h.Products.FindByIDAny(c.Request.Context(), productID)
	if err != nil {
		handlers.RenderError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	var input struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	existing.IsActive = *input.IsActive
	existing.UpdatedAt = time.Now()

	if err := h.Products.Update(c.Request.Context(), existing); err != nil {
		handlers.RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Visibilité mise à jour",
		"id":        existing.ID,
		"is_active": existing.IsActive,
	})
}

// Delete — DELETE /api/admin/products/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handlers.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
