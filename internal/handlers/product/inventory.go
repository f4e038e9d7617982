package product

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mercato_back_end/internal/handlers"
	"mercato_back_end/internal/middleware"
	"mercato_back_end/internal/models"
	"mercato_back_end/internal/utils"
)

// UpdateStock — PATCH /api/admin/products/:id/stock
// Deux types d'opération : "restock" (delta ajouté au stock) et
// "adjustment" (quantité absolue après inventaire).
func (h *Handler) UpdateStock(c *gin.Context) {
	productID := c.Param("id")

	var req struct {
		Quantity int    `json:"quantity" binding:"required"`
		Reason   string `json:"reason" binding:"required"`
		Type     string `json:"type" binding:"required"` // "restock", "adjustment"
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	existing, err := h.Products.FindByIDAny(c.Request.Context(), productID)
	if err != nil {
		handlers.RenderError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	prevStock := existing.Stock

	var newStock int
	switch req.Type {
	case "restock":
		newStock = prevStock + req.Quantity
	case "adjustment":
		newStock = req.Quantity // quantité absolue
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type d'opération invalide"})
		return
	}

	if newStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas être négatif"})
		return
	}

	if err := h.Products.UpdateStock(c.Request.Context(), productID, newStock); err != nil {
		handlers.RenderError(c, err)
		return
	}

	caller, _ := middleware.Identity(c)
	movement := models.StockMovement{
		ID:        uuid.NewString(),
		ProductID: productID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		PrevStock: prevStock,
		NewStock:  newStock,
		Reason:    req.Reason,
		UserID:    caller.UserID,
		CreatedAt: time.Now(),
	}
	if err := h.Products.RecordMovement(c.Request.Context(), &movement); err != nil {
		log.Printf("⚠️ Erreur enregistrement mouvement stock: %v", err)
	}

	// Alerte email si le nouveau stock passe sous le seuil.
	threshold := existing.LowStockThreshold
	if threshold == 0 {
		threshold = 10 // seuil par défaut
	}
	if newStock <= threshold {
		alerted := *existing
		alerted.Stock = newStock
		if err := utils.SendLowStockAlert(alerted); err != nil {
			log.Printf("⚠️ Erreur envoi alerte stock faible: %v", err)
		} else {
			log.Printf("🚨 Alerte stock faible pour %s (stock: %d)", existing.Name, newStock)
		}
	}

	log.Printf("✅ Stock mis à jour pour %s: %d -> %d", existing.Name, prevStock, newStock)
	c.JSON(http.StatusOK, gin.H{
		"message":     "Stock mis à jour avec succès",
		"prev_stock":  prevStock,
		"new_stock":   newStock,
		"movement_id": movement.ID,
	})
}

// GetStockMovements — GET /api/admin/products/:id/movements
func (h *Handler) GetStockMovements(c *gin.Context) {
	movements, err := h.Products.FindMovements(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"movements": movements,
		"total":     len(movements),
	})
}
