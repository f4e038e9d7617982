package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mercato_back_end/internal/handlers"
	"mercato_back_end/internal/middleware"
	"mercato_back_end/internal/services"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

// CreateOrder — POST /api/checkout : panier → commande "pending",
// panier vidé.
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	caller, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	order, err := h.Checkout.CreateOrder(c.Request.Context(), caller)
	if err != nil {
		handlers.RenderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande créée",
		"order":   order,
	})
}
