package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mercato_back_end/internal/handlers"
	"mercato_back_end/internal/middleware"
	"mercato_back_end/internal/models"
	"mercato_back_end/internal/repository"
	"mercato_back_end/internal/services"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// ListOrders — GET /api/admin/orders?user_id=&status=&page=&limit=
// Vue admin : filtre user_id libre, ou aucune restriction.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	caller, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	filter := repository.OrderFilter{UserID: c.Query("user_id")}
	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseOrderStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide", "status": raw})
			return
		}
		filter.Status = status
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	orders, pagination, err := h.Orders.List(c.Request.Context(), caller, filter, page, limit)
	if err != nil {
		handlers.RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": pagination,
	})
}

// UpdateStatus — PATCH /api/admin/orders/:id/status
// La légalité de la transition est tranchée par la machine à états,
// jamais ici.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	caller, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	status, ok := models.ParseOrderStatus(input.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide", "status": input.Status})
		return
	}

	order, err := h.Orders.UpdateStatus(c.Request.Context(), caller, c.Param("id"), status)
	if err != nil {
		handlers.RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Statut mis à jour",
		"order":   order,
	})
}

// AllowedTransitions — GET /api/admin/orders/:id/transitions
// Alimente la sélection de statut côté interface admin.
func (h *OrderHandler) AllowedTransitions(c *gin.Context) {
	caller, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	order, allowed, err := h.Orders.Allowed(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		handlers.RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": order.ID,
		"status":   order.Status,
		"allowed":  allowed,
	})
}
