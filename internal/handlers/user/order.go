package user

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

// GetMyOrders — GET /api/orders?page=&limit=&status=
// Le filtre user_id est posé côté serveur, jamais repris du client.
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	caller, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	filter := repository.OrderFilter{}
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

// GetOrderByID — GET /api/orders/:id. Une commande d'un autre compte
// répond 404, pas 403.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	caller, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	order, err := h.Orders.GetByID(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		handlers.RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
