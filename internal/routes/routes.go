package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mercato_back_end/internal/handlers"
	adminhandlers "mercato_back_end/internal/handlers/admin"
	"mercato_back_end/internal/handlers/product"
	"mercato_back_end/internal/handlers/user"
	"mercato_back_end/internal/middleware"
)

// Handlers regroupe toutes les dépendances câblées dans main.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Products    *product.Handler
	Cart        *user.CartHandler
	Checkout    *user.CheckoutHandler
	Orders      *user.OrderHandler
	AdminOrders *adminhandlers.OrderHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Routes publiques
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/products", h.Products.List)
	api.GET("/products/:id", h.Products.GetByID)

	// Routes authentifiées
	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	{
		authed.GET("/auth/me", h.Auth.Me)

		authed.GET("/cart", h.Cart.GetCart)
		authed.POST("/cart/add", h.Cart.AddItem)
		authed.PATCH("/cart/:productId", h.Cart.UpdateQuantity)
		authed.DELETE("/cart/:productId", h.Cart.RemoveItem)
		authed.GET("/cart/ws", h.Cart.CartWebSocket)

		authed.POST("/checkout", h.Checkout.CreateOrder)

		authed.GET("/orders", h.Orders.GetMyOrders)
		authed.GET("/orders/:id", h.Orders.GetOrderByID)
	}

	// Routes admin
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		admin.GET("/orders", h.AdminOrders.ListOrders)
		admin.PATCH("/orders/:id/status", h.AdminOrders.UpdateStatus)
		admin.GET("/orders/:id/transitions", h.AdminOrders.AllowedTransitions)

		admin.GET("/products", h.Products.ListAll)
		admin.POST("/products", h.Products.Create)
		admin.PUT("/products/:id", h.Products.Update)
		admin.PATCH("/products/:id/active", h.Products.SetActive)
		admin.DELETE("/products/:id", h.Products.Delete)
		admin.PATCH("/products/:id/stock", h.Products.UpdateStock)
		admin.GET("/products/:id/movements", h.Products.GetStockMovements)
	}
}
