package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mercato_back_end/internal/config"
	"mercato_back_end/internal/database"
	"mercato_back_end/internal/handlers"
	adminhandlers "mercato_back_end/internal/handlers/admin"
	"mercato_back_end/internal/handlers/product"
	"mercato_back_end/internal/handlers/user"
	"mercato_back_end/internal/models"
	"mercato_back_end/internal/repository"
	"mercato_back_end/internal/routes"
	"mercato_back_end/internal/services"
	"mercato_back_end/internal/utils"
)

func main() {
	config.Load()

	var (
		carts    repository.CartStore
		orders   repository.OrderRepository
		products repository.ProductRepository
		users    repository.UserRepository
	)

	if os.Getenv("STORE_BACKEND") == "memory" {
		log.Println("⚠️ Backend mémoire activé (démo) : aucune persistance")
		store := repository.NewMemoryStore()
		carts = store.Carts
		orders = store.Orders
		products = store.Products
		users = store.Users
		seedDemoData(store)
	} else {
		database.ConnectDatabases()

		// ✅ Initialiser les prepared statements pour améliorer les performances
		database.InitPreparedStatements()

		warmupRedisCache()

		carts = repository.NewRedisCartStore(database.Redis)
		orders = repository.NewScyllaOrderStore()
		products = repository.NewScyllaProductStore()
		users = repository.NewScyllaUserStore()
	}

	cartService := services.NewCartService(products, carts)
	checkoutService := services.NewCheckoutService(carts, orders)
	orderService := services.NewOrderService(orders)

	h := routes.Handlers{
		Auth:        &handlers.AuthHandler{Users: users},
		Products:    &product.Handler{Products: products},
		Cart:        &user.CartHandler{Carts: cartService},
		Checkout:    &user.CheckoutHandler{Checkout: checkoutService},
		Orders:      &user.OrderHandler{Orders: orderService},
		AdminOrders: &adminhandlers.OrderHandler{Orders: orderService},
	}

	r := gin.Default()
	routes.RegisterRoutes(r, h)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Mercato lancé sur le port", port)
	r.Run(":" + port)
}

// seedDemoData crée un compte admin et quelques produits pour le mode démo.
func seedDemoData(store *repository.MemoryStore) {
	ctx := context.Background()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" {
		adminEmail = "admin@mercato.local"
	}
	if adminPassword == "" {
		adminPassword = "admin1234"
	}

	hash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("❌ Impossible de hasher le mot de passe admin: %v", err)
	}

	admin := models.User{
		ID:        uuid.NewString(),
		Email:     adminEmail,
		Password:  hash,
		Name:      "Admin",
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if err := store.Users.Create(ctx, &admin); err != nil {
		log.Printf("⚠️ Erreur création compte admin: %v", err)
	} else {
		log.Println("✅ Compte admin créé:", adminEmail)
	}

	now := time.Now()
	demo := []models.Product{
		{ID: uuid.NewString(), Name: "Casque audio", Description: "Casque circum-aural sans fil", Price: 4980, Stock: 25, LowStockThreshold: 5, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Name: "Clavier mécanique", Description: "Switches rouges, format TKL", Price: 8990, Stock: 12, LowStockThreshold: 3, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Name: "Souris ergonomique", Description: "Capteur 16k DPI", Price: 3490, Stock: 40, LowStockThreshold: 10, IsActive: true, CreatedAt: now, UpdatedAt: now},
	}
	for i := range demo {
		if err := store.Products.Create(ctx, &demo[i]); err != nil {
			log.Printf("⚠️ Erreur création produit démo: %v", err)
		}
	}
	log.Printf("✅ %d produits démo créés", len(demo))
}

// warmupRedisCache pré-chauffe le cache Redis pour éviter la latence du premier appel
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Cache Redis pré-chauffé")
	}
}
