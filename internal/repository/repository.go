package repository

import (
	"context"

	"mercato_back_end/internal/models"
)

// ProductFetcher expose la lecture des produits visibles publiquement.
// Retourne (nil, nil) si le produit n'existe pas ou n'est pas actif :
// un produit dépublié est invisible, pas une erreur.
type ProductFetcher interface {
	FindByID(ctx context.Context, productID string) (*models.Product, error)
}

// CartRepository porte les mutations du panier. Chaque mutation recalcule
// les champs dérivés (subtotal, item_count) et persiste le panier complet.
type CartRepository interface {
	// FindByUserID retourne (nil, nil) si l'acheteur n'a pas encore de panier.
	FindByUserID(ctx context.Context, userID string) (*models.Cart, error)
	Create(ctx context.Context, userID string) (*models.Cart, error)
	// AddItem fusionne avec la ligne existante (quantités additionnées).
	AddItem(ctx context.Context, userID string, item models.CartItem) (*models.Cart, error)
	// UpdateItemQuantity remplace la quantité (pas d'addition).
	UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error)
	// RemoveItem est idempotent : jamais d'erreur si la ligne est absente.
	RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error)
}

// CartFetcher est la vue du panier côté checkout.
type CartFetcher interface {
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	// Clear vide le panier (items supprimés, panier conservé).
	Clear(ctx context.Context, userID string) error
}

// CartStore regroupe les deux vues pour le câblage dans main.
type CartStore interface {
	CartRepository
	CartFetcher
}

type OrderFilter struct {
	UserID string
	Status models.OrderStatus
}

type OrderRepository interface {
	// FindAll retourne les commandes triées par date de création décroissante.
	FindAll(ctx context.Context, filter OrderFilter, offset, limit int) ([]models.Order, error)
	// FindByID retourne (nil, nil) si la commande n'existe pas.
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	Count(ctx context.Context, filter OrderFilter) (int, error)
	Create(ctx context.Context, order *models.Order) error
	// UpdateStatus retourne (nil, nil) si la commande n'existe pas.
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error)
}

// ProductRepository couvre l'administration du catalogue.
type ProductRepository interface {
	ProductFetcher
	// FindByIDAny retourne aussi les produits inactifs (vue admin).
	FindByIDAny(ctx context.Context, productID string) (*models.Product, error)
	FindAll(ctx context.Context, includeInactive bool) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, productID string) error
	UpdateStock(ctx context.Context, productID string, stock int) error
	RecordMovement(ctx context.Context, m *models.StockMovement) error
	FindMovements(ctx context.Context, productID string) ([]models.StockMovement, error)
}

type UserRepository interface {
	// FindByEmail retourne (nil, nil) si aucun compte n'existe pour cet email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}
