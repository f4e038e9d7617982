package services

import (
	"context"
	"time"

	"mercato_back_end/internal/models"
	"mercato_back_end/internal/repository"
)

// CartService applique la règle du panier : aucune ligne ne peut dépasser
// le stock courant du produit. Le contrôle se fait à la mutation, pas en
// invariant permanent (le stock peut baisser ensuite côté catalogue).
type CartService struct {
	products repository.ProductFetcher
	carts    repository.CartRepository
	locks    *userLocks
}

func NewCartService(products repository.ProductFetcher, carts repository.CartRepository) *CartService {
	return &CartService{products: products, carts: carts, locks: newUserLocks()}
}

// GetOrCreate retourne le panier de l'acheteur, créé vide au premier accès.
func (s *CartService) GetOrCreate(ctx context.Context, caller models.Identity) (*models.Cart, error) {
	if err := requireBuyer(caller); err != nil {
		return nil, err
	}
	cart, err := s.carts.FindByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	return s.carts.Create(ctx, caller.UserID)
}

// AddItem ajoute (ou fusionne) une ligne après contrôle de stock :
// quantité existante + quantité demandée <= stock, l'égalité passe.
func (s *CartService) AddItem(ctx context.Context, caller models.Identity, productID string, quantity int) (*models.Cart, error) {
	if err := requireBuyer(caller); err != nil {
		return nil, err
	}
	mu := s.locks.forUser(caller.UserID)
	mu.Lock()
	defer mu.Unlock()

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	cart, err := s.carts.FindByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	current := 0
	if cart != nil {
		current = cart.QuantityOf(productID)
	}
	if current+quantity > product.Stock {
		return nil, &StockConflictError{
			ProductID: productID,
			Requested: current + quantity,
			Available: product.Stock,
		}
	}

	item := models.CartItem{
		ProductID: product.ID,
		Name:      product.Name, // instantané : le catalogue peut changer après
		Price:     product.Price,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}
	return s.carts.AddItem(ctx, caller.UserID, item)
}

// UpdateItemQuantity remplace la quantité d'une ligne existante, avec un
// contrôle de stock frais (le produit est relu, pas le cliché du panier).
func (s *CartService) UpdateItemQuantity(ctx context.Context, caller models.Identity, productID string, quantity int) (*models.Cart, error) {
	if err := requireBuyer(caller); err != nil {
		return nil, err
	}
	mu := s.locks.forUser(caller.UserID)
	mu.Lock()
	defer mu.Unlock()

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	cart, err := s.carts.FindByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil || !cart.HasItem(productID) {
		return nil, ErrNotFound
	}
	if quantity > product.Stock {
		return nil, &StockConflictError{
			ProductID: productID,
			Requested: quantity,
			Available: product.Stock,
		}
	}
	return s.carts.UpdateItemQuantity(ctx, caller.UserID, productID, quantity)
}

// RemoveItem retire la ligne. Idempotent : une ligne absente n'est pas
// une erreur.
func (s *CartService) RemoveItem(ctx context.Context, caller models.Identity, productID string) (*models.Cart, error) {
	if err := requireBuyer(caller); err != nil {
		return nil, err
	}
	mu := s.locks.forUser(caller.UserID)
	mu.Lock()
	defer mu.Unlock()
	return s.carts.RemoveItem(ctx, caller.UserID, productID)
}
