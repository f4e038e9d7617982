package services

import (
	"context"

	"mercato_back_end/internal/models"
	"mercato_back_end/internal/repository"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// OrderService sert les lectures et changements de statut des commandes
// sous visibilité par rôle.
type OrderService struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// List pagine les commandes. Un acheteur est toujours restreint à ses
// propres commandes côté serveur, quel que soit le filtre demandé ;
// un admin peut filtrer par user_id ou tout voir.
func (s *OrderService) List(ctx context.Context, caller models.Identity, filter repository.OrderFilter, page, limit int) ([]models.Order, Pagination, error) {
	switch caller.Role {
	case models.RoleBuyer:
		filter.UserID = caller.UserID // jamais le filtre client
	case models.RoleAdmin:
		// filtre libre
	default:
		return nil, Pagination{}, ErrForbidden
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, Pagination{}, err
	}
	orders, err := s.orders.FindAll(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return orders, Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}

// GetByID retourne la commande. Pour un acheteur, une commande d'un autre
// compte répond NotFound (pas Forbidden) pour ne pas révéler son existence.
func (s *OrderService) GetByID(ctx context.Context, caller models.Identity, orderID string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if caller.Role == models.RoleBuyer && order.UserID != caller.UserID {
		return nil, ErrNotFound
	}
	return order, nil
}

// UpdateStatus fait évoluer le statut via la machine à états. Admin
// uniquement ; l'erreur de transition remonte telle quelle.
func (s *OrderService) UpdateStatus(ctx context.Context, caller models.Identity, orderID string, next models.OrderStatus) (*models.Order, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if err := Transition(order.Status, next); err != nil {
		return nil, err
	}
	updated, err := s.orders.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// Allowed retourne la commande et ses transitions sortantes, pour piloter
// la sélection de statut côté interface admin.
func (s *OrderService) Allowed(ctx context.Context, caller models.Identity, orderID string) (*models.Order, []models.OrderStatus, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, nil, err
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, ErrNotFound
	}
	return order, AllowedTransitions(order.Status), nil
}
