package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mercato_back_end/internal/models"
)

// Backend mémoire (démo et tests) : des maps protégées par un RWMutex,
// aucun état global. Mêmes contrats que les backends Redis/ScyllaDB.

// MemoryStore regroupe les quatre magasins pour le câblage dans main.
type MemoryStore struct {
	Carts    *MemoryCartStore
	Orders   *MemoryOrderStore
	Products *MemoryProductStore
	Users    *MemoryUserStore
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Carts:    &MemoryCartStore{carts: make(map[string]*models.Cart)},
		Orders:   &MemoryOrderStore{orders: make(map[string]*models.Order)},
		Products: &MemoryProductStore{products: make(map[string]*models.Product)},
		Users:    &MemoryUserStore{users: make(map[string]*models.User)},
	}
}

// --- Panier ---

type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]*models.Cart // clé : user_id
}

func (s *MemoryCartStore) FindByUserID(_ context.Context, userID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[userID]
	if !ok {
		return nil, nil
	}
	return cloneCart(cart), nil
}

func (s *MemoryCartStore) Create(_ context.Context, userID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCart(s.cartLocked(userID)), nil
}

func (s *MemoryCartStore) AddItem(_ context.Context, userID string, item models.CartItem) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartLocked(userID)
	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}
	s.saveCartLocked(cart)
	return cloneCart(cart), nil
}

func (s *MemoryCartStore) UpdateItemQuantity(_ context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartLocked(userID)
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			break
		}
	}
	s.saveCartLocked(cart)
	return cloneCart(cart), nil
}

func (s *MemoryCartStore) RemoveItem(_ context.Context, userID, productID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartLocked(userID)
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
	s.saveCartLocked(cart)
	return cloneCart(cart), nil
}

func (s *MemoryCartStore) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	return s.FindByUserID(ctx, userID)
}

func (s *MemoryCartStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		return nil
	}
	cart.Items = nil
	s.saveCartLocked(cart)
	return nil
}

// cartLocked retourne le panier de l'acheteur, créé au vol si absent.
// Appelant déjà sous verrou.
func (s *MemoryCartStore) cartLocked(userID string) *models.Cart {
	cart, ok := s.carts[userID]
	if !ok {
		now := time.Now()
		cart = &models.Cart{ID: uuid.NewString(), UserID: userID, CreatedAt: now, UpdatedAt: now}
		s.carts[userID] = cart
	}
	return cart
}

func (s *MemoryCartStore) saveCartLocked(cart *models.Cart) {
	cart.Recalculate()
	cart.UpdatedAt = time.Now()
}

func cloneCart(cart *models.Cart) *models.Cart {
	c := *cart
	c.Items = append([]models.CartItem(nil), cart.Items...)
	return &c
}

// --- Commandes ---

type MemoryOrderStore struct {
	mu       sync.RWMutex
	orders   map[string]*models.Order
	orderIDs []string // ordre d'insertion, pour le tri created_at desc
}

func (s *MemoryOrderStore) FindAll(_ context.Context, filter OrderFilter, offset, limit int) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := s.matchLocked(filter)
	if offset >= len(matched) {
		return []models.Order{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *MemoryOrderStore) FindByID(_ context.Context, orderID string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, nil
	}
	return cloneOrder(order), nil
}

func (s *MemoryOrderStore) Count(_ context.Context, filter OrderFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matchLocked(filter)), nil
}

func (s *MemoryOrderStore) Create(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = cloneOrder(order)
	s.orderIDs = append(s.orderIDs, order.ID)
	return nil
}

func (s *MemoryOrderStore) UpdateStatus(_ context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, nil
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return cloneOrder(order), nil
}

// matchLocked retourne les commandes filtrées, plus récentes d'abord.
func (s *MemoryOrderStore) matchLocked(filter OrderFilter) []models.Order {
	matched := make([]models.Order, 0, len(s.orderIDs))
	for i := len(s.orderIDs) - 1; i >= 0; i-- {
		order := s.orders[s.orderIDs[i]]
		if filter.UserID != "" && order.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		matched = append(matched, *cloneOrder(order))
	}
	return matched
}

func cloneOrder(order *models.Order) *models.Order {
	o := *order
	o.Items = append([]models.OrderItem(nil), order.Items...)
	return &o
}

// --- Catalogue ---

type MemoryProductStore struct {
	mu         sync.RWMutex
	products   map[string]*models.Product
	productIDs []string
	movements  []models.StockMovement
}

func (s *MemoryProductStore) FindByID(_ context.Context, productID string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok || !p.IsActive {
		return nil, nil // invisible, pas une erreur
	}
	clone := *p
	return &clone, nil
}

func (s *MemoryProductStore) FindByIDAny(_ context.Context, productID string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (s *MemoryProductStore) FindAll(_ context.Context, includeInactive bool) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.productIDs))
	for _, id := range s.productIDs {
		p := s.products[id]
		if !includeInactive && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *MemoryProductStore) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *p
	s.products[p.ID] = &clone
	s.productIDs = append(s.productIDs, p.ID)
	return nil
}

func (s *MemoryProductStore) Update(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return nil
	}
	clone := *p
	s.products[p.ID] = &clone
	return nil
}

func (s *MemoryProductStore) Delete(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, productID)
	ids := s.productIDs[:0]
	for _, id := range s.productIDs {
		if id != productID {
			ids = append(ids, id)
		}
	}
	s.productIDs = ids
	return nil
}

func (s *MemoryProductStore) UpdateStock(_ context.Context, productID string, stock int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[productID]; ok {
		p.Stock = stock
		p.UpdatedAt = time.Now()
	}
	return nil
}

func (s *MemoryProductStore) RecordMovement(_ context.Context, m *models.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = append(s.movements, *m)
	return nil
}

func (s *MemoryProductStore) FindMovements(_ context.Context, productID string) ([]models.StockMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.StockMovement{}
	for i := len(s.movements) - 1; i >= 0; i-- {
		if s.movements[i].ProductID == productID {
			out = append(out, s.movements[i])
		}
	}
	return out, nil
}

// --- Utilisateurs ---

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (s *MemoryUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *u
	s.users[u.ID] = &clone
	return nil
}
