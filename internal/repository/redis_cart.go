package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"mercato_back_end/internal/models"
)

const CartTTL = 30 * 24 * time.Hour // 30 jours

// RedisCartStore persiste le panier complet en JSON sous cart:<userID>
// et publie sur le canal du même nom à chaque mutation (sync temps réel
// via WebSocket côté handlers).
type RedisCartStore struct {
	rdb *redis.Client
}

func NewRedisCartStore(rdb *redis.Client) *RedisCartStore {
	return &RedisCartStore{rdb: rdb}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

func (s *RedisCartStore) FindByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	data, err := s.rdb.Get(ctx, cartKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *RedisCartStore) Create(ctx context.Context, userID string) (*models.Cart, error) {
	if cart, err := s.FindByUserID(ctx, userID); err != nil || cart != nil {
		return cart, err
	}
	now := time.Now()
	cart := &models.Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.save(ctx, cart, "updated"); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *RedisCartStore) AddItem(ctx context.Context, userID string, item models.CartItem) (*models.Cart, error) {
	cart, err := s.loadOrNew(ctx, userID)
	if err != nil {
		return nil, err
	}
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
	if err := s.save(ctx, cart, "updated"); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *RedisCartStore) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	cart, err := s.loadOrNew(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			break
		}
	}
	if err := s.save(ctx, cart, "updated"); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *RedisCartStore) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	cart, err := s.loadOrNew(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
	if err := s.save(ctx, cart, "updated"); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *RedisCartStore) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	return s.FindByUserID(ctx, userID)
}

// Clear vide le panier : items supprimés, le panier lui-même est conservé.
func (s *RedisCartStore) Clear(ctx context.Context, userID string) error {
	cart, err := s.loadOrNew(ctx, userID)
	if err != nil {
		return err
	}
	cart.Items = nil
	return s.save(ctx, cart, "cleared")
}

func (s *RedisCartStore) loadOrNew(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		now := time.Now()
		cart = &models.Cart{ID: uuid.NewString(), UserID: userID, CreatedAt: now, UpdatedAt: now}
	}
	return cart, nil
}

// save recalcule les champs dérivés puis écrit et publie en pipeline :
// le panier persisté ne diverge jamais de ses items.
func (s *RedisCartStore) save(ctx context.Context, cart *models.Cart, event string) error {
	cart.Recalculate()
	cart.UpdatedAt = time.Now()

	jsonData, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, cartKey(cart.UserID), jsonData, CartTTL)
	pipe.Publish(ctx, cartKey(cart.UserID), event)
	_, err = pipe.Exec(ctx)
	return err
}
