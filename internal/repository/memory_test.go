package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercato_back_end/internal/models"
)

func TestMemoryCartStoreDerivedFields(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	cart, err := store.Carts.Create(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	cart, err = store.Carts.AddItem(ctx, "u1", models.CartItem{
		ProductID: "p1", Name: "Produit", Price: 1500, Quantity: 2, AddedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), cart.Subtotal)
	assert.Equal(t, 2, cart.ItemCount)

	cart, err = store.Carts.AddItem(ctx, "u1", models.CartItem{
		ProductID: "p2", Name: "Autre", Price: 500, Quantity: 1, AddedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3500), cart.Subtotal)
	assert.Equal(t, 3, cart.ItemCount)
}

func TestMemoryCartStoreMergesSameProduct(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	item := models.CartItem{ProductID: "p1", Name: "Produit", Price: 1000, Quantity: 1}

	_, err := store.Carts.AddItem(ctx, "u1", item)
	require.NoError(t, err)
	cart, err := store.Carts.AddItem(ctx, "u1", item)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestMemoryCartStoreClearKeepsCart(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.Carts.AddItem(ctx, "u1", models.CartItem{ProductID: "p1", Price: 1000, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, store.Carts.Clear(ctx, "u1"))

	cart, err := store.Carts.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, created.ID, cart.ID) // même panier, vidé
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Subtotal)

	// Clear sans panier : pas d'erreur
	assert.NoError(t, store.Carts.Clear(ctx, "inconnu"))
}

func TestMemoryCartStoreReturnsClones(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	cart, err := store.Carts.AddItem(ctx, "u1", models.CartItem{ProductID: "p1", Price: 1000, Quantity: 1})
	require.NoError(t, err)

	// muter le retour ne doit pas toucher l'état interne
	cart.Items[0].Quantity = 99

	fresh, err := store.Carts.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Items[0].Quantity)
}

func TestMemoryCartStoreMissingCart(t *testing.T) {
	store := NewMemoryStore()

	cart, err := store.Carts.FindByUserID(context.Background(), "inconnu")

	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestMemoryOrderStoreFilterAndOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i, spec := range []struct {
		id     string
		user   string
		status models.OrderStatus
	}{
		{"o1", "u1", models.OrderStatusPending},
		{"o2", "u2", models.OrderStatusPending},
		{"o3", "u1", models.OrderStatusConfirmed},
	} {
		now := time.Now().Add(time.Duration(i) * time.Millisecond)
		require.NoError(t, store.Orders.Create(ctx, &models.Order{
			ID: spec.id, UserID: spec.user, Status: spec.status, CreatedAt: now, UpdatedAt: now,
		}))
	}

	orders, err := store.Orders.FindAll(ctx, OrderFilter{UserID: "u1"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o3", orders[0].ID) // plus récent d'abord
	assert.Equal(t, "o1", orders[1].ID)

	orders, err = store.Orders.FindAll(ctx, OrderFilter{UserID: "u1", Status: models.OrderStatusPending}, 0, 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)

	count, err := store.Orders.Count(ctx, OrderFilter{Status: models.OrderStatusPending})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// offset au-delà de la fin : vide, pas de panic
	orders, err = store.Orders.FindAll(ctx, OrderFilter{}, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestMemoryOrderStoreUpdateStatus(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Orders.Create(ctx, &models.Order{ID: "o1", UserID: "u1", Status: models.OrderStatusPending}))

	updated, err := store.Orders.UpdateStatus(ctx, "o1", models.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, updated.Status)

	missing, err := store.Orders.UpdateStatus(ctx, "absent", models.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryProductStoreVisibility(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Products.Create(ctx, &models.Product{ID: "p1", Name: "Actif", IsActive: true}))
	require.NoError(t, store.Products.Create(ctx, &models.Product{ID: "p2", Name: "Inactif", IsActive: false}))

	// vue publique : l'inactif est invisible
	p, err := store.Products.FindByID(ctx, "p2")
	require.NoError(t, err)
	assert.Nil(t, p)

	// vue admin : visible
	p, err = store.Products.FindByIDAny(ctx, "p2")
	require.NoError(t, err)
	require.NotNil(t, p)

	visible, err := store.Products.FindAll(ctx, false)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	all, err := store.Products.FindAll(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryProductStoreMovements(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Products.Create(ctx, &models.Product{ID: "p1", Stock: 5, IsActive: true}))

	require.NoError(t, store.Products.UpdateStock(ctx, "p1", 15))
	require.NoError(t, store.Products.RecordMovement(ctx, &models.StockMovement{
		ID: "m1", ProductID: "p1", Type: "restock", Quantity: 10, PrevStock: 5, NewStock: 15,
	}))
	require.NoError(t, store.Products.RecordMovement(ctx, &models.StockMovement{
		ID: "m2", ProductID: "p1", Type: "adjustment", Quantity: 12, PrevStock: 15, NewStock: 12,
	}))

	p, err := store.Products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 15, p.Stock)

	movements, err := store.Products.FindMovements(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, "m2", movements[0].ID) // plus récent d'abord

	none, err := store.Products.FindMovements(ctx, "autre")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryUserStoreEmailLookup(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Users.Create(ctx, &models.User{
		ID: "u1", Email: "Jean@Example.com", Role: models.RoleBuyer,
	}))

	u, err := store.Users.FindByEmail(ctx, "jean@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	u, err = store.Users.FindByEmail(ctx, "absent@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}
