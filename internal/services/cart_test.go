package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercato_back_end/internal/models"
	"mercato_back_end/internal/repository"
)

var (
	buyer      = models.Identity{UserID: "buyer-1", Email: "buyer@test.local", Role: models.RoleBuyer}
	otherBuyer = models.Identity{UserID: "buyer-2", Email: "other@test.local", Role: models.RoleBuyer}
	admin      = models.Identity{UserID: "admin-1", Email: "admin@test.local", Role: models.RoleAdmin}
)

func newCartFixture(t *testing.T, products ...models.Product) (*CartService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	for i := range products {
		require.NoError(t, store.Products.Create(context.Background(), &products[i]))
	}
	return NewCartService(store.Products, store.Carts), store
}

func activeProduct(id string, price int64, stock int) models.Product {
	now := time.Now()
	return models.Product{
		ID: id, Name: "Produit " + id, Price: price, Stock: stock,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
}

func TestGetOrCreateReturnsEmptyCart(t *testing.T) {
	svc, _ := newCartFixture(t)

	cart, err := svc.GetOrCreate(context.Background(), buyer)

	require.NoError(t, err)
	assert.Equal(t, buyer.UserID, cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Subtotal)
	assert.Zero(t, cart.ItemCount)
}

func TestGetOrCreateRejectsAdmin(t *testing.T) {
	svc, _ := newCartFixture(t)

	_, err := svc.GetOrCreate(context.Background(), admin)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := newCartFixture(t)

	_, err := svc.AddItem(context.Background(), buyer, "missing", 1)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddItemInactiveProduct(t *testing.T) {
	p := activeProduct("p1", 1000, 5)
	p.IsActive = false
	svc, _ := newCartFixture(t, p)

	_, err := svc.AddItem(context.Background(), buyer, "p1", 1)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddItemMergesQuantities(t *testing.T) {
	svc, _ := newCartFixture(t, activeProduct("p1", 4980, 10))

	_, err := svc.AddItem(context.Background(), buyer, "p1", 2)
	require.NoError(t, err)
	cart, err := svc.AddItem(context.Background(), buyer, "p1", 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, int64(24900), cart.Subtotal)
	assert.Equal(t, 5, cart.ItemCount)
}

func TestAddItemStockBoundary(t *testing.T) {
	svc, _ := newCartFixture(t, activeProduct("p1", 1000, 5))

	_, err := svc.AddItem(context.Background(), buyer, "p1", 3)
	require.NoError(t, err)

	// existant + demandé == stock : l'égalité passe
	cart, err := svc.AddItem(context.Background(), buyer, "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// un de plus : refusé, avec le détail du conflit
	_, err = svc.AddItem(context.Background(), buyer, "p1", 1)
	var conflict *StockConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "p1", conflict.ProductID)
	assert.Equal(t, 6, conflict.Requested)
	assert.Equal(t, 5, conflict.Available)
}

func TestAddItemSnapshotsPriceAndName(t *testing.T) {
	svc, store := newCartFixture(t, activeProduct("p1", 1000, 5))

	_, err := svc.AddItem(context.Background(), buyer, "p1", 1)
	require.NoError(t, err)

	// Le catalogue change après l'ajout : la ligne garde son cliché.
	updated := activeProduct("p1", 9999, 5)
	updated.Name = "Produit renommé"
	require.NoError(t, store.Products.Update(context.Background(), &updated))

	cart, err := svc.GetOrCreate(context.Background(), buyer)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), cart.Items[0].Price)
	assert.Equal(t, "Produit p1", cart.Items[0].Name)
}

func TestUpdateItemQuantityReplaces(t *testing.T) {
	svc, _ := newCartFixture(t, activeProduct("p1", 1000, 10))

	_, err := svc.AddItem(context.Background(), buyer, "p1", 4)
	require.NoError(t, err)

	cart, err := svc.UpdateItemQuantity(context.Background(), buyer, "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, int64(2000), cart.Subtotal)
}

func TestUpdateItemQuantityAbsentLine(t *testing.T) {
	svc, _ := newCartFixture(t, activeProduct("p1", 1000, 10))

	_, err := svc.UpdateItemQuantity(context.Background(), buyer, "p1", 2)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateItemQuantityStockConflict(t *testing.T) {
	svc, _ := newCartFixture(t, activeProduct("p1", 1000, 3))

	_, err := svc.AddItem(context.Background(), buyer, "p1", 2)
	require.NoError(t, err)

	_, err = svc.UpdateItemQuantity(context.Background(), buyer, "p1", 4)
	var conflict *StockConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 4, conflict.Requested)
	assert.Equal(t, 3, conflict.Available)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	svc, _ := newCartFixture(t, activeProduct("p1", 1000, 10))

	_, err := svc.AddItem(context.Background(), buyer, "p1", 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), buyer, "p1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	cart, err = svc.RemoveItem(context.Background(), buyer, "p1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Subtotal)
}

func TestCartsAreIsolatedPerBuyer(t *testing.T) {
	svc, _ := newCartFixture(t, activeProduct("p1", 1000, 10))

	_, err := svc.AddItem(context.Background(), buyer, "p1", 2)
	require.NoError(t, err)

	cart, err := svc.GetOrCreate(context.Background(), otherBuyer)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestConcurrentAddsNeverOversell(t *testing.T) {
	const stock = 10
	svc, _ := newCartFixture(t, activeProduct("p1", 1000, stock))

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.AddItem(context.Background(), buyer, "p1", 1)
		}()
	}
	wg.Wait()

	cart, err := svc.GetOrCreate(context.Background(), buyer)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, stock, cart.Items[0].Quantity)
}
