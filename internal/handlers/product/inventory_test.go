package product

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercato_back_end/internal/models"
	"mercato_back_end/internal/repository"
)

func newInventoryRouter(t *testing.T) (*gin.Engine, *repository.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	h := &Handler{Products: store.Products}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		// Identité admin déjà résolue, comme après le middleware JWT
		c.Set("user_id", "admin-1")
		c.Set("email", "admin@test.local")
		c.Set("role", "admin")
	})
	r.PATCH("/products/:id/stock", h.UpdateStock)
	r.GET("/products/:id/movements", h.GetStockMovements)
	return r, store
}

func patchStock(t *testing.T, r *gin.Engine, productID string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, "/products/"+productID+"/stock", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateStockReturnsPersistedMovementID(t *testing.T) {
	r, store := newInventoryRouter(t)
	p := models.Product{ID: "p1", Name: "Produit", Stock: 5, LowStockThreshold: 0, IsActive: true}
	require.NoError(t, store.Products.Create(context.Background(), &p))

	w := patchStock(t, r, "p1", map[string]interface{}{
		"quantity": 10, "reason": "réassort fournisseur", "type": "restock",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		PrevStock  int    `json:"prev_stock"`
		NewStock   int    `json:"new_stock"`
		MovementID string `json:"movement_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.PrevStock)
	assert.Equal(t, 15, resp.NewStock)
	require.NotEmpty(t, resp.MovementID)

	// L'id annoncé au client correspond à un mouvement persisté
	movements, err := store.Products.FindMovements(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, resp.MovementID, movements[0].ID)
	assert.Equal(t, "admin-1", movements[0].UserID)
	assert.Equal(t, 5, movements[0].PrevStock)
	assert.Equal(t, 15, movements[0].NewStock)
}

func TestUpdateStockAdjustmentIsAbsolute(t *testing.T) {
	r, store := newInventoryRouter(t)
	p := models.Product{ID: "p1", Name: "Produit", Stock: 20, IsActive: true}
	require.NoError(t, store.Products.Create(context.Background(), &p))

	w := patchStock(t, r, "p1", map[string]interface{}{
		"quantity": 7, "reason": "inventaire", "type": "adjustment",
	})
	require.Equal(t, http.StatusOK, w.Code)

	got, err := store.Products.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)
}

func TestUpdateStockRejectsNegativeResult(t *testing.T) {
	r, store := newInventoryRouter(t)
	p := models.Product{ID: "p1", Name: "Produit", Stock: 3, IsActive: true}
	require.NoError(t, store.Products.Create(context.Background(), &p))

	w := patchStock(t, r, "p1", map[string]interface{}{
		"quantity": -5, "reason": "casse", "type": "restock",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// aucun mouvement enregistré
	movements, err := store.Products.FindMovements(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestUpdateStockUnknownType(t *testing.T) {
	r, store := newInventoryRouter(t)
	p := models.Product{ID: "p1", Name: "Produit", Stock: 3, IsActive: true}
	require.NoError(t, store.Products.Create(context.Background(), &p))

	w := patchStock(t, r, "p1", map[string]interface{}{
		"quantity": 1, "reason": "?", "type": "transfert",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
