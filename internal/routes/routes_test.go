package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercato_back_end/internal/handlers"
	adminhandlers "mercato_back_end/internal/handlers/admin"
	"mercato_back_end/internal/handlers/product"
	"mercato_back_end/internal/handlers/user"
	"mercato_back_end/internal/models"
	"mercato_back_end/internal/repository"
	"mercato_back_end/internal/services"
	"mercato_back_end/internal/utils"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	cartService := services.NewCartService(store.Products, store.Carts)
	checkoutService := services.NewCheckoutService(store.Carts, store.Orders)
	orderService := services.NewOrderService(store.Orders)

	r := gin.New()
	RegisterRoutes(r, Handlers{
		Auth:        &handlers.AuthHandler{Users: store.Users},
		Products:    &product.Handler{Products: store.Products},
		Cart:        &user.CartHandler{Carts: cartService},
		Checkout:    &user.CheckoutHandler{Checkout: checkoutService},
		Orders:      &user.OrderHandler{Orders: orderService},
		AdminOrders: &adminhandlers.OrderHandler{Orders: orderService},
	})
	return r
}

func bearerToken(t *testing.T, role models.Role) string {
	t.Helper()
	token, err := utils.GenerateJWT(models.User{
		ID:    "user-" + string(role),
		Email: string(role) + "@test.local",
		Role:  role,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthedRoutesRejectMissingToken(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRejectBuyer(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	req.Header.Set("Authorization", bearerToken(t, models.RoleBuyer))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRoutesAcceptAdmin(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	req.Header.Set("Authorization", bearerToken(t, models.RoleAdmin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPublicProductRoute(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
