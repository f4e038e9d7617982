package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"mercato_back_end/internal/models"
	"mercato_back_end/internal/repository"
)

// TVA de la démo : 10%, arrondie à l'inférieur (division entière sur des
// centimes, jamais de float).
const taxDivisor = 10

// CheckoutService transforme le panier d'un acheteur en commande immuable
// puis vide le panier.
type CheckoutService struct {
	carts  repository.CartFetcher
	orders repository.OrderRepository
}

func NewCheckoutService(carts repository.CartFetcher, orders repository.OrderRepository) *CheckoutService {
	return &CheckoutService{carts: carts, orders: orders}
}

// CreateOrder lit le panier, calcule les montants, persiste la commande en
// "pending" puis vide le panier.
//
// La séquence n'est pas transactionnelle (Redis + ScyllaDB, pas de
// transaction commune) : si la persistance échoue, le panier est conservé
// intact ; si le vidage échoue après persistance, la commande existe, le
// vidage est retenté une fois puis l'échec journalisé.
func (s *CheckoutService) CreateOrder(ctx context.Context, caller models.Identity) (*models.Order, error) {
	if err := requireBuyer(caller); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// Instantané des lignes : pas de relecture du catalogue, le cliché
	// du panier fait foi au moment du checkout.
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	subtotal := cart.Subtotal
	tax := subtotal / taxDivisor
	now := time.Now()
	order := &models.Order{
		ID:          uuid.NewString(),
		UserID:      caller.UserID,
		Items:       items,
		Subtotal:    subtotal,
		Tax:         tax,
		TotalAmount: subtotal + tax,
		Status:      models.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err // le panier n'est pas touché
	}

	if err := s.carts.Clear(ctx, caller.UserID); err != nil {
		log.Printf("⚠️ Vidage du panier échoué pour %s: %v — nouvelle tentative", caller.UserID, err)
		if err := s.carts.Clear(ctx, caller.UserID); err != nil {
			log.Printf("⚠️ Vidage du panier toujours en échec pour %s (commande %s créée): %v",
				caller.UserID, order.ID, err)
		}
	}

	return order, nil
}
