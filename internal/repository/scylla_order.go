package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/gocql/gocql"

	"mercato_back_end/internal/database"
	"mercato_back_end/internal/models"
)

// ScyllaOrderStore persiste les commandes dans le keyspace orders.
// Les lignes sont sérialisées en JSON dans la colonne items : une commande
// est un instantané immuable, inutile de normaliser.
type ScyllaOrderStore struct{}

func NewScyllaOrderStore() *ScyllaOrderStore {
	return &ScyllaOrderStore{}
}

// FindAll pagine côté client : CQL n'a pas d'OFFSET, on récupère les
// lignes filtrées puis on découpe. Acceptable pour les volumes de la démo.
func (s *ScyllaOrderStore) FindAll(ctx context.Context, filter OrderFilter, offset, limit int) ([]models.Order, error) {
	orders, err := s.fetchFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}
	if offset >= len(orders) {
		return []models.Order{}, nil
	}
	end := offset + limit
	if end > len(orders) {
		end = len(orders)
	}
	return orders[offset:end], nil
}

func (s *ScyllaOrderStore) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	uid, err := gocql.ParseUUID(orderID)
	if err != nil {
		return nil, nil
	}
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var (
		userID    string
		itemsJSON string
		order     models.Order
	)
	err = session.Query(`SELECT user_id, items, subtotal, tax, total_amount, status, created_at, updated_at
		FROM orders WHERE order_id = ?`, uid).WithContext(ctx).
		Scan(&userID, &itemsJSON, &order.Subtotal, &order.Tax, &order.TotalAmount,
			&order.Status, &order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	order.ID = orderID
	order.UserID = userID
	if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *ScyllaOrderStore) Count(ctx context.Context, filter OrderFilter) (int, error) {
	orders, err := s.fetchFiltered(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

func (s *ScyllaOrderStore) Create(ctx context.Context, order *models.Order) error {
	uid, err := gocql.ParseUUID(order.ID)
	if err != nil {
		return err
	}
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	return session.Query(`INSERT INTO orders
		(order_id, user_id, items, subtotal, tax, total_amount, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uid, order.UserID, string(itemsJSON), order.Subtotal, order.Tax,
		order.TotalAmount, string(order.Status), order.CreatedAt, order.UpdatedAt).
		WithContext(ctx).Exec()
}

func (s *ScyllaOrderStore) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	existing, err := s.FindByID(ctx, orderID)
	if err != nil || existing == nil {
		return nil, err
	}
	uid, err := gocql.ParseUUID(orderID)
	if err != nil {
		return nil, nil
	}
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	err = session.Query("UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?",
		string(status), time.Now(), uid).WithContext(ctx).Exec()
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, orderID)
}

func (s *ScyllaOrderStore) fetchFiltered(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	query := `SELECT order_id, user_id, items, subtotal, tax, total_amount, status, created_at, updated_at FROM orders`
	args := []interface{}{}
	switch {
	case filter.UserID != "" && filter.Status != "":
		query += " WHERE user_id = ? AND status = ? ALLOW FILTERING"
		args = append(args, filter.UserID, string(filter.Status))
	case filter.UserID != "":
		query += " WHERE user_id = ? ALLOW FILTERING"
		args = append(args, filter.UserID)
	case filter.Status != "":
		query += " WHERE status = ? ALLOW FILTERING"
		args = append(args, string(filter.Status))
	}

	iter := session.Query(query, args...).WithContext(ctx).Iter()
	defer iter.Close()

	orders := []models.Order{}
	var (
		id        gocql.UUID
		userID    string
		itemsJSON string
		order     models.Order
	)
	for iter.Scan(&id, &userID, &itemsJSON, &order.Subtotal, &order.Tax,
		&order.TotalAmount, &order.Status, &order.CreatedAt, &order.UpdatedAt) {
		order.ID = id.String()
		order.UserID = userID
		order.Items = nil
		if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}
