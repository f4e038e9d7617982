package repository

import (
	"context"
	"errors"
	"time"

	"github.com/gocql/gocql"

	"mercato_back_end/internal/cache"
	"mercato_back_end/internal/database"
	"mercato_back_end/internal/models"
)

// ScyllaProductStore lit et écrit le catalogue dans le keyspace products,
// avec un cache lecture Redis invalidé à chaque écriture.
type ScyllaProductStore struct{}

func NewScyllaProductStore() *ScyllaProductStore {
	return &ScyllaProductStore{}
}

const productColumns = "product_id, name, description, price, stock, low_stock_threshold, is_active, created_at, updated_at"

func scanProduct(scanner interface {
	Scan(...interface{}) error
}) (*models.Product, error) {
	var (
		id        gocql.UUID
		p         models.Product
		createdAt time.Time
		updatedAt time.Time
	)
	err := scanner.Scan(&id, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.LowStockThreshold, &p.IsActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	p.ID = id.String()
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return &p, nil
}

// FindByID ne retourne que les produits actifs : un produit dépublié est
// invisible pour le panier, comme pour le catalogue public.
func (s *ScyllaProductStore) FindByID(ctx context.Context, productID string) (*models.Product, error) {
	if p, ok := cache.GetProduct(ctx, productID); ok {
		if !p.IsActive {
			return nil, nil
		}
		return p, nil
	}
	p, err := s.FindByIDAny(ctx, productID)
	if err != nil || p == nil {
		return nil, err
	}
	cache.StoreProduct(ctx, p)
	if !p.IsActive {
		return nil, nil
	}
	return p, nil
}

func (s *ScyllaProductStore) FindByIDAny(ctx context.Context, productID string) (*models.Product, error) {
	uid, err := gocql.ParseUUID(productID)
	if err != nil {
		return nil, nil // identifiant mal formé = produit inexistant
	}
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}
	q := session.Query("SELECT "+productColumns+" FROM products WHERE product_id = ?", uid).WithContext(ctx)
	p, err := scanProduct(q)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ScyllaProductStore) FindAll(ctx context.Context, includeInactive bool) ([]models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query("SELECT " + productColumns + " FROM products").WithContext(ctx).Iter()
	defer iter.Close()

	products := []models.Product{}
	var (
		id        gocql.UUID
		p         models.Product
		createdAt time.Time
		updatedAt time.Time
	)
	for iter.Scan(&id, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.LowStockThreshold, &p.IsActive, &createdAt, &updatedAt) {
		if !includeInactive && !p.IsActive {
			continue
		}
		p.ID = id.String()
		p.CreatedAt = createdAt
		p.UpdatedAt = updatedAt
		products = append(products, p)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ScyllaProductStore) Create(ctx context.Context, p *models.Product) error {
	uid, err := gocql.ParseUUID(p.ID)
	if err != nil {
		return err
	}
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}
	return session.Query(`INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uid, p.Name, p.Description, p.Price, p.Stock,
		p.LowStockThreshold, p.IsActive, p.CreatedAt, p.UpdatedAt).
		WithContext(ctx).Exec()
}

func (s *ScyllaProductStore) Update(ctx context.Context, p *models.Product) error {
	uid, err := gocql.ParseUUID(p.ID)
	if err != nil {
		return err
	}
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}
	err = session.Query(`UPDATE products SET name = ?, description = ?, price = ?, stock = ?,
		low_stock_threshold = ?, is_active = ?, updated_at = ? WHERE product_id = ?`,
		p.Name, p.Description, p.Price, p.Stock,
		p.LowStockThreshold, p.IsActive, time.Now(), uid).
		WithContext(ctx).Exec()
	if err != nil {
		return err
	}
	cache.InvalidateProduct(ctx, p.ID)
	return nil
}

func (s *ScyllaProductStore) Delete(ctx context.Context, productID string) error {
	uid, err := gocql.ParseUUID(productID)
	if err != nil {
		return err
	}
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}
	if err := session.Query("DELETE FROM products WHERE product_id = ?", uid).WithContext(ctx).Exec(); err != nil {
		return err
	}
	cache.InvalidateProduct(ctx, productID)
	return nil
}

func (s *ScyllaProductStore) UpdateStock(ctx context.Context, productID string, stock int) error {
	uid, err := gocql.ParseUUID(productID)
	if err != nil {
		return err
	}
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}
	err = session.Query("UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ?",
		stock, time.Now(), uid).WithContext(ctx).Exec()
	if err != nil {
		return err
	}
	cache.InvalidateProduct(ctx, productID)
	return nil
}

func (s *ScyllaProductStore) RecordMovement(ctx context.Context, m *models.StockMovement) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}
	productUID, err := gocql.ParseUUID(m.ProductID)
	if err != nil {
		return err
	}
	// L'id persisté est celui du mouvement : l'appelant le renvoie au client.
	id, err := gocql.ParseUUID(m.ID)
	if err != nil {
		id = gocql.TimeUUID()
		m.ID = id.String()
	}
	return session.Query(`INSERT INTO stock_movements
		(id, product_id, type, quantity, prev_stock, new_stock, reason, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, productUID, m.Type, m.Quantity,
		m.PrevStock, m.NewStock, m.Reason, m.UserID, m.CreatedAt).
		WithContext(ctx).Exec()
}

func (s *ScyllaProductStore) FindMovements(ctx context.Context, productID string) ([]models.StockMovement, error) {
	uid, err := gocql.ParseUUID(productID)
	if err != nil {
		return []models.StockMovement{}, nil
	}
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT id, type, quantity, prev_stock, new_stock, reason, user_id, created_at
		FROM stock_movements WHERE product_id = ? ALLOW FILTERING`, uid).
		WithContext(ctx).Iter()
	defer iter.Close()

	movements := []models.StockMovement{}
	var (
		id        gocql.UUID
		m         models.StockMovement
		createdAt time.Time
	)
	for iter.Scan(&id, &m.Type, &m.Quantity, &m.PrevStock, &m.NewStock, &m.Reason, &m.UserID, &createdAt) {
		m.ID = id.String()
		m.ProductID = productID
		m.CreatedAt = createdAt
		movements = append(movements, m)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return movements, nil
}
