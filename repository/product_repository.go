package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"hypewear-studio/db"
	"hypewear-studio/models"
)

// ProductRepository handles database operations for the standard product catalog
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

// List returns catalog products, optionally only active ones
func (r *ProductRepository) List(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	query := `
		SELECT id, sku, name, COALESCE(description, ''), price, COALESCE(image_url, ''), is_active, created_at
		FROM products
	`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ List: Error listing products: %v", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// GetByID returns one product by id
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `
		SELECT id, sku, name, COALESCE(description, ''), price, COALESCE(image_url, ''), is_active, created_at
		FROM products
		WHERE id = $1
	`

	var p models.Product
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Resource: "product", ID: fmt.Sprintf("%d", id)}
		}
		log.Printf("❌ GetByID: Error fetching product %d: %v", id, err)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	return &p, nil
}
