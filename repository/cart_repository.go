package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"hypewear-studio/db"
	"hypewear-studio/models"
)

// CartRepository handles database operations for carts and cart lines
type CartRepository struct{}

// NewCartRepository creates a new CartRepository
func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// Ensure CartRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartRepository)(nil)

// Create creates a new open cart
func (r *CartRepository) Create(ctx context.Context) (*models.Cart, error) {
	query := `
		INSERT INTO carts (status)
		VALUES ('open')
		RETURNING id, status, created_at, updated_at
	`

	var cart models.Cart
	err := db.DB.QueryRowContext(ctx, query).Scan(&cart.ID, &cart.Status, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		log.Printf("❌ Create: Error creating cart: %v", err)
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	log.Printf("✅ Create: cart id=%d created", cart.ID)
	return &cart, nil
}

// GetWithLines returns a cart with all its lines and the computed total.
// Custom design snapshots are unmarshaled from their JSONB column.
func (r *CartRepository) GetWithLines(ctx context.Context, id int64) (*models.CartResponse, error) {
	queryCart := `SELECT id, status, created_at, updated_at FROM carts WHERE id = $1`

	var resp models.CartResponse
	err := db.DB.QueryRowContext(ctx, queryCart, id).Scan(&resp.ID, &resp.Status, &resp.CreatedAt, &resp.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Resource: "cart", ID: fmt.Sprintf("%d", id)}
		}
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	queryLines := `
		SELECT l.id, l.cart_id, COALESCE(l.product_id, 0), l.qty, l.unit_price, l.created_at,
		       COALESCE(p.sku, ''), COALESCE(p.name, ''), l.custom_design
		FROM cart_lines l
		LEFT JOIN products p ON l.product_id = p.id
		WHERE l.cart_id = $1
		ORDER BY l.created_at, l.id
	`

	rows, err := db.DB.QueryContext(ctx, queryLines, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.CartLine
		var customJSON []byte
		if err := rows.Scan(&line.ID, &line.CartID, &line.ProductID, &line.Qty, &line.UnitPrice,
			&line.CreatedAt, &line.ProductSKU, &line.ProductName, &customJSON); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		if len(customJSON) > 0 {
			var design models.CartCustomDesign
			if err := json.Unmarshal(customJSON, &design); err != nil {
				return nil, fmt.Errorf("failed to decode custom design on line %d: %w", line.ID, err)
			}
			line.CustomDesign = &design
		}
		resp.Lines = append(resp.Lines, line)
		resp.Total += int64(line.Qty) * line.UnitPrice
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}

	return &resp, nil
}

// AddStandardLine adds a priced product line; the unit price is frozen from
// the product at add time. Adding the same product again increases qty.
func (r *CartRepository) AddStandardLine(ctx context.Context, cartID int64, product *models.Product, qty int) (*models.CartLine, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("qty must be greater than 0")
	}

	query := `
		INSERT INTO cart_lines (cart_id, product_id, qty, unit_price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET qty = cart_lines.qty + EXCLUDED.qty
		RETURNING id, cart_id, product_id, qty, unit_price, created_at
	`

	var line models.CartLine
	err := db.DB.QueryRowContext(ctx, query, cartID, product.ID, qty, product.Price).Scan(
		&line.ID, &line.CartID, &line.ProductID, &line.Qty, &line.UnitPrice, &line.CreatedAt,
	)
	if err != nil {
		log.Printf("❌ AddStandardLine: Error adding product %d to cart %d: %v", product.ID, cartID, err)
		return nil, fmt.Errorf("failed to add cart line: %w", err)
	}

	line.ProductSKU = product.SKU
	line.ProductName = product.Name
	log.Printf("✅ AddStandardLine: cart=%d product=%d qty=%d", cartID, product.ID, line.Qty)
	return &line, nil
}

// AddCustomLine adds the custom design line. Custom items are unpriced
// pending manual quotation, so unit_price is always 0.
func (r *CartRepository) AddCustomLine(ctx context.Context, cartID int64, design *models.CartCustomDesign) (*models.CartLine, error) {
	designJSON, err := json.Marshal(design)
	if err != nil {
		return nil, fmt.Errorf("failed to encode custom design: %w", err)
	}

	query := `
		INSERT INTO cart_lines (cart_id, qty, unit_price, custom_design)
		VALUES ($1, 1, 0, $2)
		RETURNING id, cart_id, qty, unit_price, created_at
	`

	var line models.CartLine
	err = db.DB.QueryRowContext(ctx, query, cartID, designJSON).Scan(
		&line.ID, &line.CartID, &line.Qty, &line.UnitPrice, &line.CreatedAt,
	)
	if err != nil {
		log.Printf("❌ AddCustomLine: Error adding custom design to cart %d: %v", cartID, err)
		return nil, fmt.Errorf("failed to add custom design line: %w", err)
	}

	line.CustomDesign = design
	log.Printf("✅ AddCustomLine: cart=%d line=%d", cartID, line.ID)
	return &line, nil
}

// RemoveLine removes one line from a cart
func (r *CartRepository) RemoveLine(ctx context.Context, cartID, lineID int64) error {
	res, err := db.DB.ExecContext(ctx, `DELETE FROM cart_lines WHERE cart_id = $1 AND id = $2`, cartID, lineID)
	if err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return &models.NotFoundError{Resource: "cart line", ID: fmt.Sprintf("%d", lineID)}
	}
	return nil
}

// Clear removes every line from a cart
func (r *CartRepository) Clear(ctx context.Context, cartID int64) error {
	if _, err := db.DB.ExecContext(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	log.Printf("🧹 Clear: cart=%d emptied", cartID)
	return nil
}

// MarkOrdered flips a cart to ordered after successful checkout
func (r *CartRepository) MarkOrdered(ctx context.Context, cartID int64) error {
	res, err := db.DB.ExecContext(ctx,
		`UPDATE carts SET status = 'ordered', updated_at = now() WHERE id = $1 AND status = 'open'`, cartID)
	if err != nil {
		return fmt.Errorf("failed to mark cart ordered: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return &models.NotFoundError{Resource: "open cart", ID: fmt.Sprintf("%d", cartID)}
	}
	return nil
}
