package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"hypewear-studio/db"
	"hypewear-studio/models"
)

// OrderRepository handles database operations for submitted orders
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// CreateOrder creates the order, its lines and, when the cart carried a
// custom design, the finalized design row, all in one transaction: a failure
// at any step rolls everything back so no submitted order exists without its
// design. Returns the order with the computed total in atomic currency units
// (custom lines contribute 0 pending manual quotation) and the persisted
// design (nil when none was supplied).
func (r *OrderRepository) CreateOrder(ctx context.Context, customer models.CustomerInfo, lines []models.CartLine, design *models.CustomDesign) (*models.Order, *models.CustomDesign, error) {
	if strings.TrimSpace(customer.Name) == "" {
		return nil, nil, &models.ValidationError{Field: "customerName", Reason: "cannot be empty"}
	}
	if len(lines) == 0 {
		return nil, nil, &models.ValidationError{Field: "lines", Reason: "cart is empty"}
	}

	log.Printf("📦 CreateOrder: creating order for %s with %d line(s)", customer.Name, len(lines))

	var total int64
	for _, line := range lines {
		total += int64(line.Qty) * line.UnitPrice
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	queryOrder := `
		INSERT INTO orders (status, customer_name, customer_phone, notes, total)
		VALUES ('submitted', $1, $2, $3, $4)
		RETURNING id, status, customer_name, customer_phone, notes, total, created_at
	`

	var order models.Order
	var phone, notes sql.NullString
	err = tx.QueryRowContext(ctx, queryOrder,
		customer.Name,
		sql.NullString{String: customer.Phone, Valid: customer.Phone != ""},
		sql.NullString{String: customer.Notes, Valid: customer.Notes != ""},
		total,
	).Scan(&order.ID, &order.Status, &order.CustomerName, &phone, &notes, &order.Total, &order.CreatedAt)
	if err != nil {
		log.Printf("❌ CreateOrder: Error inserting order: %v", err)
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}
	if phone.Valid {
		order.CustomerPhone = phone.String
	}
	if notes.Valid {
		order.Notes = notes.String
	}

	queryLine := `
		INSERT INTO order_lines (order_id, product_id, qty, unit_price)
		VALUES ($1, $2, $3, $4)
	`
	for _, line := range lines {
		var productID interface{}
		if line.ProductID != 0 {
			productID = line.ProductID
		}
		if _, err := tx.ExecContext(ctx, queryLine, order.ID, productID, line.Qty, line.UnitPrice); err != nil {
			log.Printf("❌ CreateOrder: Error inserting order line: %v", err)
			return nil, nil, fmt.Errorf("failed to create order line: %w", err)
		}
	}

	var attached *models.CustomDesign
	if design != nil {
		attached, err = insertDesign(ctx, tx, order.ID, design)
		if err != nil {
			log.Printf("❌ CreateOrder: Error persisting design: %v", err)
			return nil, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit order: %w", err)
	}

	log.Printf("✅ CreateOrder: order id=%d total=%d created", order.ID, order.Total)
	return &order, attached, nil
}

// insertDesign persists the finalized design inside the order transaction.
// All contents must already be hosted URLs (finalization runs before any
// database write).
func insertDesign(ctx context.Context, tx *sql.Tx, orderID int64, design *models.CustomDesign) (*models.CustomDesign, error) {
	stateJSON, err := json.Marshal(design.Elements)
	if err != nil {
		return nil, fmt.Errorf("failed to encode design state: %w", err)
	}

	query := `
		INSERT INTO custom_designs (order_id, front_image_url, back_image_url, base_color, size, notes, design_state)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	attached := *design
	attached.OrderID = orderID
	err = tx.QueryRowContext(ctx, query,
		orderID,
		design.FrontImageURL,
		sql.NullString{String: design.BackImageURL, Valid: design.BackImageURL != ""},
		design.BaseColor,
		design.Size,
		sql.NullString{String: design.Notes, Valid: design.Notes != ""},
		stateJSON,
	).Scan(&attached.ID, &attached.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to persist design: %w", err)
	}
	return &attached, nil
}
