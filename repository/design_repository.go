package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"hypewear-studio/canvas"
	"hypewear-studio/db"
	"hypewear-studio/models"
)

// DesignRepository handles read access to finalized custom designs. Design
// rows are written inside the order transaction (see OrderRepository); a row
// exists only for submitted orders and deleting the order cascades to it
// (enforced by the schema).
type DesignRepository struct{}

// NewDesignRepository creates a new DesignRepository
func NewDesignRepository() *DesignRepository {
	return &DesignRepository{}
}

// Ensure DesignRepository implements DesignRepositoryInterface
var _ DesignRepositoryInterface = (*DesignRepository)(nil)

// List returns all finalized designs for the admin gallery, newest first
func (r *DesignRepository) List(ctx context.Context) ([]models.DesignListItem, error) {
	query := `
		SELECT id, order_id, base_color, size, created_at
		FROM custom_designs
		ORDER BY created_at DESC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}
	defer rows.Close()

	var designs []models.DesignListItem
	for rows.Next() {
		var d models.DesignListItem
		if err := rows.Scan(&d.ID, &d.OrderID, &d.BaseColor, &d.Size, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan design: %w", err)
		}
		designs = append(designs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate designs: %w", err)
	}

	return designs, nil
}

// GetByID returns one finalized design with its full element list. The repair
// pass runs on load so drifted rows from older writers render sanely.
func (r *DesignRepository) GetByID(ctx context.Context, id int64) (*models.CustomDesign, error) {
	query := `
		SELECT id, order_id, front_image_url, COALESCE(back_image_url, ''), base_color, size, COALESCE(notes, ''), design_state, created_at
		FROM custom_designs
		WHERE id = $1
	`

	var d models.CustomDesign
	var stateJSON []byte
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.OrderID, &d.FrontImageURL, &d.BackImageURL, &d.BaseColor, &d.Size, &d.Notes, &stateJSON, &d.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Resource: "design", ID: fmt.Sprintf("%d", id)}
		}
		return nil, fmt.Errorf("failed to fetch design: %w", err)
	}

	if err := json.Unmarshal(stateJSON, &d.Elements); err != nil {
		return nil, fmt.Errorf("failed to decode design state: %w", err)
	}
	canvas.Repair(d.Elements)

	return &d, nil
}
