package repository

import (
	"context"

	"hypewear-studio/models"
)

// ProductRepositoryInterface defines the contract for product catalog operations
type ProductRepositoryInterface interface {
	List(ctx context.Context, activeOnly bool) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

// CartRepositoryInterface defines the contract for cart persistence
type CartRepositoryInterface interface {
	Create(ctx context.Context) (*models.Cart, error)
	GetWithLines(ctx context.Context, id int64) (*models.CartResponse, error)
	AddStandardLine(ctx context.Context, cartID int64, product *models.Product, qty int) (*models.CartLine, error)
	AddCustomLine(ctx context.Context, cartID int64, design *models.CartCustomDesign) (*models.CartLine, error)
	RemoveLine(ctx context.Context, cartID, lineID int64) error
	Clear(ctx context.Context, cartID int64) error
	MarkOrdered(ctx context.Context, cartID int64) error
}

// OrderRepositoryInterface defines the contract for order persistence.
// The order, its lines and the finalized design (when present) commit in one
// transaction so a submitted order can never exist without its design row.
type OrderRepositoryInterface interface {
	CreateOrder(ctx context.Context, customer models.CustomerInfo, lines []models.CartLine, design *models.CustomDesign) (*models.Order, *models.CustomDesign, error)
}

// DesignRepositoryInterface defines the contract for reading persisted custom
// designs (writes happen inside the order transaction)
type DesignRepositoryInterface interface {
	List(ctx context.Context) ([]models.DesignListItem, error)
	GetByID(ctx context.Context, id int64) (*models.CustomDesign, error)
}
