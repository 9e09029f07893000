package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"hypewear-studio/canvas"
	"hypewear-studio/models"
	"hypewear-studio/repository"
)

// previewSize is the pixel size of the preview snapshots rendered at cart
// packaging. Snapshots are display artifacts only; every later surface
// re-renders from the stored percentage model, so this size carries no
// fidelity weight.
const previewSize = 600

// CartService packages finished designs into cart line items, enforces the
// standard/custom exclusivity rule, and orchestrates checkout: finalization
// uploads first, then the order and its design in one transaction.
type CartService struct {
	carts     repository.CartRepositoryInterface
	products  repository.ProductRepositoryInterface
	orders    repository.OrderRepositoryInterface
	studio    *StudioService
	renderer  DesignRendererInterface
	finalizer FinalizeServiceInterface
}

// NewCartService creates a new CartService
func NewCartService(
	carts repository.CartRepositoryInterface,
	products repository.ProductRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	studio *StudioService,
	renderer DesignRendererInterface,
	finalizer FinalizeServiceInterface,
) *CartService {
	return &CartService{
		carts:     carts,
		products:  products,
		orders:    orders,
		studio:    studio,
		renderer:  renderer,
		finalizer: finalizer,
	}
}

// AddStandardItem adds a priced catalog product to the cart. Rejected with a
// ConflictError if the cart already holds a custom design.
func (s *CartService) AddStandardItem(ctx context.Context, cartID int64, req *models.AddCartItemRequest) (*models.CartLine, error) {
	if req.Qty <= 0 {
		return nil, &models.ValidationError{Field: "qty", Reason: "must be greater than 0"}
	}

	cart, err := s.carts.GetWithLines(ctx, cartID)
	if err != nil {
		return nil, err
	}
	for _, line := range cart.Lines {
		if line.IsCustom() {
			log.Printf("⛔ AddStandardItem: cart %d blocked by custom design line", cartID)
			return nil, &models.ConflictError{Blocking: "custom"}
		}
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, &models.ValidationError{Field: "productId", Reason: "product is not available"}
	}

	return s.carts.AddStandardLine(ctx, cartID, product, req.Qty)
}

// AddCustomDesign packages a studio session into the cart: snapshots the
// design state (copied, not referenced), renders the front preview and, if
// back elements exist, the back preview, and stores the line at price 0
// pending manual quotation. Rejected with a ConflictError if the cart holds
// standard items or another custom design.
func (s *CartService) AddCustomDesign(ctx context.Context, cartID int64, req *models.AddCustomDesignRequest) (*models.CartLine, error) {
	if strings.TrimSpace(req.BaseColor) == "" {
		return nil, &models.ValidationError{Field: "baseColor", Reason: "base color selection is required"}
	}
	if strings.TrimSpace(req.Size) == "" {
		return nil, &models.ValidationError{Field: "size", Reason: "size selection is required"}
	}

	cart, err := s.carts.GetWithLines(ctx, cartID)
	if err != nil {
		return nil, err
	}
	for _, line := range cart.Lines {
		if line.IsCustom() {
			log.Printf("⛔ AddCustomDesign: cart %d already holds a custom design", cartID)
			return nil, &models.ConflictError{Blocking: "custom"}
		}
		if line.UnitPrice > 0 {
			log.Printf("⛔ AddCustomDesign: cart %d blocked by standard items", cartID)
			return nil, &models.ConflictError{Blocking: "standard"}
		}
	}

	snapshot, err := s.studio.Snapshot(req.SessionID)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Elements) == 0 {
		return nil, &models.ValidationError{Field: "sessionId", Reason: "design has no elements"}
	}

	snapshot.BaseColor = req.BaseColor
	snapshot.Size = req.Size
	snapshot.Notes = req.Notes
	canvas.Repair(snapshot.Elements)

	frontPNG, err := s.renderer.RenderPNG(snapshot, false, previewSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render front preview: %w", err)
	}

	design := &models.CartCustomDesign{
		Design:       *snapshot,
		FrontPreview: pngDataURI(frontPNG),
	}
	if snapshot.HasElementsOnSide(models.SideBack) {
		backPNG, err := s.renderer.RenderPNG(snapshot, true, previewSize)
		if err != nil {
			return nil, fmt.Errorf("failed to render back preview: %w", err)
		}
		design.BackPreview = pngDataURI(backPNG)
	}

	return s.carts.AddCustomLine(ctx, cartID, design)
}

// Checkout submits the cart as an order. When the cart carries a custom
// design, finalization uploads run first; any upload failure aborts the whole
// submission with the cart preserved for retry, so no partial design is ever
// persisted. The order and its design commit in a single transaction, so a
// failure there also leaves the cart intact with nothing written. Totals are
// in atomic currency units.
func (s *CartService) Checkout(ctx context.Context, cartID int64, req *models.CheckoutRequest) (*models.OrderResponse, error) {
	cart, err := s.carts.GetWithLines(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.Status != "open" {
		return nil, &models.ValidationError{Field: "cartId", Reason: "cart is not open"}
	}
	if len(cart.Lines) == 0 {
		return nil, &models.ValidationError{Field: "cartId", Reason: "cart is empty"}
	}

	var customLine *models.CartLine
	for i := range cart.Lines {
		if cart.Lines[i].IsCustom() {
			customLine = &cart.Lines[i]
			break
		}
	}

	var finalized *models.CustomDesign
	if customLine != nil {
		finalized, err = s.finalizer.FinalizeDesign(ctx, customLine.CustomDesign)
		if err != nil {
			log.Printf("❌ Checkout: finalization failed for cart %d: %v", cartID, err)
			return nil, err
		}
	}

	customer := models.CustomerInfo{Name: req.CustomerName, Phone: req.CustomerPhone, Notes: req.Notes}
	order, attached, err := s.orders.CreateOrder(ctx, customer, cart.Lines, finalized)
	if err != nil {
		log.Printf("❌ Checkout: order submission failed for cart %d, nothing persisted: %v", cartID, err)
		return nil, err
	}

	resp := &models.OrderResponse{Order: *order}
	if attached != nil {
		resp.DesignID = attached.ID
	}

	if err := s.carts.MarkOrdered(ctx, cartID); err != nil {
		// Order and design are already committed; surface the inconsistency
		// but do not fail the submission.
		log.Printf("⚠️  Checkout: order %d created but cart %d not marked ordered: %v", order.ID, cartID, err)
	}

	return resp, nil
}

// pngDataURI wraps PNG bytes as an inline data URI
func pngDataURI(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
