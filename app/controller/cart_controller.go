package controller

import (
	"context"
	"net/http"

	"hypewear-studio/models"
	"hypewear-studio/repository"
	"hypewear-studio/service"
)

// CartController handles HTTP requests for carts and checkout
type CartController struct {
	carts       repository.CartRepositoryInterface
	cartService *service.CartService
}

// NewCartController creates a new CartController
func NewCartController(carts repository.CartRepositoryInterface, cartService *service.CartService) *CartController {
	return &CartController{
		carts:       carts,
		cartService: cartService,
	}
}

// CreateCart handles POST /carts
func (c *CartController) CreateCart(w http.ResponseWriter, r *http.Request) {
	cart, err := c.carts.Create(context.Background())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cart)
}

// GetCart handles GET /carts/{id}
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request, cartID int64) {
	cart, err := c.carts.GetWithLines(context.Background(), cartID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// ClearCart handles DELETE /carts/{id}
// Empties the cart; the caller uses this to resolve an exclusivity conflict
func (c *CartController) ClearCart(w http.ResponseWriter, r *http.Request, cartID int64) {
	if err := c.carts.Clear(context.Background(), cartID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /carts/{id}/items
// Adds a standard priced product. Fails with 409 when a custom design is in
// the cart: standard and custom lines never mix.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request, cartID int64) {
	var req models.AddCartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	line, err := c.cartService.AddStandardItem(context.Background(), cartID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, line)
}

// AddCustomDesign handles POST /carts/{id}/custom
// Packages a studio session into the cart's single custom line (price 0)
func (c *CartController) AddCustomDesign(w http.ResponseWriter, r *http.Request, cartID int64) {
	var req models.AddCustomDesignRequest
	if !decodeBody(w, r, &req) {
		return
	}

	line, err := c.cartService.AddCustomDesign(context.Background(), cartID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, line)
}

// RemoveItem handles DELETE /carts/{cartId}/items/{lineId}
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request, cartID, lineID int64) {
	if err := c.carts.RemoveLine(context.Background(), cartID, lineID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Checkout handles POST /carts/{id}/checkout
// Submits the order; a failed finalization upload aborts the whole attempt
// and the cart contents are preserved for retry.
func (c *CartController) Checkout(w http.ResponseWriter, r *http.Request, cartID int64) {
	var req models.CheckoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := c.cartService.Checkout(r.Context(), cartID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}
