package controller

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"hypewear-studio/models"
	"hypewear-studio/repository"
)

// CatalogController handles HTTP requests for the standard product catalog
type CatalogController struct {
	products repository.ProductRepositoryInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(products repository.ProductRepositoryInterface) *CatalogController {
	return &CatalogController{products: products}
}

// ListProducts handles GET /products
// Returns active products; ?all=true includes inactive ones (admin use)
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	activeOnly := !strings.EqualFold(r.URL.Query().Get("all"), "true")

	products, err := c.products.List(context.Background(), activeOnly)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ProductListResponse{Products: products})
}

// GetProduct handles GET /products/{id}
func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/products/")
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	product, err := c.products.GetByID(context.Background(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}
