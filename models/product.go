package models

// Product represents a standard catalog product.
// Price is stored in atomic currency units (divide by 100 for display).
type Product struct {
	ID          int64  `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl,omitempty"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
}

// ProductListResponse represents the response for listing products
// Example response:
//
//	{
//	  "products": [
//	    {"id": 1, "sku": "TEE-BLK-M", "name": "Core Logo Tee", "price": 3500, ...}
//	  ]
//	}
type ProductListResponse struct {
	Products []Product `json:"products"`
}
