package models

// Cart represents a shopping cart in the database
type Cart struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"` // open, ordered
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CartLine represents one line in a cart. A line is either standard
// (ProductID set, UnitPrice > 0) or custom (CustomDesign set, UnitPrice = 0;
// custom items are unpriced pending manual quotation).
type CartLine struct {
	ID        int64  `json:"id"`
	CartID    int64  `json:"cartId"`
	ProductID int64  `json:"productId,omitempty"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unitPrice"`
	CreatedAt string `json:"createdAt"`
	// Product details (populated when joining with products)
	ProductSKU  string `json:"productSku,omitempty"`
	ProductName string `json:"productName,omitempty"`
	// Custom design snapshot (populated for custom lines)
	CustomDesign *CartCustomDesign `json:"customDesign,omitempty"`
}

// IsCustom reports whether the line carries a custom design
func (l *CartLine) IsCustom() bool {
	return l.CustomDesign != nil
}

// CartCustomDesign is the immutable snapshot embedded in a custom cart line:
// the full design state plus the rendered preview images shown in the cart
// drawer and checkout summary. Previews are PNG data URIs until finalization.
type CartCustomDesign struct {
	Design       DesignState `json:"design"`
	FrontPreview string      `json:"frontPreview"`
	BackPreview  string      `json:"backPreview,omitempty"`
}

// AddCartItemRequest represents the request body for adding a standard item
// Example: {"productId": 12, "qty": 2}
type AddCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Qty       int   `json:"qty"`
}

// AddCustomDesignRequest represents the request body for packaging a studio
// session into a custom cart line
// Example: {"sessionId": "a8ff...", "baseColor": "#1A1A1A", "size": "M", "notes": "front print only"}
type AddCustomDesignRequest struct {
	SessionID string `json:"sessionId"`
	BaseColor string `json:"baseColor"`
	Size      string `json:"size"`
	Notes     string `json:"notes,omitempty"`
}

// CartResponse represents the response for a cart with its lines
// Example response:
//
//	{
//	  "id": 3,
//	  "status": "open",
//	  "createdAt": "2026-02-11T09:12:00Z",
//	  "updatedAt": "2026-02-11T09:15:00Z",
//	  "lines": [
//	    {"id": 7, "cartId": 3, "productId": 12, "qty": 2, "unitPrice": 3500}
//	  ],
//	  "total": 7000
//	}
type CartResponse struct {
	Cart
	Lines []CartLine `json:"lines"`
	Total int64      `json:"total"` // Sum of qty * unit_price for all lines
}

// CheckoutRequest represents the request body for submitting an order
// Example: {"customerName": "Ana Reyes", "customerPhone": "+573001112233", "notes": "gift wrap"}
type CheckoutRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	Notes         string `json:"notes,omitempty"`
}
