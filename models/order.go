package models

// Order represents a submitted order in the database.
// Total is in atomic currency units (divide by 100 for display).
type Order struct {
	ID            int64  `json:"id"`
	Status        string `json:"status"` // submitted, fulfilled, canceled
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Total         int64  `json:"total"`
	CreatedAt     string `json:"createdAt"`
}

// OrderLine represents a line item in a submitted order
type OrderLine struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"orderId"`
	ProductID int64 `json:"productId,omitempty"`
	Qty       int   `json:"qty"`
	UnitPrice int64 `json:"unitPrice"`
}

// CustomerInfo carries the customer fields captured at checkout
type CustomerInfo struct {
	Name  string
	Phone string
	Notes string
}

// CustomDesign is the persisted form of a finalized design attached to an
// order. All image element contents and both previews are hosted URLs by the
// time this record exists; the design is immutable from here on and owned by
// the order/admin views for read and print rendering.
type CustomDesign struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"orderId"`
	FrontImageURL string          `json:"frontImageUrl"`
	BackImageURL  string          `json:"backImageUrl,omitempty"`
	BaseColor     string          `json:"baseColor"`
	Size          string          `json:"size"`
	Notes         string          `json:"notes,omitempty"`
	Elements      []DesignElement `json:"designState"`
	CreatedAt     string          `json:"createdAt"`
}

// DesignState rebuilds the renderable design state from a persisted record
func (c *CustomDesign) DesignState() *DesignState {
	return &DesignState{
		Elements:  c.Elements,
		BaseColor: c.BaseColor,
		Size:      c.Size,
		Notes:     c.Notes,
	}
}

// OrderResponse represents the response after checkout
// Example response:
//
//	{
//	  "order": {"id": 9, "status": "submitted", "customerName": "Ana Reyes", "total": 7000, ...},
//	  "designId": 4
//	}
type OrderResponse struct {
	Order    Order `json:"order"`
	DesignID int64 `json:"designId,omitempty"`
}

// DesignListItem represents a finalized design in the admin list view
type DesignListItem struct {
	ID        int64  `json:"id"`
	OrderID   int64  `json:"orderId"`
	BaseColor string `json:"baseColor"`
	Size      string `json:"size"`
	CreatedAt string `json:"createdAt"`
}

// DesignListResponse represents the admin design gallery response
type DesignListResponse struct {
	Designs []DesignListItem `json:"designs"`
}
