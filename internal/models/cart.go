package models

// CartItem is a snapshot of the product at the time it was added plus the
// selection. Identity is (ID, SelectedColor, SelectedSize).
type CartItem struct {
	Product
	Quantity      int     `json:"quantity"`
	SelectedColor string  `json:"selected_color"`
	SelectedSize  string  `json:"selected_size"`
	UnitPrice     float64 `json:"unit_price"`
	TotalPrice    float64 `json:"total_price"`
}

type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	Quantity  int        `json:"quantity"`
	Total     float64    `json:"total"`
}

type AddItemRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"      validate:"max=50"`
	Size      string `json:"size"       validate:"max=20"`
}

type CartCount struct {
	Quantity int `json:"quantity"`
}
