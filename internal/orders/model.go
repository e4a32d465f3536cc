package orders

import "time"

type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"order_number"`
	BuyerID       string      `json:"buyer_id"`
	BuyerName     string      `json:"buyer_name,omitempty"`
	Status        Status      `json:"status"`
	PaymentStatus string      `json:"payment_status"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"total_amount"`
	TrackingID    string      `json:"tracking_id,omitempty"`
	CourierName   string      `json:"courier_name,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID          string  `json:"id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	// TotalPrice is nil when the upstream checkout did not store a line
	// total; the derived unit_price * quantity is used instead.
	TotalPrice *float64 `json:"total_price,omitempty"`
}

// TrackingEntry is one audit row from order_tracking.
type TrackingEntry struct {
	Status      Status    `json:"status"`
	Notes       string    `json:"notes"`
	TrackingID  string    `json:"tracking_id,omitempty"`
	CourierName string    `json:"courier_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// LineTotal returns the item's explicit total_price when present, otherwise
// unit_price * quantity. The item is never mutated.
func (i OrderItem) LineTotal() float64 {
	if i.TotalPrice != nil {
		return *i.TotalPrice
	}
	return i.UnitPrice * float64(i.Quantity)
}

// OrderTotal sums line totals across items.
func OrderTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
