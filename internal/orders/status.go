package orders

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Payment status values. Sellers only ever see orders with PaymentCompleted.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

var (
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrMissingShippingInfo = errors.New("tracking id and courier name are required to mark an order as shipped")
)

// validNext is the exhaustive adjacency table for seller-driven status
// changes. delivered and cancelled are terminal.
var validNext = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusShipped, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// AvailableTransitions returns the statuses an order may move to next.
// Unknown and terminal statuses both yield an empty slice.
func AvailableTransitions(current Status) []Status {
	next := validNext[current]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

func CanTransition(from, to Status) bool {
	for _, s := range validNext[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ShippingInfo carries the side-data a shipped transition must include.
type ShippingInfo struct {
	TrackingID  string `json:"tracking_id"`
	CourierName string `json:"courier_name"`
}

// ValidateTransition checks the adjacency table and, for shipped, the
// mandatory shipping info. It never touches storage.
func ValidateTransition(from, to Status, ship ShippingInfo) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if to == StatusShipped && (ship.TrackingID == "" || ship.CourierName == "") {
		return ErrMissingShippingInfo
	}
	return nil
}

// StatusNote builds the audit note recorded with a transition. Shipped
// transitions embed the tracking metadata.
func StatusNote(to Status, ship ShippingInfo) string {
	if to == StatusShipped {
		return fmt.Sprintf(
			"Order shipped via %s. Tracking ID: %s. Estimated delivery: 7-10 business days.",
			ship.CourierName, ship.TrackingID,
		)
	}
	return fmt.Sprintf("Status updated to %s", to)
}
