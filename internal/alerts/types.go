package alerts

import "time"

// Task type constants
const (
	TaskWelcomeEmail            = "email:welcome"
	TaskPasswordReset           = "email:password_reset"
	TaskOrderStatusUpdate       = "email:order_status_update"
	TaskWithdrawalRequested     = "email:withdrawal_requested"
	TaskWithdrawalStatusChanged = "email:withdrawal_status_changed"
)

// Common envelope for email-like notifications
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Welcome email payload
type WelcomeEmailPayload struct {
	UserID   string        `json:"user_id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}

// Password reset payload
type PasswordResetPayload struct {
	UserID    string        `json:"user_id"`
	Email     string        `json:"email"`
	ResetURL  string        `json:"reset_url"`
	Envelope  EmailEnvelope `json:"envelope"`
	Requested time.Time     `json:"requested"`
}

// Order status update payload (buyer-facing)
type OrderStatusPayload struct {
	OrderID     string        `json:"order_id"`
	OrderNumber string        `json:"order_number"`
	BuyerID     string        `json:"buyer_id"`
	Email       string        `json:"email"`
	Status      string        `json:"status"`
	Notes       string        `json:"notes"`
	Envelope    EmailEnvelope `json:"envelope"`
	SentAt      time.Time     `json:"sent_at"`
}

// Withdrawal lifecycle payloads (seller-facing)
type WithdrawalEmailPayload struct {
	WithdrawalID string        `json:"withdrawal_id"`
	SellerID     string        `json:"seller_id"`
	Amount       float64       `json:"amount"`
	Status       string        `json:"status"`
	Reason       string        `json:"reason,omitempty"`
	Envelope     EmailEnvelope `json:"envelope"`
	SentAt       time.Time     `json:"sent_at"`
}
