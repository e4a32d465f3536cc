package payments

import "time"

// Withdrawal statuses. pending moves to processing or rejected; processing
// moves to completed or failed. The admin endpoints own every move.
const (
	WithdrawalPending    = "pending"
	WithdrawalProcessing = "processing"
	WithdrawalCompleted  = "completed"
	WithdrawalFailed     = "failed"
	WithdrawalRejected   = "rejected"
)

// BankDetails is the single payout destination stored per seller, and also the
// snapshot frozen onto each withdrawal request.
type BankDetails struct {
	AccountHolderName string `json:"account_holder_name"`
	BankName          string `json:"bank_name"`
	AccountNumber     string `json:"account_number"`
	IfscCode          string `json:"ifsc_code"`
	MobileNumber      string `json:"mobile_number"`
}

type Withdrawal struct {
	ID              string      `json:"id"`
	SellerID        string      `json:"seller_id"`
	Amount          float64     `json:"amount"`
	Status          string      `json:"status"`
	BankDetails     BankDetails `json:"bank_details"`
	RejectionReason string      `json:"rejection_reason,omitempty"`
	RequestedAt     time.Time   `json:"requested_at"`
	ProcessedAt     *time.Time  `json:"processed_at,omitempty"`
}

// Masked returns the details with all but the last four digits of the account
// number hidden, for list responses.
func (b BankDetails) Masked() BankDetails {
	masked := b
	if n := len(b.AccountNumber); n > 4 {
		masked.AccountNumber = "****" + b.AccountNumber[n-4:]
	}
	return masked
}
