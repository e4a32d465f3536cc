package payments

import (
	"errors"
	"regexp"
	"strings"
)

// MinWithdrawalAmount is the platform's payout floor, in the base currency unit.
const MinWithdrawalAmount = 10000

var (
	ErrInvalidAmount       = errors.New("amount must be a positive number")
	ErrBelowMinimum        = errors.New("minimum withdrawal amount is 10000")
	ErrInsufficientBalance = errors.New("amount exceeds available balance")
	ErrMissingBankDetails  = errors.New("bank details are required before requesting a withdrawal")
	ErrAccountMismatch     = errors.New("account numbers do not match")
	ErrIfscMismatch        = errors.New("IFSC codes do not match")
	ErrInvalidIfscLength   = errors.New("IFSC code must be between 8-15 characters")
	ErrInvalidMobileNumber = errors.New("mobile number must be a 10-digit number")
)

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

// WithdrawalForm is the raw request body for a withdrawal. Bank fields may be
// left empty to fall back to the seller's stored details.
type WithdrawalForm struct {
	Amount               float64 `json:"amount"`
	AccountHolderName    string  `json:"account_holder_name"`
	BankName             string  `json:"bank_name"`
	AccountNumber        string  `json:"bank_account_number"`
	ConfirmAccountNumber string  `json:"confirm_account_number"`
	IfscCode             string  `json:"bank_ifsc_code"`
	ConfirmIfscCode      string  `json:"confirm_ifsc_code"`
	MobileNumber         string  `json:"mobile_number"`
}

// ValidateWithdrawal runs the eligibility pipeline in a fixed order and stops
// at the first failure. On success it returns the normalized bank snapshot to
// freeze onto the withdrawal request (IFSC uppercased, fields trimmed).
//
// stored is the seller's saved bank details, nil when none exist. When the
// form carries no fresh account number the stored details are used verbatim;
// fresh details must pass the duplicate-entry checks.
func ValidateWithdrawal(form WithdrawalForm, availableBalance float64, stored *BankDetails) (BankDetails, error) {
	if form.Amount <= 0 {
		return BankDetails{}, ErrInvalidAmount
	}
	if form.Amount < MinWithdrawalAmount {
		return BankDetails{}, ErrBelowMinimum
	}
	if form.Amount > availableBalance {
		return BankDetails{}, ErrInsufficientBalance
	}

	if strings.TrimSpace(form.AccountNumber) == "" {
		if stored == nil || stored.AccountNumber == "" {
			return BankDetails{}, ErrMissingBankDetails
		}
		return normalize(*stored), nil
	}

	if form.AccountNumber != form.ConfirmAccountNumber {
		return BankDetails{}, ErrAccountMismatch
	}
	if !strings.EqualFold(form.IfscCode, form.ConfirmIfscCode) {
		return BankDetails{}, ErrIfscMismatch
	}
	if l := len(strings.TrimSpace(form.IfscCode)); l < 8 || l > 15 {
		return BankDetails{}, ErrInvalidIfscLength
	}
	if !mobilePattern.MatchString(form.MobileNumber) {
		return BankDetails{}, ErrInvalidMobileNumber
	}

	return normalize(BankDetails{
		AccountHolderName: form.AccountHolderName,
		BankName:          form.BankName,
		AccountNumber:     form.AccountNumber,
		IfscCode:          form.IfscCode,
		MobileNumber:      form.MobileNumber,
	}), nil
}

func normalize(b BankDetails) BankDetails {
	b.AccountHolderName = strings.TrimSpace(b.AccountHolderName)
	b.BankName = strings.TrimSpace(b.BankName)
	b.AccountNumber = strings.TrimSpace(b.AccountNumber)
	b.IfscCode = strings.ToUpper(strings.TrimSpace(b.IfscCode))
	b.MobileNumber = strings.TrimSpace(b.MobileNumber)
	return b
}
