package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshForm() WithdrawalForm {
	return WithdrawalForm{
		Amount:               20000,
		AccountHolderName:    "Asha Traders",
		BankName:             "State Bank",
		AccountNumber:        "001234567890",
		ConfirmAccountNumber: "001234567890",
		IfscCode:             "SBIN0001234",
		ConfirmIfscCode:      "SBIN0001234",
		MobileNumber:         "9876543210",
	}
}

func TestValidateWithdrawalAmountChecks(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		balance float64
		wantErr error
	}{
		{"zero amount", 0, 50000, ErrInvalidAmount},
		{"negative amount", -100, 50000, ErrInvalidAmount},
		{"below minimum", 5000, 50000, ErrBelowMinimum},
		{"just under minimum", 9999.99, 50000, ErrBelowMinimum},
		{"exceeds balance", 15000, 10000, ErrInsufficientBalance},
		{"exactly at balance", 10000, 10000, nil},
		{"exactly at minimum", 10000, 50000, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := freshForm()
			form.Amount = tt.amount
			_, err := ValidateWithdrawal(form, tt.balance, nil)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWithdrawalShortCircuits(t *testing.T) {
	// A below-minimum amount is reported before any bank field is looked at,
	// even when those fields are also wrong.
	form := freshForm()
	form.Amount = 5000
	form.ConfirmAccountNumber = "999"
	_, err := ValidateWithdrawal(form, 50000, nil)
	assert.ErrorIs(t, err, ErrBelowMinimum)

	// Account mismatch beats IFSC mismatch.
	form = freshForm()
	form.ConfirmAccountNumber = "456"
	form.ConfirmIfscCode = "HDFC0000123"
	_, err = ValidateWithdrawal(form, 50000, nil)
	assert.ErrorIs(t, err, ErrAccountMismatch)
}

func TestValidateWithdrawalBankFieldChecks(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WithdrawalForm)
		wantErr error
	}{
		{"account numbers differ", func(f *WithdrawalForm) { f.ConfirmAccountNumber = "004567890123" }, ErrAccountMismatch},
		{"ifsc codes differ", func(f *WithdrawalForm) { f.ConfirmIfscCode = "HDFC0000123" }, ErrIfscMismatch},
		{"ifsc too short", func(f *WithdrawalForm) { f.IfscCode = "SBIN012"; f.ConfirmIfscCode = "SBIN012" }, ErrInvalidIfscLength},
		{"ifsc too long", func(f *WithdrawalForm) {
			f.IfscCode = "SBIN0001234567890"
			f.ConfirmIfscCode = "SBIN0001234567890"
		}, ErrInvalidIfscLength},
		{"ifsc 8 chars ok", func(f *WithdrawalForm) { f.IfscCode = "SBIN0012"; f.ConfirmIfscCode = "SBIN0012" }, nil},
		{"ifsc 15 chars ok", func(f *WithdrawalForm) {
			f.IfscCode = "SBIN00012345678"
			f.ConfirmIfscCode = "SBIN00012345678"
		}, nil},
		{"mobile too short", func(f *WithdrawalForm) { f.MobileNumber = "98765" }, ErrInvalidMobileNumber},
		{"mobile with letters", func(f *WithdrawalForm) { f.MobileNumber = "98765abc10" }, ErrInvalidMobileNumber},
		{"mobile 11 digits", func(f *WithdrawalForm) { f.MobileNumber = "98765432100" }, ErrInvalidMobileNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := freshForm()
			tt.mutate(&form)
			_, err := ValidateWithdrawal(form, 50000, nil)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWithdrawalIfscCaseInsensitive(t *testing.T) {
	form := freshForm()
	form.IfscCode = "sbin0001234"
	form.ConfirmIfscCode = "SBIN0001234"

	got, err := ValidateWithdrawal(form, 50000, nil)
	require.NoError(t, err)
	assert.Equal(t, "SBIN0001234", got.IfscCode)
}

func TestValidateWithdrawalNormalizesSnapshot(t *testing.T) {
	form := freshForm()
	form.AccountHolderName = "  Asha Traders  "
	form.IfscCode = " sbin0001234 "
	form.ConfirmIfscCode = " sbin0001234 "

	got, err := ValidateWithdrawal(form, 50000, nil)
	require.NoError(t, err)
	assert.Equal(t, "Asha Traders", got.AccountHolderName)
	assert.Equal(t, "SBIN0001234", got.IfscCode)
	assert.Equal(t, "001234567890", got.AccountNumber)
	assert.Equal(t, "9876543210", got.MobileNumber)
}

func TestValidateWithdrawalStoredDetailsFallback(t *testing.T) {
	stored := &BankDetails{
		AccountHolderName: "Asha Traders",
		BankName:          "State Bank",
		AccountNumber:     "001234567890",
		IfscCode:          "sbin0001234",
		MobileNumber:      "9876543210",
	}

	// Empty bank fields in the form fall back to the stored details, skipping
	// the duplicate-entry checks entirely.
	form := WithdrawalForm{Amount: 12000}
	got, err := ValidateWithdrawal(form, 50000, stored)
	require.NoError(t, err)
	assert.Equal(t, "001234567890", got.AccountNumber)
	assert.Equal(t, "SBIN0001234", got.IfscCode)

	// No form details and nothing stored.
	_, err = ValidateWithdrawal(form, 50000, nil)
	assert.ErrorIs(t, err, ErrMissingBankDetails)

	_, err = ValidateWithdrawal(form, 50000, &BankDetails{})
	assert.ErrorIs(t, err, ErrMissingBankDetails)

	// Fresh form details override the stored ones and are checked in full.
	form = freshForm()
	form.ConfirmAccountNumber = "mismatch"
	_, err = ValidateWithdrawal(form, 50000, stored)
	assert.ErrorIs(t, err, ErrAccountMismatch)
}
