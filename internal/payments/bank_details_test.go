package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBankForm() BankDetailsForm {
	return BankDetailsForm{
		AccountHolderName:    "Asha Traders",
		BankName:             "State Bank",
		AccountNumber:        "001234567890",
		ConfirmAccountNumber: "001234567890",
		IfscCode:             "SBIN0001234",
		ConfirmIfscCode:      "SBIN0001234",
		MobileNumber:         "9876543210",
	}
}

func TestValidateBankDetailsForm(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BankDetailsForm)
		wantErr error
	}{
		{"valid form", func(f *BankDetailsForm) {}, nil},
		{"missing holder name", func(f *BankDetailsForm) { f.AccountHolderName = "  " }, ErrMissingBankDetails},
		{"missing bank name", func(f *BankDetailsForm) { f.BankName = "" }, ErrMissingBankDetails},
		{"missing account number", func(f *BankDetailsForm) { f.AccountNumber = "" }, ErrMissingBankDetails},
		{"account mismatch", func(f *BankDetailsForm) { f.ConfirmAccountNumber = "999" }, ErrAccountMismatch},
		{"ifsc mismatch", func(f *BankDetailsForm) { f.ConfirmIfscCode = "HDFC0000123" }, ErrIfscMismatch},
		{"ifsc 10 chars rejected", func(f *BankDetailsForm) {
			f.IfscCode = "SBIN000123"
			f.ConfirmIfscCode = "SBIN000123"
		}, errIfscLengthExact},
		{"ifsc 12 chars rejected", func(f *BankDetailsForm) {
			f.IfscCode = "SBIN00012345"
			f.ConfirmIfscCode = "SBIN00012345"
		}, errIfscLengthExact},
		{"bad mobile", func(f *BankDetailsForm) { f.MobileNumber = "12345" }, ErrInvalidMobileNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validBankForm()
			tt.mutate(&form)
			_, err := validateBankDetailsForm(form)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBankDetailsFormNormalizes(t *testing.T) {
	form := validBankForm()
	form.IfscCode = "sbin0001234"
	form.ConfirmIfscCode = "SBIN0001234"
	form.BankName = " State Bank "

	got, err := validateBankDetailsForm(form)
	require.NoError(t, err)
	assert.Equal(t, "SBIN0001234", got.IfscCode)
	assert.Equal(t, "State Bank", got.BankName)
}
