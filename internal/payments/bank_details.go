package payments

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/whatnew-live/sellerhub/internal/db"
)

var errIfscLengthExact = errors.New("IFSC code must be exactly 11 characters")

// BankDetailsForm is the payload for saving payout details ahead of time.
// Account number and IFSC are entered twice and must match.
type BankDetailsForm struct {
	AccountHolderName    string `json:"account_holder_name"`
	BankName             string `json:"bank_name"`
	AccountNumber        string `json:"bank_account_number"`
	ConfirmAccountNumber string `json:"confirm_account_number"`
	IfscCode             string `json:"bank_ifsc_code"`
	ConfirmIfscCode      string `json:"confirm_ifsc_code"`
	MobileNumber         string `json:"mobile_number"`
}

// validateBankDetailsForm applies the bank-details form rules. Unlike the
// withdrawal pipeline this form requires the full 11-character IFSC format.
func validateBankDetailsForm(form BankDetailsForm) (BankDetails, error) {
	if strings.TrimSpace(form.AccountHolderName) == "" || strings.TrimSpace(form.BankName) == "" ||
		strings.TrimSpace(form.AccountNumber) == "" {
		return BankDetails{}, ErrMissingBankDetails
	}
	if form.AccountNumber != form.ConfirmAccountNumber {
		return BankDetails{}, ErrAccountMismatch
	}
	if !strings.EqualFold(form.IfscCode, form.ConfirmIfscCode) {
		return BankDetails{}, ErrIfscMismatch
	}
	if len(strings.TrimSpace(form.IfscCode)) != 11 {
		return BankDetails{}, errIfscLengthExact
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

// =========================
// GetBankDetails - GET /seller/payments/bank-details
// =========================
func GetBankDetails(c echo.Context) error {
	sellerID, ok := c.Get("user_id").(string)
	if !ok || sellerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	details, err := loadBankDetails(context.Background(), sellerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch bank details"})
	}
	if details == nil {
		return c.JSON(http.StatusOK, echo.Map{"bank_details": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{"bank_details": details.Masked()})
}

// =========================
// UpdateBankDetails - PUT /seller/payments/bank-details
// =========================
func UpdateBankDetails(c echo.Context) error {
	sellerID, ok := c.Get("user_id").(string)
	if !ok || sellerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var form BankDetailsForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	details, err := validateBankDetailsForm(form)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := upsertBankDetails(c.Request().Context(), sellerID, details); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save bank details"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Bank details saved successfully",
		"bank_details": details.Masked(),
	})
}

func loadBankDetails(ctx context.Context, sellerID string) (*BankDetails, error) {
	var b BankDetails
	err := db.Conn.QueryRow(ctx, `
        SELECT account_holder_name, bank_name, account_number, ifsc_code, mobile_number
        FROM bank_details WHERE seller_id = $1`,
		sellerID,
	).Scan(&b.AccountHolderName, &b.BankName, &b.AccountNumber, &b.IfscCode, &b.MobileNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func upsertBankDetails(ctx context.Context, sellerID string, b BankDetails) error {
	_, err := db.Conn.Exec(ctx, `
        INSERT INTO bank_details (seller_id, account_holder_name, bank_name, account_number, ifsc_code, mobile_number, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (seller_id) DO UPDATE SET
            account_holder_name = EXCLUDED.account_holder_name,
            bank_name = EXCLUDED.bank_name,
            account_number = EXCLUDED.account_number,
            ifsc_code = EXCLUDED.ifsc_code,
            mobile_number = EXCLUDED.mobile_number,
            updated_at = EXCLUDED.updated_at`,
		sellerID, b.AccountHolderName, b.BankName, b.AccountNumber, b.IfscCode, b.MobileNumber, time.Now(),
	)
	return err
}
