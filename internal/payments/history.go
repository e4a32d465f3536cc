package payments

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/whatnew-live/sellerhub/internal/db"
)

// ListWithdrawals returns the seller's withdrawal history, newest first
// GET /seller/payments/withdrawals
func ListWithdrawals(c echo.Context) error {
	sellerID, ok := c.Get("user_id").(string)
	if !ok || sellerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized or invalid user"})
	}

	rows, err := db.Conn.Query(context.Background(), `
        SELECT id, seller_id, amount, status,
               account_holder_name, bank_name, account_number, ifsc_code, mobile_number,
               rejection_reason, requested_at, processed_at
        FROM withdrawals
        WHERE seller_id = $1
        ORDER BY requested_at DESC`,
		sellerID,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch withdrawals"})
	}
	defer rows.Close()

	var list []Withdrawal
	for rows.Next() {
		var w Withdrawal
		if err := rows.Scan(&w.ID, &w.SellerID, &w.Amount, &w.Status,
			&w.BankDetails.AccountHolderName, &w.BankDetails.BankName, &w.BankDetails.AccountNumber,
			&w.BankDetails.IfscCode, &w.BankDetails.MobileNumber,
			&w.RejectionReason, &w.RequestedAt, &w.ProcessedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scan error"})
		}
		w.BankDetails = w.BankDetails.Masked()
		list = append(list, w)
	}

	if list == nil {
		list = []Withdrawal{}
	}
	return c.JSON(http.StatusOK, echo.Map{"withdrawals": list})
}
