package payments

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/whatnew-live/sellerhub/internal/db"
)

// availableBalance is the sum of delivered, not-yet-withdrawn earnings.
func availableBalance(ctx context.Context, sellerID string) (float64, error) {
	var balance float64
	err := db.Conn.QueryRow(ctx, `
        SELECT COALESCE(SUM(net_amount), 0)
        FROM seller_earnings
        WHERE seller_id = $1 AND is_withdrawn = FALSE`,
		sellerID,
	).Scan(&balance)
	return balance, err
}

// =========================
// EarningsSummary - GET /seller/payments/earnings
// =========================
func EarningsSummary(c echo.Context) error {
	sellerID, ok := c.Get("user_id").(string)
	if !ok || sellerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx := context.Background()

	var total, withdrawn float64
	err := db.Conn.QueryRow(ctx, `
        SELECT COALESCE(SUM(net_amount), 0),
               COALESCE(SUM(net_amount) FILTER (WHERE is_withdrawn), 0)
        FROM seller_earnings
        WHERE seller_id = $1`,
		sellerID,
	).Scan(&total, &withdrawn)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch earnings"})
	}

	var pendingWithdrawals, totalWithdrawals float64
	err = db.Conn.QueryRow(ctx, `
        SELECT COALESCE(SUM(amount) FILTER (WHERE status IN ('pending', 'processing')), 0),
               COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0)
        FROM withdrawals
        WHERE seller_id = $1`,
		sellerID,
	).Scan(&pendingWithdrawals, &totalWithdrawals)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch withdrawals"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_earnings":       total,
		"withdrawn_earnings":   withdrawn,
		"available_balance":    total - withdrawn,
		"pending_withdrawals":  pendingWithdrawals,
		"total_withdrawals":    totalWithdrawals,
		"minimum_withdrawal":   MinWithdrawalAmount,
		"withdrawal_available": total-withdrawn >= MinWithdrawalAmount,
	})
}
