package payments

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/whatnew-live/sellerhub/internal/alerts"
	"github.com/whatnew-live/sellerhub/internal/db"
	"github.com/whatnew-live/sellerhub/internal/metrics"
)

// =========================
// RequestWithdrawal - Seller asks for a payout of accumulated earnings
// POST /seller/payments/withdrawals
// =========================
func RequestWithdrawal(c echo.Context) error {
	sellerID, ok := c.Get("user_id").(string)
	if !ok || sellerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized or invalid user"})
	}
	if role, _ := c.Get("role").(string); role != "seller" {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only sellers can request withdrawals"})
	}

	var form WithdrawalForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()

	balance, err := availableBalance(ctx, sellerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch available balance"})
	}

	stored, err := loadBankDetails(ctx, sellerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch bank details"})
	}

	snapshot, err := ValidateWithdrawal(form, balance, stored)
	if err != nil {
		metrics.WithdrawalRequests.WithLabelValues("rejected").Inc()
		if errors.Is(err, ErrMissingBankDetails) {
			// The client uses this flag to open bank-detail collection.
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":              err.Error(),
				"bank_details_setup": true,
			})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not start transaction"})
	}
	defer tx.Rollback(ctx)

	// Keep the stored details in sync with what the request was validated
	// against, then freeze the snapshot onto the withdrawal row.
	_, err = tx.Exec(ctx, `
        INSERT INTO bank_details (seller_id, account_holder_name, bank_name, account_number, ifsc_code, mobile_number, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (seller_id) DO UPDATE SET
            account_holder_name = EXCLUDED.account_holder_name,
            bank_name = EXCLUDED.bank_name,
            account_number = EXCLUDED.account_number,
            ifsc_code = EXCLUDED.ifsc_code,
            mobile_number = EXCLUDED.mobile_number,
            updated_at = EXCLUDED.updated_at`,
		sellerID, snapshot.AccountHolderName, snapshot.BankName, snapshot.AccountNumber, snapshot.IfscCode, snapshot.MobileNumber, time.Now(),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save bank details"})
	}

	withdrawalID := uuid.New().String()
	_, err = tx.Exec(ctx, `
        INSERT INTO withdrawals (id, seller_id, amount, status, account_holder_name, bank_name, account_number, ifsc_code, mobile_number, requested_at)
        VALUES ($1, $2, $3, 'pending', $4, $5, $6, $7, $8, $9)`,
		withdrawalID, sellerID, form.Amount,
		snapshot.AccountHolderName, snapshot.BankName, snapshot.AccountNumber, snapshot.IfscCode, snapshot.MobileNumber,
		time.Now(),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create withdrawal request"})
	}

	if err := reserveEarnings(ctx, tx, sellerID, form.Amount); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not reserve earnings"})
	}

	if err = tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not finalize withdrawal request"})
	}

	metrics.WithdrawalRequests.WithLabelValues("accepted").Inc()

	if err := alerts.EnqueueWithdrawalRequestedEmail(withdrawalID, sellerID, form.Amount); err != nil {
		log.Printf("[payments] withdrawal email enqueue failed for %s: %v", withdrawalID, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":       "Withdrawal request created successfully",
		"withdrawal_id": withdrawalID,
		"amount":        form.Amount,
		"status":        WithdrawalPending,
	})
}

// reserveEarnings marks non-withdrawn ledger rows as withdrawn, oldest first,
// until the requested amount is covered.
func reserveEarnings(ctx context.Context, tx pgx.Tx, sellerID string, amount float64) error {
	rows, err := tx.Query(ctx, `
        SELECT id, net_amount FROM seller_earnings
        WHERE seller_id = $1 AND is_withdrawn = FALSE
        ORDER BY created_at
        FOR UPDATE`,
		sellerID,
	)
	if err != nil {
		return err
	}

	var toReserve []string
	remaining := amount
	for rows.Next() {
		var id string
		var net float64
		if err := rows.Scan(&id, &net); err != nil {
			rows.Close()
			return err
		}
		if remaining <= 0 {
			break
		}
		if net <= remaining {
			toReserve = append(toReserve, id)
			remaining -= net
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(toReserve) == 0 {
		return nil
	}

	_, err = tx.Exec(ctx, `UPDATE seller_earnings SET is_withdrawn = TRUE WHERE id = ANY($1)`, toReserve)
	return err
}
