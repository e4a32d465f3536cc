package admin

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/whatnew-live/sellerhub/internal/alerts"
	"github.com/whatnew-live/sellerhub/internal/db"
	"github.com/whatnew-live/sellerhub/internal/payments"
)

// ProcessWithdrawalRequest is the admin action payload. Actions move a
// withdrawal along pending -> {processing, rejected} -> {completed, failed}.
type ProcessWithdrawalRequest struct {
	Action string `json:"action"` // start | reject | complete | fail
	Reason string `json:"reason"`
}

// withdrawalActions maps an action to the status it requires and produces.
var withdrawalActions = map[string]struct {
	from, to string
}{
	"start":    {payments.WithdrawalPending, payments.WithdrawalProcessing},
	"reject":   {payments.WithdrawalPending, payments.WithdrawalRejected},
	"complete": {payments.WithdrawalProcessing, payments.WithdrawalCompleted},
	"fail":     {payments.WithdrawalProcessing, payments.WithdrawalFailed},
}

// ListWithdrawals returns withdrawals across all sellers, optionally filtered
// by status
// GET /admin/withdrawals?status=pending
func ListWithdrawals(c echo.Context) error {
	statusFilter := c.QueryParam("status")

	query := `
        SELECT w.id, w.seller_id, u.name, w.amount, w.status, w.rejection_reason, w.requested_at, w.processed_at
        FROM withdrawals w
        JOIN users u ON u.id = w.seller_id`
	args := []interface{}{}
	if statusFilter != "" {
		query += ` WHERE w.status = $1`
		args = append(args, statusFilter)
	}
	query += ` ORDER BY w.requested_at DESC`

	rows, err := db.Conn.Query(c.Request().Context(), query, args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch withdrawals"})
	}
	defer rows.Close()

	var list []map[string]interface{}
	for rows.Next() {
		var id, sellerID, sellerName, status, rejectionReason string
		var amount float64
		var requestedAt time.Time
		var processedAt *time.Time
		if err := rows.Scan(&id, &sellerID, &sellerName, &amount, &status, &rejectionReason, &requestedAt, &processedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to scan withdrawals"})
		}
		item := map[string]interface{}{
			"id":           id,
			"seller_id":    sellerID,
			"seller_name":  sellerName,
			"amount":       amount,
			"status":       status,
			"requested_at": requestedAt,
		}
		if rejectionReason != "" {
			item["rejection_reason"] = rejectionReason
		}
		if processedAt != nil {
			item["processed_at"] = processedAt
		}
		list = append(list, item)
	}

	return c.JSON(http.StatusOK, echo.Map{"withdrawals": list})
}

// ProcessWithdrawal applies one lifecycle action to a withdrawal
// POST /admin/withdrawals/:id/process
func ProcessWithdrawal(c echo.Context) error {
	adminID, ok := c.Get("user_id").(string)
	if !ok || adminID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	withdrawalID := c.Param("id")
	var req ProcessWithdrawalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	action, ok := withdrawalActions[req.Action]
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "action must be one of start, reject, complete, fail"})
	}

	ctx := c.Request().Context()

	var sellerID string
	var amount float64
	err := db.Conn.QueryRow(ctx,
		`SELECT seller_id, amount FROM withdrawals WHERE id = $1 AND status = $2`,
		withdrawalID, action.from,
	).Scan(&sellerID, &amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "withdrawal not found or not in a processable state"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch withdrawal"})
	}

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction start failed"})
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
        UPDATE withdrawals
        SET status = $1, rejection_reason = $2, processed_at = $3, processed_by = $4
        WHERE id = $5 AND status = $6`,
		action.to, req.Reason, time.Now(), adminID, withdrawalID, action.from,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update withdrawal"})
	}
	if ct.RowsAffected() == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "withdrawal status changed concurrently"})
	}

	// Rejected and failed payouts release the earnings reserved at request time.
	if action.to == payments.WithdrawalRejected || action.to == payments.WithdrawalFailed {
		if err := releaseEarnings(ctx, tx, sellerID, amount); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to release reserved earnings"})
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	if err := alerts.EnqueueWithdrawalProcessedEmail(withdrawalID, sellerID, amount, action.to, req.Reason); err != nil {
		log.Printf("[admin] withdrawal email enqueue failed for %s: %v", withdrawalID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "withdrawal " + action.to,
		"withdrawal_id": withdrawalID,
		"status":        action.to,
	})
}

// releaseEarnings undoes a reservation, newest reserved rows first.
func releaseEarnings(ctx context.Context, tx pgx.Tx, sellerID string, amount float64) error {
	rows, err := tx.Query(ctx, `
        SELECT id, net_amount FROM seller_earnings
        WHERE seller_id = $1 AND is_withdrawn = TRUE
        ORDER BY created_at DESC
        FOR UPDATE`,
		sellerID,
	)
	if err != nil {
		return err
	}

	var toRelease []string
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
			toRelease = append(toRelease, id)
			remaining -= net
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(toRelease) == 0 {
		return nil
	}

	_, err = tx.Exec(ctx, `UPDATE seller_earnings SET is_withdrawn = FALSE WHERE id = ANY($1)`, toRelease)
	return err
}
