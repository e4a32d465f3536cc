package orders

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
	"github.com/whatnew-live/sellerhub/internal/metrics"
)

type UpdateStatusRequest struct {
	Status      Status `json:"status"`
	Notes       string `json:"notes"`
	TrackingID  string `json:"tracking_id"`
	CourierName string `json:"courier_name"`
}

// =========================
// UpdateOrderStatus - Seller advances an order through its lifecycle
// PATCH /seller/orders/:id/status
// =========================
func UpdateOrderStatus(c echo.Context) error {
	sellerID, ok := c.Get("user_id").(string)
	if !ok || sellerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if role, _ := c.Get("role").(string); role != "seller" {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only sellers can update order status"})
	}

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order id in URL"})
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()

	// The seller must have items in this order and the order must be paid.
	var (
		buyerID       string
		buyerEmail    string
		orderNumber   string
		currentStatus Status
	)
	err := db.Conn.QueryRow(ctx, `
        SELECT o.buyer_id, u.email, o.order_number, o.status
        FROM orders o
        JOIN users u ON u.id = o.buyer_id
        WHERE o.id = $1
          AND o.payment_status = 'completed'
          AND EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = o.id AND oi.seller_id = $2)`,
		orderID, sellerID,
	).Scan(&buyerID, &buyerEmail, &orderNumber, &currentStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found, not paid, or you don't have permission to update it"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order"})
	}

	ship := ShippingInfo{TrackingID: req.TrackingID, CourierName: req.CourierName}
	if err := ValidateTransition(currentStatus, req.Status, ship); err != nil {
		metrics.OrderStatusUpdates.WithLabelValues(string(req.Status), "rejected").Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	notes := req.Notes
	if notes == "" {
		notes = StatusNote(req.Status, ship)
	}

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction start failed"})
	}
	defer tx.Rollback(ctx)

	// Update the order row, guarding on the current status so a concurrent
	// update loses instead of double-applying.
	var stampCol string
	switch req.Status {
	case StatusConfirmed:
		stampCol = "confirmed_at"
	case StatusShipped:
		stampCol = "shipped_at"
	case StatusDelivered:
		stampCol = "delivered_at"
	}
	query := `UPDATE orders SET status = $1, updated_at = NOW()`
	if req.Status == StatusShipped {
		query += `, tracking_id = $4, courier_name = $5`
	}
	if stampCol != "" {
		query += `, ` + stampCol + ` = NOW()`
	}
	query += ` WHERE id = $2 AND status = $3`

	args := []interface{}{req.Status, orderID, currentStatus}
	if req.Status == StatusShipped {
		args = append(args, req.TrackingID, req.CourierName)
	}
	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update order status"})
	}
	if ct.RowsAffected() == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "order status changed concurrently, reload and retry"})
	}

	// Audit trail entry; tracking metadata only for shipped.
	trackingID, courierName := "", ""
	if req.Status == StatusShipped {
		trackingID, courierName = req.TrackingID, req.CourierName
	}
	_, err = tx.Exec(ctx, `
        INSERT INTO order_tracking (order_id, status, notes, tracking_id, courier_name, created_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		orderID, req.Status, notes, trackingID, courierName, sellerID, time.Now(),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record tracking entry"})
	}

	// Delivered orders credit the seller's earnings ledger once per item.
	if req.Status == StatusDelivered {
		if err := recordEarnings(ctx, tx, orderID, sellerID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record seller earnings"})
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	metrics.OrderStatusUpdates.WithLabelValues(string(req.Status), "applied").Inc()

	// Buyer notification is best-effort; a failed enqueue never fails the update.
	if err := alerts.EnqueueOrderStatusEmail(orderID, orderNumber, buyerID, buyerEmail, string(req.Status), notes); err != nil {
		log.Printf("[orders] status email enqueue failed for order %s: %v", orderID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":               "Order status updated to " + string(req.Status),
		"order_id":              orderID,
		"status":                req.Status,
		"available_transitions": AvailableTransitions(req.Status),
	})
}

// recordEarnings inserts one ledger row per delivered item for this seller.
// ON CONFLICT keeps a replayed delivery from double-crediting.
func recordEarnings(ctx context.Context, tx pgx.Tx, orderID, sellerID string) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO seller_earnings (seller_id, order_id, order_item_id, gross_amount, platform_fee, net_amount)
        SELECT oi.seller_id, oi.order_id, oi.id,
               COALESCE(oi.total_price, oi.unit_price * oi.quantity), 0,
               COALESCE(oi.total_price, oi.unit_price * oi.quantity)
        FROM order_items oi
        WHERE oi.order_id = $1 AND oi.seller_id = $2
        ON CONFLICT (seller_id, order_item_id) DO NOTHING`,
		orderID, sellerID,
	)
	return err
}
