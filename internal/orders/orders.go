package orders

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/whatnew-live/sellerhub/internal/db"
)

// paidStatuses limits the seller list to orders a buyer has actually paid for.
var paidStatuses = []string{"confirmed", "processing", "shipped", "delivered"}

// =========================
// ListSellerOrders - GET /seller/orders
// =========================
func ListSellerOrders(c echo.Context) error {
	sellerID, ok := c.Get("user_id").(string)
	if !ok || sellerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx := context.Background()
	rows, err := db.Conn.Query(ctx, `
        SELECT DISTINCT o.id, o.order_number, o.buyer_id, u.name, o.status, o.payment_status,
               o.tracking_id, o.courier_name, o.created_at, o.updated_at
        FROM orders o
        JOIN order_items oi ON oi.order_id = o.id
        JOIN users u ON u.id = o.buyer_id
        WHERE oi.seller_id = $1
          AND o.payment_status = 'completed'
          AND o.status = ANY($2)
        ORDER BY o.created_at DESC`,
		sellerID, paidStatuses,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch orders"})
	}
	defer rows.Close()

	var list []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.BuyerID, &o.BuyerName, &o.Status, &o.PaymentStatus,
			&o.TrackingID, &o.CourierName, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to scan orders"})
		}
		list = append(list, o)
	}

	for i := range list {
		items, err := loadSellerItems(ctx, list[i].ID, sellerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order items"})
		}
		list[i].Items = items
		list[i].TotalAmount = OrderTotal(items)
	}

	if list == nil {
		list = []Order{}
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": list})
}

// =========================
// GetSellerOrder - GET /seller/orders/:id
// =========================
func GetSellerOrder(c echo.Context) error {
	sellerID, ok := c.Get("user_id").(string)
	if !ok || sellerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order id in URL"})
	}

	ctx := context.Background()
	var o Order
	err := db.Conn.QueryRow(ctx, `
        SELECT o.id, o.order_number, o.buyer_id, u.name, o.status, o.payment_status,
               o.tracking_id, o.courier_name, o.created_at, o.updated_at
        FROM orders o
        JOIN users u ON u.id = o.buyer_id
        WHERE o.id = $1
          AND o.payment_status = 'completed'
          AND EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = o.id AND oi.seller_id = $2)`,
		orderID, sellerID,
	).Scan(&o.ID, &o.OrderNumber, &o.BuyerID, &o.BuyerName, &o.Status, &o.PaymentStatus,
		&o.TrackingID, &o.CourierName, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found, not paid, or you don't have permission to view it"})
	}

	items, err := loadSellerItems(ctx, o.ID, sellerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order items"})
	}
	o.Items = items
	o.TotalAmount = OrderTotal(items)

	tracking, err := loadTracking(ctx, o.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch tracking history"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"order":                 o,
		"tracking":              tracking,
		"available_transitions": AvailableTransitions(o.Status),
	})
}

func loadSellerItems(ctx context.Context, orderID, sellerID string) ([]OrderItem, error) {
	rows, err := db.Conn.Query(ctx, `
        SELECT id, product_name, quantity, unit_price, total_price
        FROM order_items
        WHERE order_id = $1 AND seller_id = $2`,
		orderID, sellerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func loadTracking(ctx context.Context, orderID string) ([]TrackingEntry, error) {
	rows, err := db.Conn.Query(ctx, `
        SELECT status, notes, tracking_id, courier_name, created_at
        FROM order_tracking
        WHERE order_id = $1
        ORDER BY created_at DESC`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []TrackingEntry
	for rows.Next() {
		var e TrackingEntry
		if err := rows.Scan(&e.Status, &e.Notes, &e.TrackingID, &e.CourierName, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
