package admin

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/whatnew-live/sellerhub/internal/db"
)

// GET /admin/stats
func Stats(c echo.Context) error {
	ctx := context.Background()

	var users, orders, withdrawals, pendingWithdrawals, earnings int

	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&users)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&orders)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM withdrawals`).Scan(&withdrawals)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM withdrawals WHERE status = 'pending'`).Scan(&pendingWithdrawals)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM seller_earnings`).Scan(&earnings)

	return c.JSON(http.StatusOK, echo.Map{
		"users":               users,
		"orders":              orders,
		"withdrawals":         withdrawals,
		"pending_withdrawals": pendingWithdrawals,
		"earnings":            earnings,
	})
}
