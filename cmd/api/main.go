package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/whatnew-live/sellerhub/internal/alerts"
	"github.com/whatnew-live/sellerhub/internal/db"
	"github.com/whatnew-live/sellerhub/internal/metrics"
	appmw "github.com/whatnew-live/sellerhub/internal/middleware"
	// handlers
	admin "github.com/whatnew-live/sellerhub/internal/admin"
	auth "github.com/whatnew-live/sellerhub/internal/auth"
	orders "github.com/whatnew-live/sellerhub/internal/orders"
	payments "github.com/whatnew-live/sellerhub/internal/payments"
	user "github.com/whatnew-live/sellerhub/internal/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	// Init subsystems
	db.Init()
	alerts.Init()
	defer alerts.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware)

	// Health and metrics
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", metrics.Handler())

	// Public auth routes
	e.POST("/signup", auth.Signup)
	e.POST("/login", auth.Login)
	e.POST("/password-reset/request", auth.RequestPasswordReset)
	e.POST("/password-reset/confirm", auth.ConfirmPasswordReset)
	e.GET("/user/:id/profile", user.GetPublicProfile)

	// Authenticated group
	g := e.Group("")
	g.Use(appmw.JWTMiddleware)

	// Me and profile update
	g.GET("/me", auth.Me)
	g.PATCH("/user/profile", user.UpdateProfile)

	// Notifications
	g.GET("/notifications", alerts.ListNotifications)
	g.POST("/notifications/:id/read", alerts.MarkNotificationRead)
	g.POST("/notifications/read-all", alerts.MarkAllNotificationsRead)

	// Seller order management
	sellerGroup := e.Group("/seller")
	sellerGroup.Use(appmw.JWTMiddleware)
	sellerGroup.Use(appmw.SellerGuard)
	sellerGroup.GET("/orders", orders.ListSellerOrders)
	sellerGroup.GET("/orders/:id", orders.GetSellerOrder)
	sellerGroup.PATCH("/orders/:id/status", orders.UpdateOrderStatus)

	// Seller payments
	sellerGroup.GET("/payments/earnings", payments.EarningsSummary)
	sellerGroup.GET("/payments/bank-details", payments.GetBankDetails)
	sellerGroup.PUT("/payments/bank-details", payments.UpdateBankDetails)
	sellerGroup.POST("/payments/withdrawals", payments.RequestWithdrawal)
	sellerGroup.GET("/payments/withdrawals", payments.ListWithdrawals)

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(appmw.JWTMiddleware)
	adminGroup.Use(appmw.AdminGuard)
	adminGroup.GET("/stats", admin.Stats)
	adminGroup.GET("/withdrawals", admin.ListWithdrawals)
	adminGroup.POST("/withdrawals/:id/process", admin.ProcessWithdrawal)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("API server listening on :%s", port)
	if err := e.Start(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
