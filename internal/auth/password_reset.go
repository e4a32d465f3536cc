package auth

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/whatnew-live/sellerhub/internal/alerts"
	"github.com/whatnew-live/sellerhub/internal/db"
)

type ResetRequest struct {
	Email string `json:"email"`
}

type ResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// RequestPasswordReset emails a short-lived reset link. The response is the
// same whether or not the email exists.
func RequestPasswordReset(c echo.Context) error {
	var req ResetRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	var userID string
	err := db.Conn.QueryRow(context.Background(),
		`SELECT id FROM users WHERE email = $1`, req.Email).Scan(&userID)
	if err == nil {
		claims := jwt.MapClaims{
			"user_id": userID,
			"purpose": "password_reset",
			"exp":     time.Now().Add(30 * time.Minute).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, signErr := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
		if signErr == nil {
			base := os.Getenv("APP_URL")
			if base == "" {
				base = "http://localhost:3000"
			}
			resetURL := strings.TrimRight(base, "/") + "/reset-password?token=" + signed
			if err := alerts.EnqueuePasswordResetEmail(userID, req.Email, resetURL); err != nil {
				log.Printf("[auth] reset email enqueue failed for %s: %v", userID, err)
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "If the email exists, a reset link has been sent",
	})
}

// ConfirmPasswordReset validates the reset token and stores the new password
func ConfirmPasswordReset(c echo.Context) error {
	var req ResetConfirmRequest
	if err := c.Bind(&req); err != nil || req.Token == "" || len(req.NewPassword) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(req.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired reset token"})
	}
	if purpose, _ := claims["purpose"].(string); purpose != "password_reset" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid reset token"})
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token claims"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	ct, err := db.Conn.Exec(context.Background(),
		`UPDATE users SET password = $1 WHERE id = $2`, string(hashed), userID)
	if err != nil || ct.RowsAffected() == 0 {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update password"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "password updated successfully"})
}
