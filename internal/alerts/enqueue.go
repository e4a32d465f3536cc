package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/whatnew-live/sellerhub/internal/db"
)

// ensureClient returns a usable client instance
func ensureClient() *asynq.Client {
	if client == nil {
		Init()
	}
	return client
}

func enqueue(taskType string, payload interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = ensureClient().Enqueue(asynq.NewTask(taskType, b), asynq.Queue("emails"))
	return err
}

// EnqueueWelcomeEmail schedules a welcome email to the user
func EnqueueWelcomeEmail(userID, email, name string) error {
	p := WelcomeEmailPayload{
		UserID: userID,
		Name:   name,
		Email:  email,
		Envelope: EmailEnvelope{
			To:      email,
			Subject: "Welcome to WhatNew",
			Body: fmt.Sprintf("Hi %s,\n\nYour seller account is ready. "+
				"Log in to the dashboard to manage your orders and payouts.\n", name),
		},
		SentAt: time.Now(),
	}
	return enqueue(TaskWelcomeEmail, p)
}

// EnqueuePasswordResetEmail schedules a password reset email
func EnqueuePasswordResetEmail(userID, email, resetURL string) error {
	p := PasswordResetPayload{
		UserID:   userID,
		Email:    email,
		ResetURL: resetURL,
		Envelope: EmailEnvelope{
			To:      email,
			Subject: "Reset your WhatNew password",
			Body:    fmt.Sprintf("Use the link below to reset your password:\n\n%s\n\nIf you did not request this, ignore this email.\n", resetURL),
		},
		Requested: time.Now(),
	}
	return enqueue(TaskPasswordReset, p)
}

// EnqueueOrderStatusEmail notifies the buyer that a seller moved their order
// to a new status, and records an in-app notification row.
func EnqueueOrderStatusEmail(orderID, orderNumber, buyerID, buyerEmail, status, notes string) error {
	title := fmt.Sprintf("Order %s %s", orderNumber, strings.ReplaceAll(status, "_", " "))
	p := OrderStatusPayload{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		BuyerID:     buyerID,
		Email:       buyerEmail,
		Status:      status,
		Notes:       notes,
		Envelope: EmailEnvelope{
			To:      buyerEmail,
			Subject: title,
			Body:    fmt.Sprintf("Hello,\n\nYour order %s has been updated.\n\n%s\n", orderNumber, notes),
		},
		SentAt: time.Now(),
	}

	insertNotification(buyerID, "order_status", title, notes, orderID)
	return enqueue(TaskOrderStatusUpdate, p)
}

// EnqueueWithdrawalRequestedEmail confirms a new payout request to the seller.
func EnqueueWithdrawalRequestedEmail(withdrawalID, sellerID string, amount float64) error {
	email, _ := lookupUserEmail(sellerID)
	title := "Withdrawal request received"
	body := fmt.Sprintf("We received your withdrawal request for %.2f. "+
		"You will be notified once it has been processed.\n", amount)

	p := WithdrawalEmailPayload{
		WithdrawalID: withdrawalID,
		SellerID:     sellerID,
		Amount:       amount,
		Status:       "pending",
		Envelope:     EmailEnvelope{To: email, Subject: title, Body: body},
		SentAt:       time.Now(),
	}

	insertNotification(sellerID, "withdrawal", title, body, withdrawalID)
	return enqueue(TaskWithdrawalRequested, p)
}

// EnqueueWithdrawalProcessedEmail notifies the seller of a payout lifecycle move.
func EnqueueWithdrawalProcessedEmail(withdrawalID, sellerID string, amount float64, status, reason string) error {
	email, _ := lookupUserEmail(sellerID)
	title := "Withdrawal " + status
	body := fmt.Sprintf("Your withdrawal request for %.2f is now %s.\n", amount, status)
	if reason != "" {
		body += fmt.Sprintf("\nReason: %s\n", reason)
	}

	p := WithdrawalEmailPayload{
		WithdrawalID: withdrawalID,
		SellerID:     sellerID,
		Amount:       amount,
		Status:       status,
		Reason:       reason,
		Envelope:     EmailEnvelope{To: email, Subject: title, Body: body},
		SentAt:       time.Now(),
	}

	insertNotification(sellerID, "withdrawal", title, body, withdrawalID)
	return enqueue(TaskWithdrawalStatusChanged, p)
}

func lookupUserEmail(userID string) (string, error) {
	var email string
	err := db.Conn.QueryRow(context.Background(),
		`SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	return email, err
}

// insertNotification writes the in-app notification row. Failures are logged
// by the caller's email path; the row itself is best-effort.
func insertNotification(userID, ntype, title, body, reference string) {
	_, _ = db.Conn.Exec(context.Background(), `
        INSERT INTO notifications (user_id, type, title, body, reference, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, ntype, title, body, reference, time.Now(),
	)
}
