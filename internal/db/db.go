package db

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Conn *pgxpool.Pool

// Init connects to Postgres
func Init() {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	var err error
	Conn, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	if err = Conn.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	log.Println("Connected to Postgres successfully")

	// Ensure users table exists before anything that references it
	ensureUsersTable()

	// Ensure users.is_active exists for suspend/activate functionality
	ensureUsersColumns()

	// Ensure orders schema and status constraint match handlers
	ensureOrdersSchema()

	// Ensure order_tracking table exists for the status audit trail
	ensureOrderTrackingTable()

	// Ensure seller bank details table exists
	ensureBankDetailsTable()

	// Ensure withdrawals table and status constraint exist
	ensureWithdrawalsSchema()

	// Ensure seller earnings ledger exists
	ensureEarningsTable()

	// Ensure notifications table exists for in-app alerts
	ensureNotificationsTable()
}

// ensureUsersTable creates the users table if missing
func ensureUsersTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'buyer' CHECK (role IN ('buyer', 'seller', 'admin')),
            store_name TEXT NULL,
            bio TEXT NULL,
            avatar_url TEXT NULL,
            is_active BOOLEAN DEFAULT TRUE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
    `)
	if err != nil {
		log.Printf("failed to ensure users table: %v", err)
	}
}

// ensureUsersColumns adds users.is_active if missing
func ensureUsersColumns() {
	ctx := context.Background()
	var exists bool
	err := Conn.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM information_schema.columns
            WHERE table_schema = 'public' AND table_name = 'users' AND column_name = 'is_active'
        )`).Scan(&exists)
	if err != nil {
		log.Printf("schema check failed: %v", err)
		return
	}
	if exists {
		return
	}
	_, err = Conn.Exec(ctx, `ALTER TABLE users ADD COLUMN IF NOT EXISTS is_active BOOLEAN DEFAULT TRUE`)
	if err != nil {
		log.Printf("failed to add is_active column: %v", err)
		return
	}
	// Backfill any NULLs (in case default didn't apply retroactively)
	_, err = Conn.Exec(ctx, `UPDATE users SET is_active = TRUE WHERE is_active IS NULL`)
	if err != nil {
		log.Printf("failed to backfill is_active: %v", err)
		return
	}
	log.Printf("users.is_active column ensured")
}

// ensureOrdersSchema ensures the orders and order_items tables exist with the
// columns and status constraints the handlers rely on
func ensureOrdersSchema() {
	ctx := context.Background()

	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            order_number TEXT NOT NULL UNIQUE,
            buyer_id UUID NOT NULL REFERENCES users(id),
            status TEXT NOT NULL DEFAULT 'pending',
            payment_status TEXT NOT NULL DEFAULT 'pending',
            subtotal NUMERIC(12,2) NOT NULL DEFAULT 0,
            total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
            customer_notes TEXT DEFAULT '',
            tracking_id TEXT DEFAULT '',
            courier_name TEXT DEFAULT '',
            confirmed_at TIMESTAMP WITH TIME ZONE NULL,
            shipped_at TIMESTAMP WITH TIME ZONE NULL,
            delivered_at TIMESTAMP WITH TIME ZONE NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE TABLE IF NOT EXISTS order_items (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            seller_id UUID NOT NULL REFERENCES users(id),
            product_name TEXT NOT NULL,
            quantity INTEGER NOT NULL DEFAULT 1,
            unit_price NUMERIC(12,2) NOT NULL,
            total_price NUMERIC(12,2) NULL
        );
        CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
        CREATE INDEX IF NOT EXISTS idx_order_items_seller ON order_items(seller_id);
    `)
	if err != nil {
		log.Printf("failed to ensure orders schema: %v", err)
	}

	// Attempt to drop the existing auto-named check constraint if present
	_, _ = Conn.Exec(ctx, `ALTER TABLE orders DROP CONSTRAINT IF EXISTS orders_status_check`)

	_, err = Conn.Exec(ctx, `
        ALTER TABLE orders
        ADD CONSTRAINT orders_status_check
        CHECK (status IN ('pending', 'confirmed', 'processing', 'shipped', 'delivered', 'cancelled'))`)
	if err != nil {
		log.Printf("failed to update orders status constraint: %v", err)
	}

	_, _ = Conn.Exec(ctx, `ALTER TABLE orders DROP CONSTRAINT IF EXISTS orders_payment_status_check`)
	_, err = Conn.Exec(ctx, `
        ALTER TABLE orders
        ADD CONSTRAINT orders_payment_status_check
        CHECK (payment_status IN ('pending', 'completed', 'failed', 'refunded'))`)
	if err != nil {
		log.Printf("failed to update orders payment status constraint: %v", err)
	}
}

// ensureOrderTrackingTable creates the per-transition audit table if missing
func ensureOrderTrackingTable() {
	ctx := context.Background()
	var exists bool
	_ = Conn.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM information_schema.tables
            WHERE table_schema = 'public' AND table_name = 'order_tracking'
        )`).Scan(&exists)
	if exists {
		return
	}
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS order_tracking (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            status TEXT NOT NULL,
            notes TEXT DEFAULT '',
            tracking_id TEXT DEFAULT '',
            courier_name TEXT DEFAULT '',
            created_by UUID NULL REFERENCES users(id) ON DELETE SET NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_order_tracking_order ON order_tracking(order_id, created_at);
    `)
	if err != nil {
		log.Printf("failed to create order_tracking table: %v", err)
	}
}

// ensureBankDetailsTable creates the seller bank details table if missing
func ensureBankDetailsTable() {
	ctx := context.Background()
	var exists bool
	_ = Conn.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM information_schema.tables
            WHERE table_schema = 'public' AND table_name = 'bank_details'
        )`).Scan(&exists)
	if exists {
		return
	}
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS bank_details (
            seller_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
            account_holder_name TEXT NOT NULL,
            bank_name TEXT NOT NULL,
            account_number TEXT NOT NULL,
            ifsc_code TEXT NOT NULL,
            mobile_number TEXT NOT NULL,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
    `)
	if err != nil {
		log.Printf("failed to create bank_details table: %v", err)
	}
}

// ensureWithdrawalsSchema creates the withdrawals table and keeps its status
// constraint in sync with the payout lifecycle handlers
func ensureWithdrawalsSchema() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS withdrawals (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            seller_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            amount NUMERIC(12,2) NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            account_holder_name TEXT NOT NULL,
            bank_name TEXT NOT NULL,
            account_number TEXT NOT NULL,
            ifsc_code TEXT NOT NULL,
            mobile_number TEXT NOT NULL,
            rejection_reason TEXT DEFAULT '',
            requested_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            processed_at TIMESTAMP WITH TIME ZONE NULL,
            processed_by UUID NULL REFERENCES users(id) ON DELETE SET NULL
        );
        CREATE INDEX IF NOT EXISTS idx_withdrawals_seller ON withdrawals(seller_id, requested_at);
        CREATE INDEX IF NOT EXISTS idx_withdrawals_status ON withdrawals(status);
    `)
	if err != nil {
		log.Printf("failed to ensure withdrawals schema: %v", err)
	}

	_, _ = Conn.Exec(ctx, `ALTER TABLE withdrawals DROP CONSTRAINT IF EXISTS withdrawals_status_check`)
	_, err = Conn.Exec(ctx, `
        ALTER TABLE withdrawals
        ADD CONSTRAINT withdrawals_status_check
        CHECK (status IN ('pending', 'processing', 'completed', 'failed', 'rejected'))`)
	if err != nil {
		log.Printf("failed to update withdrawals status constraint: %v", err)
	}
}

// ensureEarningsTable creates the seller earnings ledger if missing
func ensureEarningsTable() {
	ctx := context.Background()
	var exists bool
	_ = Conn.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM information_schema.tables
            WHERE table_schema = 'public' AND table_name = 'seller_earnings'
        )`).Scan(&exists)
	if exists {
		return
	}
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS seller_earnings (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            seller_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            order_item_id UUID NOT NULL REFERENCES order_items(id) ON DELETE CASCADE,
            gross_amount NUMERIC(12,2) NOT NULL,
            platform_fee NUMERIC(12,2) NOT NULL DEFAULT 0,
            net_amount NUMERIC(12,2) NOT NULL,
            is_withdrawn BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            UNIQUE (seller_id, order_item_id)
        );
        CREATE INDEX IF NOT EXISTS idx_seller_earnings_available ON seller_earnings(seller_id, created_at) WHERE is_withdrawn = FALSE;
    `)
	if err != nil {
		log.Printf("failed to create seller_earnings table: %v", err)
	}
}

// ensureNotificationsTable creates notifications table if it doesn't exist
func ensureNotificationsTable() {
	ctx := context.Background()
	var exists bool
	_ = Conn.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM information_schema.tables
            WHERE table_schema = 'public' AND table_name = 'notifications'
        )`).Scan(&exists)
	if exists {
		return
	}
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS notifications (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            type TEXT NOT NULL,
            title TEXT NOT NULL,
            body TEXT,
            reference UUID NULL,
            metadata JSONB NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            read_at TIMESTAMP WITH TIME ZONE NULL
        );
        CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON notifications(user_id) WHERE read_at IS NULL;
    `)
	if err != nil {
		log.Printf("failed to create notifications table: %v", err)
	}
}
