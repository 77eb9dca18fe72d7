package store

import (
	"context"
	"fmt"
	"strings"
)

// schema holds the table definitions. Users must exist before expenses,
// and expenses before splits/items, because of the foreign keys.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id CHAR(36) PRIMARY KEY,
    email VARCHAR(255) NOT NULL UNIQUE,
    hashed_password VARCHAR(255) NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    username VARCHAR(255) NOT NULL DEFAULT 'User',
    subtitle VARCHAR(255) NOT NULL DEFAULT 'New User',
    profile_image_data LONGBLOB NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id CHAR(36) PRIMARY KEY,
    user_id CHAR(36) NOT NULL,
    title VARCHAR(255) NOT NULL,
    amount DECIMAL(12,2) NOT NULL,
    date DATETIME NOT NULL,
    category VARCHAR(32) NOT NULL,
    receipt_data LONGBLOB NULL,
    recipient_email VARCHAR(255) NULL,
    telegram_chat_id VARCHAR(64) NULL,
    created_at DATETIME NOT NULL,
    INDEX idx_expenses_user_id (user_id),
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS splits (
    id CHAR(36) PRIMARY KEY,
    expense_id CHAR(36) NOT NULL,
    name VARCHAR(255) NOT NULL,
    initials VARCHAR(16) NOT NULL,
    amount DECIMAL(12,2) NULL,
    INDEX idx_splits_expense_id (expense_id),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expense_items (
    id CHAR(36) PRIMARY KEY,
    expense_id CHAR(36) NOT NULL,
    name VARCHAR(255) NOT NULL,
    price DECIMAL(12,2) NOT NULL,
    quantity INT NOT NULL DEFAULT 1,
    image_data LONGBLOB NULL,
    INDEX idx_expense_items_expense_id (expense_id),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS friends (
    id CHAR(36) PRIMARY KEY,
    user_id CHAR(36) NOT NULL,
    name VARCHAR(255) NOT NULL,
    initials VARCHAR(16) NOT NULL,
    gradient_start VARCHAR(64) NOT NULL,
    gradient_end VARCHAR(64) NOT NULL,
    INDEX idx_friends_user_id (user_id),
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS saved_items (
    id CHAR(36) PRIMARY KEY,
    user_id CHAR(36) NOT NULL,
    name VARCHAR(255) NOT NULL,
    default_price DECIMAL(12,2) NOT NULL DEFAULT 0,
    INDEX idx_saved_items_user_id (user_id),
    FOREIGN KEY (user_id) REFERENCES users(id)
);
`

// Migrate creates any missing tables. The MySQL driver rejects multi-statement
// batches, so the schema is executed one statement at a time.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
