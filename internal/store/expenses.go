package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"weexpense/internal/models"
)

const expenseColumns = "id, user_id, title, amount, date, category, receipt_data, recipient_email, telegram_chat_id"

// CreateExpense persists the expense row plus every draft split and item as
// one atomic unit. Either everything lands or nothing does.
func (s *Store) CreateExpense(ctx context.Context, userID string, draft models.ExpenseCreate) (*models.Expense, error) {
	expense := &models.Expense{
		ID:             uuid.New().String(),
		UserID:         userID,
		Title:          draft.Title,
		Amount:         draft.Amount,
		Date:           draft.Date,
		Category:       draft.Category,
		ReceiptData:    draft.ReceiptData,
		RecipientEmail: draft.RecipientEmail,
		TelegramChatID: draft.TelegramChatID,
		Splits:         []models.Split{},
		Items:          []models.ExpenseItem{},
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, user_id, title, amount, date, category, receipt_data, recipient_email, telegram_chat_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.UserID, expense.Title, expense.Amount, expense.Date, expense.Category.String(),
		expense.ReceiptData, nullString(expense.RecipientEmail), nullString(expense.TelegramChatID), time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}

	splits, err := insertSplits(ctx, tx, expense.ID, draft.Splits)
	if err != nil {
		return nil, err
	}
	expense.Splits = splits

	items, err := insertItems(ctx, tx, expense.ID, draft.Items)
	if err != nil {
		return nil, err
	}
	expense.Items = items

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return expense, nil
}

// GetExpense loads an expense with its splits and items, scoped to the owner.
// A foreign expense id behaves exactly like a missing one.
func (s *Store) GetExpense(ctx context.Context, expenseID, userID string) (*models.Expense, error) {
	return getExpense(ctx, s.db, expenseID, userID)
}

// ListExpenses returns up to limit expenses for the user in creation order,
// skipping the first skip rows, children included.
func (s *Store) ListExpenses(ctx context.Context, userID string, skip, limit int) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE user_id = ? ORDER BY created_at LIMIT ? OFFSET ?",
		userID, limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		if err := loadChildren(ctx, s.db, &expenses[i]); err != nil {
			return nil, err
		}
	}

	return expenses, nil
}

// DeleteExpense removes the expense and all of its splits and items in one
// transaction and returns the deleted snapshot.
func (s *Store) DeleteExpense(ctx context.Context, expenseID, userID string) (*models.Expense, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expense, err := getExpense(ctx, tx, expenseID, userID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM splits WHERE expense_id = ?", expense.ID); err != nil {
		return nil, fmt.Errorf("failed to delete splits: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_items WHERE expense_id = ?", expense.ID); err != nil {
		return nil, fmt.Errorf("failed to delete items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ? AND user_id = ?", expense.ID, userID); err != nil {
		return nil, fmt.Errorf("failed to delete expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return expense, nil
}

// UpdateExpense applies a sparse patch. Scalar fields present in the patch
// overwrite; a present Splits or Items slice replaces that child collection
// wholesale (delete-then-insert). The whole update is one transaction.
func (s *Store) UpdateExpense(ctx context.Context, expenseID, userID string, patch models.ExpenseUpdate) (*models.Expense, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expense, err := getExpense(ctx, tx, expenseID, userID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		expense.Title = *patch.Title
	}
	if patch.Amount != nil {
		expense.Amount = *patch.Amount
	}
	if patch.Date != nil {
		expense.Date = *patch.Date
	}
	if patch.Category != nil {
		expense.Category = *patch.Category
	}
	if patch.ReceiptData != nil {
		expense.ReceiptData = patch.ReceiptData
	}
	if patch.RecipientEmail != nil {
		expense.RecipientEmail = *patch.RecipientEmail
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE expenses SET title = ?, amount = ?, date = ?, category = ?, receipt_data = ?, recipient_email = ? WHERE id = ? AND user_id = ?",
		expense.Title, expense.Amount, expense.Date, expense.Category.String(),
		expense.ReceiptData, nullString(expense.RecipientEmail), expense.ID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	if patch.Splits != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM splits WHERE expense_id = ?", expense.ID); err != nil {
			return nil, fmt.Errorf("failed to reset splits: %w", err)
		}
		splits, err := insertSplits(ctx, tx, expense.ID, *patch.Splits)
		if err != nil {
			return nil, err
		}
		expense.Splits = splits
	}

	if patch.Items != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM expense_items WHERE expense_id = ?", expense.ID); err != nil {
			return nil, fmt.Errorf("failed to reset items: %w", err)
		}
		items, err := insertItems(ctx, tx, expense.ID, *patch.Items)
		if err != nil {
			return nil, err
		}
		expense.Items = items
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return expense, nil
}

func getExpense(ctx context.Context, q querier, expenseID, userID string) (*models.Expense, error) {
	row := q.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ? AND user_id = ?",
		expenseID, userID,
	)

	expense, err := scanExpenseRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query expense: %w", err)
	}

	if err := loadChildren(ctx, q, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpenseFields(sc rowScanner) (*models.Expense, error) {
	var (
		expense        models.Expense
		category       string
		recipientEmail sql.NullString
		telegramChatID sql.NullString
	)
	err := sc.Scan(&expense.ID, &expense.UserID, &expense.Title, &expense.Amount, &expense.Date,
		&category, &expense.ReceiptData, &recipientEmail, &telegramChatID)
	if err != nil {
		return nil, err
	}
	expense.Category = models.ExpenseCategory(category)
	expense.RecipientEmail = recipientEmail.String
	expense.TelegramChatID = telegramChatID.String
	expense.Splits = []models.Split{}
	expense.Items = []models.ExpenseItem{}
	return &expense, nil
}

func scanExpense(rows *sql.Rows) (*models.Expense, error) {
	expense, err := scanExpenseFields(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}
	return expense, nil
}

func scanExpenseRow(row *sql.Row) (*models.Expense, error) {
	return scanExpenseFields(row)
}

func loadChildren(ctx context.Context, q querier, expense *models.Expense) error {
	rows, err := q.QueryContext(ctx,
		"SELECT id, expense_id, name, initials, amount FROM splits WHERE expense_id = ?",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to query splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			split  models.Split
			amount decimal.NullDecimal
		)
		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.Name, &split.Initials, &amount); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		split.Amount = fromNullDecimal(amount)
		expense.Splits = append(expense.Splits, split)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}

	itemRows, err := q.QueryContext(ctx,
		"SELECT id, expense_id, name, price, quantity, image_data FROM expense_items WHERE expense_id = ?",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to query items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.ExpenseItem
		if err := itemRows.Scan(&item.ID, &item.ExpenseID, &item.Name, &item.Price, &item.Quantity, &item.ImageData); err != nil {
			return fmt.Errorf("failed to scan item: %w", err)
		}
		expense.Items = append(expense.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate items: %w", err)
	}

	return nil
}

func insertSplits(ctx context.Context, q querier, expenseID string, drafts []models.SplitCreate) ([]models.Split, error) {
	splits := make([]models.Split, 0, len(drafts))
	for _, draft := range drafts {
		split := models.Split{
			ID:        uuid.New().String(),
			ExpenseID: expenseID,
			Name:      draft.Name,
			Initials:  draft.Initials,
			Amount:    draft.Amount,
		}
		_, err := q.ExecContext(ctx,
			"INSERT INTO splits (id, expense_id, name, initials, amount) VALUES (?, ?, ?, ?, ?)",
			split.ID, split.ExpenseID, split.Name, split.Initials, nullDecimal(split.Amount),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert split: %w", err)
		}
		splits = append(splits, split)
	}
	return splits, nil
}

func insertItems(ctx context.Context, q querier, expenseID string, drafts []models.ExpenseItemCreate) ([]models.ExpenseItem, error) {
	items := make([]models.ExpenseItem, 0, len(drafts))
	for _, draft := range drafts {
		quantity := draft.Quantity
		if quantity == 0 {
			quantity = 1
		}
		item := models.ExpenseItem{
			ID:        uuid.New().String(),
			ExpenseID: expenseID,
			Name:      draft.Name,
			Price:     draft.Price,
			Quantity:  quantity,
			ImageData: draft.ImageData,
		}
		_, err := q.ExecContext(ctx,
			"INSERT INTO expense_items (id, expense_id, name, price, quantity, image_data) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, item.ExpenseID, item.Name, item.Price, item.Quantity, item.ImageData,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}
