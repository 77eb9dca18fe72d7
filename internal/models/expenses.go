package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID             string          `json:"id" db:"id"`
	UserID         string          `json:"-" db:"user_id"`
	Title          string          `json:"title" db:"title"`
	Amount         decimal.Decimal `json:"amount" db:"amount"`
	Date           time.Time       `json:"date" db:"date"`
	Category       ExpenseCategory `json:"category" db:"category"`
	ReceiptData    []byte          `json:"receipt_data,omitempty" db:"receipt_data"`
	RecipientEmail string          `json:"recipient_email,omitempty" db:"recipient_email"`
	TelegramChatID string          `json:"telegram_chat_id,omitempty" db:"telegram_chat_id"`
	Splits         []Split         `json:"splits"`
	Items          []ExpenseItem   `json:"items"`
}

type ExpenseCreate struct {
	Title          string              `json:"title"`
	Amount         decimal.Decimal     `json:"amount"`
	Date           time.Time           `json:"date"`
	Category       ExpenseCategory     `json:"category"`
	ReceiptData    []byte              `json:"receipt_data,omitempty"`
	RecipientEmail string              `json:"recipient_email,omitempty"`
	TelegramChatID string              `json:"telegram_chat_id,omitempty"`
	Splits         []SplitCreate       `json:"splits"`
	Items          []ExpenseItemCreate `json:"items"`
}

// ExpenseUpdate is a sparse patch. A nil field means "leave unchanged". For
// Splits and Items a non-nil slice (even an empty one) replaces the whole
// child collection; nil leaves the existing children alone.
type ExpenseUpdate struct {
	Title          *string              `json:"title,omitempty"`
	Amount         *decimal.Decimal     `json:"amount,omitempty"`
	Date           *time.Time           `json:"date,omitempty"`
	Category       *ExpenseCategory     `json:"category,omitempty"`
	ReceiptData    []byte               `json:"receipt_data,omitempty"`
	RecipientEmail *string              `json:"recipient_email,omitempty"`
	Splits         *[]SplitCreate       `json:"splits,omitempty"`
	Items          *[]ExpenseItemCreate `json:"items,omitempty"`
}
