package models

import "github.com/shopspring/decimal"

type ExpenseItem struct {
	ID        string          `json:"id" db:"id"`
	ExpenseID string          `json:"expense_id" db:"expense_id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Quantity  int             `json:"quantity" db:"quantity"`
	ImageData []byte          `json:"image_data,omitempty" db:"image_data"`
}

type ExpenseItemCreate struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageData []byte          `json:"image_data,omitempty"`
}
