package models

import "github.com/shopspring/decimal"

// Split records one counterparty's share of an expense. Amount is optional
// and deliberately unconstrained against the parent total.
type Split struct {
	ID        string           `json:"id" db:"id"`
	ExpenseID string           `json:"expense_id" db:"expense_id"`
	Name      string           `json:"name" db:"name"`
	Initials  string           `json:"initials" db:"initials"`
	Amount    *decimal.Decimal `json:"amount,omitempty" db:"amount"`
}

type SplitCreate struct {
	Name     string           `json:"name"`
	Initials string           `json:"initials"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
}
