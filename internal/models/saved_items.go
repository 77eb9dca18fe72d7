package models

import "github.com/shopspring/decimal"

// SavedItem is a reusable line-item template. Names are not unique, neither
// within a user nor across users.
type SavedItem struct {
	ID           string          `json:"id" db:"id"`
	UserID       string          `json:"-" db:"user_id"`
	Name         string          `json:"name" db:"name"`
	DefaultPrice decimal.Decimal `json:"default_price" db:"default_price"`
}

type SavedItemCreate struct {
	Name         string          `json:"name"`
	DefaultPrice decimal.Decimal `json:"default_price"`
}
