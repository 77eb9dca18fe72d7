package models

import "fmt"

// ExpenseCategory is the closed set of expense categories. The string label
// is what gets persisted and what travels on the wire.
type ExpenseCategory string

const (
	CategoryLodging   ExpenseCategory = "Lodging"
	CategoryFood      ExpenseCategory = "Food"
	CategoryFun       ExpenseCategory = "Fun"
	CategoryTransport ExpenseCategory = "Transport"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryLodging, CategoryFood, CategoryFun, CategoryTransport:
		return true
	}
	return false
}

func (c ExpenseCategory) String() string {
	return string(c)
}

// ValidateCategory rejects any label outside the enumerated set before it
// reaches storage.
func ValidateCategory(c ExpenseCategory) error {
	if !c.Valid() {
		return fmt.Errorf("invalid category %q", string(c))
	}
	return nil
}
