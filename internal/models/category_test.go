package models

import "testing"

func TestCategoryValidation(t *testing.T) {
	for _, c := range []ExpenseCategory{CategoryLodging, CategoryFood, CategoryFun, CategoryTransport} {
		if err := ValidateCategory(c); err != nil {
			t.Errorf("ValidateCategory(%q) = %v, want nil", c, err)
		}
	}

	for _, c := range []ExpenseCategory{"", "food", "Gambling", "FOOD"} {
		if err := ValidateCategory(c); err == nil {
			t.Errorf("ValidateCategory(%q) = nil, want error", c)
		}
	}
}
