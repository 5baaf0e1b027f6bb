package models

// Expense represents a center expense
type Expense struct {
	ID        int64   `json:"id"`
	Reason    string  `json:"reason"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	CreatedBy string  `json:"created_by,omitempty"`
}

type ExpenseInput struct {
	Reason string  `json:"reason" form:"reason" validate:"required,max=255"`
	Amount float64 `json:"amount" form:"amount" validate:"gt=0"`
	Date   string  `json:"date" form:"date" validate:"required,datetime=2006-01-02"`
}

// ExpensePage is the decoded /api/expenses response.
type ExpensePage struct {
	Rows  []Expense `json:"data"`
	Total float64   `json:"total"`
}
