package data

import (
	"context"
	"net/http"

	"github.com/Rahmadjon0038/new-lms/app/models"
)

// Expenses lists a month's expenses. When the backend sends no total the
// sum of the rows is shown instead.
func (s *Store) Expenses(ctx context.Context, m string) (models.ExpensePage, error) {
	page, err := object[models.ExpensePage](ctx, s, "/api/expenses", monthQuery(m))
	if err != nil {
		return page, err
	}
	if page.Rows == nil {
		page.Rows = []models.Expense{}
	}
	if page.Total == 0 {
		for _, e := range page.Rows {
			page.Total += e.Amount
		}
	}
	return page, nil
}

func (s *Store) CreateExpense(ctx context.Context, in models.ExpenseInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	return s.mutate(ctx, http.MethodPost, "/api/expenses", in, nil, "/api/expenses", "/api/dashboard")
}

func (s *Store) UpdateExpense(ctx context.Context, expenseID int64, in models.ExpenseInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	return s.mutate(ctx, http.MethodPut, "/api/expenses/"+id(expenseID), in, nil, "/api/expenses", "/api/dashboard")
}

func (s *Store) DeleteExpense(ctx context.Context, expenseID int64) error {
	return s.mutate(ctx, http.MethodDelete, "/api/expenses/"+id(expenseID), nil, nil, "/api/expenses", "/api/dashboard")
}
