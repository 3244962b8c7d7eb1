package repository

import (
	"context"
	"database/sql"
)

// ExpenseRepo stores recurring property expenses.
type ExpenseRepo struct{ db *sql.DB }

func NewExpenseRepo(db *sql.DB) *ExpenseRepo { return &ExpenseRepo{db: db} }

func (r *ExpenseRepo) Upsert(ctx context.Context, e Expense) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO expenses(property_id, category, amount, frequency, sort_order)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(property_id, category) DO UPDATE SET
	 amount=excluded.amount,
	 frequency=excluded.frequency,
	 sort_order=excluded.sort_order;
	`, e.PropertyID, e.Category, e.Amount, e.Frequency, e.SortOrder)
	return err
}

func (r *ExpenseRepo) ListByProperty(ctx context.Context, propertyID string) ([]Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT property_id, category, amount, frequency, sort_order
	FROM expenses WHERE property_id = ? ORDER BY sort_order, category`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.PropertyID, &e.Category, &e.Amount, &e.Frequency, &e.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
