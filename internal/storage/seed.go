package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
)

// DemoTransactions returns a month of sample expenses, newest a day old,
// spread one per day going backwards from now.
func DemoTransactions(now time.Time) []core.TransactionInput {
	samples := []struct {
		title    string
		amount   string
		category core.Category
	}{
		{"Coffee", "4.50", core.CategoryFood},
		{"Lunch", "12.99", core.CategoryFood},
		{"Gas", "45.00", core.CategoryTransport},
		{"Netflix", "15.99", core.CategoryEntertainment},
		{"Groceries", "78.50", core.CategoryFood},
		{"Uber", "8.75", core.CategoryTransport},
		{"Electric Bill", "120.00", core.CategoryBills},
		{"Movie", "12.00", core.CategoryEntertainment},
		{"Pharmacy", "25.99", core.CategoryHealthcare},
		{"Clothes", "89.99", core.CategoryShopping},
		{"Dinner", "35.50", core.CategoryFood},
		{"Bus Pass", "30.00", core.CategoryTransport},
		{"Phone Bill", "65.00", core.CategoryBills},
		{"Books", "45.00", core.CategoryShopping},
		{"Doctor Visit", "150.00", core.CategoryHealthcare},
	}

	out := make([]core.TransactionInput, 0, len(samples))
	for i, s := range samples {
		amount, _ := decimal.NewFromString(s.amount)
		out = append(out, core.TransactionInput{
			Title:    s.title,
			Amount:   amount,
			Category: s.category,
			Date:     now.AddDate(0, 0, -(i + 1)),
		})
	}
	return out
}

// SeedDemoData populates an empty store with the demo transactions. It is a
// no-op when the store already holds records.
func (r *SQLiteRepository) SeedDemoData(ctx context.Context) error {
	n, err := r.queries.CountTransactions(ctx)
	if err != nil {
		return fmt.Errorf("count transactions: %w", err)
	}
	if n > 0 {
		return nil
	}

	inputs := DemoTransactions(time.Now())
	for _, in := range inputs {
		if _, err := r.Create(ctx, in); err != nil {
			return fmt.Errorf("seed transaction %q: %w", in.Title, err)
		}
	}

	slog.InfoContext(ctx, "Seeded demo transactions", "count", len(inputs))
	return nil
}
