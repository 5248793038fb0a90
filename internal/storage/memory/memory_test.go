package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/apperrors"
	"expensetracker/internal/core"
)

func TestStoreCreateAndFetch(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.Create(ctx, core.TransactionInput{
		Title:    "Coffee",
		Amount:   decimal.NewFromFloat(4.50),
		Category: core.CategoryFood,
		Date:     time.Date(2025, 6, 14, 9, 0, 0, 0, time.Local),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	rows, err := s.FetchAll(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 1 || rows[0].Title != "Coffee" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestStoreCreateDefaultsZeroDate(t *testing.T) {
	s := New()
	created, err := s.Create(context.Background(), core.TransactionInput{
		Title: "Coffee", Amount: decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Date.IsZero() {
		t.Fatal("zero input date should default to creation time")
	}
}

func TestStoreFetchAllReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.Create(ctx, core.TransactionInput{Title: "Coffee", Amount: decimal.NewFromInt(5)}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, _ := s.FetchAll(ctx)
	rows[0].Title = "mutated"

	again, _ := s.FetchAll(ctx)
	if again[0].Title != "Coffee" {
		t.Fatal("FetchAll must return a copy")
	}
}

func TestStoreUpdate(t *testing.T) {
	s := New()
	ctx := context.Background()
	created, _ := s.Create(ctx, core.TransactionInput{
		Title: "Coffee", Amount: decimal.NewFromInt(5), Category: core.CategoryFood,
		Date: time.Date(2025, 6, 14, 0, 0, 0, 0, time.Local),
	})

	err := s.Update(ctx, created.ID, core.TransactionInput{
		Title: "Espresso", Amount: decimal.NewFromInt(3), Category: core.CategoryFood,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	rows, _ := s.FetchAll(ctx)
	if rows[0].Title != "Espresso" || !rows[0].Amount.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("update not applied: %+v", rows[0])
	}
	if !rows[0].Date.Equal(created.Date) {
		t.Fatal("zero input date must keep the stored date")
	}
	if rows[0].ID != created.ID {
		t.Fatal("id must be immutable")
	}
}

func TestStoreUpdateMissing(t *testing.T) {
	s := New()
	err := s.Update(context.Background(), "no-such-id", core.TransactionInput{
		Title: "x", Amount: decimal.NewFromInt(1),
	})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	created, _ := s.Create(ctx, core.TransactionInput{Title: "Coffee", Amount: decimal.NewFromInt(5)})

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, _ := s.FetchAll(ctx)
	if len(rows) != 0 {
		t.Fatalf("expected empty store, got %d rows", len(rows))
	}

	if err := s.Delete(ctx, created.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
