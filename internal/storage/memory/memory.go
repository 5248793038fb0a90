// Package memory implements the record store on an in-memory slice. It
// backs the memory data backend and the service tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"expensetracker/internal/apperrors"
	"expensetracker/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New() *Store {
	return &Store{}
}

// FetchAll returns a copy of every record in insertion order.
func (s *Store) FetchAll(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Create assigns an id and stores the record. A zero date defaults to the
// creation time. Like the SQLite store, no form-level validation happens
// here.
func (s *Store) Create(_ context.Context, in core.TransactionInput) (core.Transaction, error) {
	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	tx := core.Transaction{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Amount:    in.Amount,
		Category:  in.Category,
		Date:      date,
		CreatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, tx)
	return tx, nil
}

// Update replaces the mutable fields of the record with the given id.
func (s *Store) Update(_ context.Context, id string, in core.TransactionInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Title = in.Title
			s.items[i].Amount = in.Amount
			s.items[i].Category = in.Category
			if !in.Date.IsZero() {
				s.items[i].Date = in.Date
			}
			return nil
		}
	}
	return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, id)
}

// Delete removes the record with the given id.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, id)
}
