package services

import (
	"context"

	"expensetracker/internal/core"
)

// RecordStore is the outbound port to the durable record store. All calls
// are synchronous; implementations report failures with the sentinel errors
// in internal/apperrors.
type RecordStore interface {
	// FetchAll returns every stored transaction in a stable iteration
	// order (creation order for the provided implementations).
	FetchAll(ctx context.Context) ([]core.Transaction, error)

	// Create persists a new transaction and returns it with its assigned id.
	Create(ctx context.Context, in core.TransactionInput) (core.Transaction, error)

	// Update replaces the mutable fields of an existing transaction.
	Update(ctx context.Context, id string, in core.TransactionInput) error

	// Delete removes a transaction permanently.
	Delete(ctx context.Context, id string) error
}
