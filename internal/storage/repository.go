// Package storage implements the durable record store on SQLite. It owns
// identity assignment and the persisted layout; it deliberately does not
// enforce the form-level invariants (positive amount, non-empty title), so
// records written through other paths surface as-is.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"expensetracker/internal/apperrors"
	"expensetracker/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// FetchAll implements services.RecordStore. Rows come back in creation
// order; malformed stored values degrade to defaults rather than failing
// the whole read.
func (r *SQLiteRepository) FetchAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list transactions: %v", apperrors.ErrStoreRead, err)
	}

	out := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.toDomain(ctx, row))
	}
	return out, nil
}

// Create implements services.RecordStore. It assigns the id and persists
// the record; a zero date defaults to the creation time.
func (r *SQLiteRepository) Create(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
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

	if err := r.queries.InsertTransaction(ctx, toRow(tx)); err != nil {
		return core.Transaction{}, fmt.Errorf("%w: insert transaction: %v", apperrors.ErrStoreWrite, err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"transaction_id", tx.ID,
		"title", tx.Title,
		"amount", tx.Amount.String(),
		"category", tx.Category.Label())

	return tx, nil
}

// Update implements services.RecordStore. Identity and existence are
// preserved; a zero input date keeps the stored date and a missing id
// reports apperrors.ErrNotFound.
func (r *SQLiteRepository) Update(ctx context.Context, id string, in core.TransactionInput) error {
	row := TransactionRow{
		ID:       id,
		Title:    in.Title,
		Amount:   in.Amount.String(),
		Category: in.Category.Label(),
	}
	if !in.Date.IsZero() {
		row.Date = in.Date.Format(time.RFC3339Nano)
	}

	affected, err := r.queries.UpdateTransaction(ctx, row)
	if err != nil {
		return fmt.Errorf("%w: update transaction: %v", apperrors.ErrStoreWrite, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, id)
	}
	return nil
}

// Delete implements services.RecordStore. Removal is irreversible; a
// missing id reports apperrors.ErrNotFound.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.queries.DeleteTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: delete transaction: %v", apperrors.ErrStoreWrite, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, id)
	}

	slog.InfoContext(ctx, "Transaction deleted from SQLite", "transaction_id", id)
	return nil
}

func toRow(tx core.Transaction) TransactionRow {
	return TransactionRow{
		ID:        tx.ID,
		Title:     tx.Title,
		Amount:    tx.Amount.String(),
		Category:  tx.Category.Label(),
		Date:      tx.Date.Format(time.RFC3339Nano),
		CreatedAt: tx.CreatedAt.Format(time.RFC3339Nano),
	}
}

// toDomain maps a raw row to the domain type. Unrecognized categories
// resolve to Other, an unset date falls back to created_at, and an
// unparsable amount is read as zero with a warning.
func (r *SQLiteRepository) toDomain(ctx context.Context, row TransactionRow) core.Transaction {
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		createdAt = time.Now()
	}

	date, err := time.Parse(time.RFC3339Nano, row.Date)
	if err != nil || date.IsZero() {
		date = createdAt
	}

	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		slog.WarnContext(ctx, "Unparsable stored amount, reading as zero",
			"transaction_id", row.ID,
			"amount", row.Amount)
		amount = decimal.Zero
	}

	return core.Transaction{
		ID:        row.ID,
		Title:     row.Title,
		Amount:    amount,
		Category:  core.ParseCategory(row.Category),
		Date:      date,
		CreatedAt: createdAt,
	}
}
