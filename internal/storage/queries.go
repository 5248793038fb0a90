package storage

import (
	"context"
	"database/sql"
)

const listTransactions = `
SELECT id, title, amount, category, date, created_at
FROM transactions
ORDER BY rowid
`

const insertTransaction = `
INSERT INTO transactions (id, title, amount, category, date, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`

const updateTransaction = `
UPDATE transactions
SET title = ?, amount = ?, category = ?, date = ?
WHERE id = ?
`

const updateTransactionKeepDate = `
UPDATE transactions
SET title = ?, amount = ?, category = ?
WHERE id = ?
`

const deleteTransaction = `
DELETE FROM transactions
WHERE id = ?
`

const countTransactions = `
SELECT COUNT(*) FROM transactions
`

// Queries is the low-level statement layer over the transactions table.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// TransactionRow mirrors the raw column layout; the repository maps it to
// the domain type.
type TransactionRow struct {
	ID        string
	Title     string
	Amount    string
	Category  string
	Date      string
	CreatedAt string
}

// ListTransactions returns every row in insertion order. rowid is assigned
// monotonically on insert, so this holds even for rows created within the
// same timestamp granularity; the base order is what makes the date sort's
// tie-break deterministic.
func (q *Queries) ListTransactions(ctx context.Context) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TransactionRow
	for rows.Next() {
		var row TransactionRow
		if err := rows.Scan(&row.ID, &row.Title, &row.Amount, &row.Category, &row.Date, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (q *Queries) InsertTransaction(ctx context.Context, row TransactionRow) error {
	_, err := q.db.ExecContext(ctx, insertTransaction,
		row.ID, row.Title, row.Amount, row.Category, row.Date, row.CreatedAt)
	return err
}

// UpdateTransaction returns the number of affected rows so the repository
// can distinguish a missing id from a write failure. An empty Date leaves
// the stored date untouched.
func (q *Queries) UpdateTransaction(ctx context.Context, row TransactionRow) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if row.Date == "" {
		res, err = q.db.ExecContext(ctx, updateTransactionKeepDate,
			row.Title, row.Amount, row.Category, row.ID)
	} else {
		res, err = q.db.ExecContext(ctx, updateTransaction,
			row.Title, row.Amount, row.Category, row.Date, row.ID)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) DeleteTransaction(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTransaction, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTransactions).Scan(&n)
	return n, err
}
