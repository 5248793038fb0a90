package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// Transaction is the sole persisted entity: a single recorded expense.
	Transaction struct {
		ID        string // assigned by the store at creation, immutable
		Title     string
		Amount    decimal.Decimal
		Category  Category
		Date      time.Time
		CreatedAt time.Time
	}

	// TransactionInput is the validated draft used for create and edit
	// operations. It never carries an ID; the store owns identity.
	TransactionInput struct {
		Title    string
		Amount   decimal.Decimal
		Category Category
		Date     time.Time
	}
)

var (
	ErrEmptyTitle    = errors.New("empty title")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrTitleTooLong  = errors.New("title too long (max 200 characters)")
)

// Validate checks the form-level invariants. The storage layer itself does
// not enforce these; records written through other paths may violate them.
func (in TransactionInput) Validate() error {
	if len(strings.TrimSpace(in.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(in.Title) > 200 {
		return ErrTitleTooLong
	}
	if in.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Day returns the local calendar day the transaction falls on (midnight,
// local time). Aggregation buckets the spending trend by this value.
func (t Transaction) Day() time.Time {
	year, month, day := t.Date.In(time.Local).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
