package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrEmptyResultSet is returned by AveragePerTransaction when there is
// nothing to average over.
var ErrEmptyResultSet = errors.New("empty result set")

// Summary bundles the derived statistics for a filtered result set.
type Summary struct {
	Count      int
	Total      decimal.Decimal
	ByCategory map[Category]decimal.Decimal
	ByDay      map[time.Time]decimal.Decimal
}

// TotalSpending sums the amounts of the given transactions. An empty set
// yields zero.
func TotalSpending(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(t.Amount)
	}
	return total
}

// SpendingByCategory sums amounts per category. Categories with no matching
// transactions do not appear in the map.
func SpendingByCategory(txs []Transaction) map[Category]decimal.Decimal {
	out := make(map[Category]decimal.Decimal)
	for _, t := range txs {
		out[t.Category] = out[t.Category].Add(t.Amount)
	}
	return out
}

// SpendingTrend sums amounts per local calendar day (keyed by local
// midnight).
func SpendingTrend(txs []Transaction) map[time.Time]decimal.Decimal {
	out := make(map[time.Time]decimal.Decimal)
	for _, t := range txs {
		day := t.Day()
		out[day] = out[day].Add(t.Amount)
	}
	return out
}

// AveragePerTransaction returns total spending divided by the transaction
// count. It never divides by zero: an empty set returns ErrEmptyResultSet.
func AveragePerTransaction(txs []Transaction) (decimal.Decimal, error) {
	if len(txs) == 0 {
		return decimal.Zero, ErrEmptyResultSet
	}
	return TotalSpending(txs).Div(decimal.NewFromInt(int64(len(txs)))), nil
}

// Summarize computes all aggregates over the given result set. All values
// are pure functions of the input; nothing is cached or mutated.
func Summarize(txs []Transaction) Summary {
	return Summary{
		Count:      len(txs),
		Total:      TotalSpending(txs),
		ByCategory: SpendingByCategory(txs),
		ByDay:      SpendingTrend(txs),
	}
}

// Average is the checked-average convenience on a computed summary.
func (s Summary) Average() (decimal.Decimal, bool) {
	if s.Count == 0 {
		return decimal.Zero, false
	}
	return s.Total.Div(decimal.NewFromInt(int64(s.Count))), true
}
