package core

import (
	"sort"
	"strings"
	"time"
)

// Filter is the session-scoped filter state: free-text search over titles,
// an optional single-category selection, and the active date range. The
// zero-ish default (empty search, nil category, all-time range) passes every
// transaction.
type Filter struct {
	Search   string
	Category *Category
	Range    DateRange
}

// DefaultFilter returns the initial filter state.
func DefaultFilter() Filter {
	return Filter{Range: AllTime()}
}

// IsActive reports whether any dimension narrows the result set.
func (f Filter) IsActive() bool {
	return f.Search != "" || f.Category != nil || f.Range.Kind != RangeAllTime
}

// Predicate composes the three filter dimensions into a single match
// function resolved against now. A transaction passes only if it satisfies
// every active dimension; an empty dimension always passes. The returned
// predicate is pure: it reads nothing beyond its inputs.
func (f Filter) Predicate(now time.Time) func(Transaction) bool {
	search := strings.ToLower(f.Search)
	return func(t Transaction) bool {
		if search != "" && !strings.Contains(strings.ToLower(t.Title), search) {
			return false
		}
		if f.Category != nil && t.Category != *f.Category {
			return false
		}
		return f.Range.Contains(t.Date, now)
	}
}

// SortByDateDesc orders transactions newest first. The sort is stable:
// transactions with equal dates keep their incoming order, which for
// store-backed slices is creation order.
func SortByDateDesc(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
}
