// Package services hosts the query/aggregation engine: the Tracker owns the
// session filter state, runs the composite query against the record store,
// and publishes results and aggregates to subscribers.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"expensetracker/internal/apperrors"
	"expensetracker/internal/core"
	"expensetracker/internal/log"
)

// Snapshot is what subscribers receive after every recomputation: the
// filtered, date-descending result set and its aggregates.
type Snapshot struct {
	Filter  core.Filter
	Results []core.Transaction
	Summary core.Summary
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the wall clock used to resolve relative date ranges.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// Tracker is the filter-state controller. It takes its store handle at
// construction and keeps no ambient state; every transition synchronously
// re-runs the query and aggregation before returning.
//
// The mutex is the serialization point for concurrent presentation-layer
// callers; each guarded section sees a consistent store snapshot.
type Tracker struct {
	mu     sync.Mutex
	store  RecordStore
	logger *log.Logger
	now    func() time.Time

	filter      core.Filter
	results     []core.Transaction
	subscribers []func(Snapshot)
}

// NewTracker builds a Tracker with the default filter state (empty search,
// no category, all-time range). Call Refresh once after wiring to load the
// initial result set.
func NewTracker(store RecordStore, logger *log.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		store:  store,
		logger: logger.WithComponent(log.ComponentTracker),
		now:    time.Now,
		filter: core.DefaultFilter(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Subscribe registers fn to run after every recomputation. Subscribers are
// invoked synchronously, in registration order, while the transition that
// triggered them completes.
func (t *Tracker) Subscribe(fn func(Snapshot)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = append(t.subscribers, fn)
}

// Refresh re-runs the composite query and aggregation against the store.
func (t *Tracker) Refresh(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refresh(ctx)
}

// refresh is the query executor. On a store read failure the visible result
// set degrades to empty and the error is surfaced; there is no retry.
// Matching rows are sorted newest first; the stable sort keeps creation
// order for equal dates (the store returns rows in creation order).
func (t *Tracker) refresh(ctx context.Context) error {
	rows, err := t.store.FetchAll(ctx)
	if err != nil {
		t.results = nil
		t.logger.ErrorContext(ctx, "Record store read failed, result set degraded to empty",
			log.FieldError, err,
			log.FieldOperation, log.OpQuery)
		t.notify()
		return fmt.Errorf("fetch transactions: %w", err)
	}

	pred := t.filter.Predicate(t.now())
	matched := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		if pred(row) {
			matched = append(matched, row)
		}
	}
	core.SortByDateDesc(matched)
	t.results = matched

	t.logger.DebugContext(ctx, "Query recomputed",
		log.FieldResultCount, len(matched),
		log.FieldSearch, t.filter.Search,
		log.FieldDateRange, t.filter.Range.Kind.Label(),
		log.FieldOperation, log.OpQuery)

	t.notify()
	return nil
}

func (t *Tracker) notify() {
	snap := t.snapshotLocked()
	for _, fn := range t.subscribers {
		fn(snap)
	}
}

func (t *Tracker) snapshotLocked() Snapshot {
	results := make([]core.Transaction, len(t.results))
	copy(results, t.results)
	return Snapshot{
		Filter:  t.filter,
		Results: results,
		Summary: core.Summarize(t.results),
	}
}

// SetSearchText updates the search dimension and recomputes.
func (t *Tracker) SetSearchText(ctx context.Context, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter.Search = text
	return t.refresh(ctx)
}

// SetCategoryFilter selects a single category, or all categories when nil,
// and recomputes.
func (t *Tracker) SetCategoryFilter(ctx context.Context, category *core.Category) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter.Category = category
	return t.refresh(ctx)
}

// SetDateRange updates the date-range dimension and recomputes.
func (t *Tracker) SetDateRange(ctx context.Context, r core.DateRange) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter.Range = r
	return t.refresh(ctx)
}

// ClearFilters resets all three dimensions to their defaults and recomputes.
func (t *Tracker) ClearFilters(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter = core.DefaultFilter()
	return t.refresh(ctx)
}

// Filter returns the active filter state.
func (t *Tracker) Filter() core.Filter {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filter
}

// CurrentResults returns the post-filter result set, sorted by date
// descending.
func (t *Tracker) CurrentResults() []core.Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	results := make([]core.Transaction, len(t.results))
	copy(results, t.results)
	return results
}

// CurrentAggregates computes the derived statistics over the current result
// set.
func (t *Tracker) CurrentAggregates() core.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return core.Summarize(t.results)
}

// Snapshot returns the current results and aggregates together.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// AddTransaction validates the draft, persists it, and recomputes. A
// validation failure never reaches the store; a write failure leaves the
// visible state unchanged.
func (t *Tracker) AddTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	if err := in.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	created, err := t.store.Create(ctx, in)
	if err != nil {
		t.logger.ErrorContext(ctx, "Failed to create transaction",
			log.FieldError, err,
			log.FieldTitle, in.Title,
			log.FieldOperation, log.OpCreate)
		return core.Transaction{}, err
	}

	t.logger.InfoContext(ctx, "Transaction created",
		log.FieldTransactionID, created.ID,
		log.FieldTitle, created.Title,
		log.FieldAmount, created.Amount.String(),
		log.FieldCategory, created.Category.Label(),
		log.FieldOperation, log.OpCreate)

	if err := t.refresh(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// EditTransaction validates the draft and updates the stored record,
// preserving id and existence, then recomputes. Editing a record that no
// longer exists is a warned no-op reported as apperrors.ErrNotFound.
func (t *Tracker) EditTransaction(ctx context.Context, id string, in core.TransactionInput) error {
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Update(ctx, id, in); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			t.logger.WarnContext(ctx, "Edit of missing transaction ignored",
				log.FieldTransactionID, id,
				log.FieldOperation, log.OpUpdate)
			return err
		}
		t.logger.ErrorContext(ctx, "Failed to update transaction",
			log.FieldError, err,
			log.FieldTransactionID, id,
			log.FieldOperation, log.OpUpdate)
		return err
	}

	return t.refresh(ctx)
}

// DeleteTransaction removes the record and recomputes. Deleting a missing
// id is a warned no-op that leaves the result set untouched and reports
// apperrors.ErrNotFound.
func (t *Tracker) DeleteTransaction(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			t.logger.WarnContext(ctx, "Delete of missing transaction ignored",
				log.FieldTransactionID, id,
				log.FieldOperation, log.OpDelete)
			return err
		}
		t.logger.ErrorContext(ctx, "Failed to delete transaction",
			log.FieldError, err,
			log.FieldTransactionID, id,
			log.FieldOperation, log.OpDelete)
		return err
	}

	t.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldTransactionID, id,
		log.FieldOperation, log.OpDelete)

	return t.refresh(ctx)
}
