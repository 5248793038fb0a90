package http

import (
	"net/http"
	"time"

	"expensetracker/internal/core"
)

// Filter endpoints mutate one dimension of the tracker's filter state and
// return the refreshed list partial. A store read failure during the
// recomputation is not fatal here: the tracker degrades the result set to
// empty and the partial renders that.

func (s *Server) handleFilterSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	if err := s.tracker.SetSearchText(r.Context(), sanitizeInput(r.Form.Get("search"))); err != nil {
		s.logger.ErrorContext(r.Context(), "Search filter refresh failed", "error", err)
	}

	w.Header().Set("HX-Trigger", "transactions:changed")
	s.renderTransactionList(w, r)
}

func (s *Server) handleFilterCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	// An empty value means "all categories".
	var category *core.Category
	if v := sanitizeInput(r.Form.Get("category")); v != "" {
		c := core.ParseCategory(v)
		category = &c
	}

	if err := s.tracker.SetCategoryFilter(r.Context(), category); err != nil {
		s.logger.ErrorContext(r.Context(), "Category filter refresh failed", "error", err)
	}

	w.Header().Set("HX-Trigger", "transactions:changed")
	s.renderTransactionList(w, r)
}

func (s *Server) handleFilterRange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	var rng core.DateRange
	switch parseRangeKind(r.Form.Get("range")) {
	case core.RangeLast7Days:
		rng = core.Last7Days()
	case core.RangeThisMonth:
		rng = core.ThisMonth()
	case core.RangeCustom:
		start, err := parseDate(r.Form.Get("start"))
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Start date must be in YYYY-MM-DD format</div>`))
			return
		}
		end, err := parseDate(r.Form.Get("end"))
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">End date must be in YYYY-MM-DD format</div>`))
			return
		}
		if end.Before(start) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">End date must not be before start date</div>`))
			return
		}
		// The form supplies whole days; stretch the end bound to the last
		// instant of the end day so the day is fully included.
		rng = core.CustomRange(start, end.AddDate(0, 0, 1).Add(-time.Nanosecond))
	default:
		rng = core.AllTime()
	}

	if err := s.tracker.SetDateRange(r.Context(), rng); err != nil {
		s.logger.ErrorContext(r.Context(), "Date range filter refresh failed", "error", err)
	}

	w.Header().Set("HX-Trigger", "transactions:changed")
	s.renderTransactionList(w, r)
}

func (s *Server) handleFilterClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := s.tracker.ClearFilters(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "Filter reset refresh failed", "error", err)
	}

	w.Header().Set("HX-Trigger", "transactions:changed")
	s.renderTransactionList(w, r)
}
