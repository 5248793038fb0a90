package http

import (
	"errors"
	"html/template"
	"net/http"

	"expensetracker/internal/apperrors"
	"expensetracker/internal/core"
)

// handleTransactionList returns the filtered, newest-first list partial.
func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.renderTransactionList(w, r)
}

func (s *Server) renderTransactionList(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "transaction_list", buildListData(s.tracker.Snapshot()))
}

// parseTransactionForm extracts and validates the shared create/edit form
// fields. Parse failures come back as user-facing messages.
func parseTransactionForm(r *http.Request) (core.TransactionInput, string) {
	title := sanitizeInput(r.Form.Get("title"))

	amount, err := core.ParseAmount(r.Form.Get("amount"))
	if err != nil {
		return core.TransactionInput{}, "Amount must be a positive number"
	}

	category := core.ParseCategory(sanitizeInput(r.Form.Get("category")))

	in := core.TransactionInput{
		Title:    title,
		Amount:   amount,
		Category: category,
	}
	if v := r.Form.Get("date"); v != "" {
		date, err := parseDate(v)
		if err != nil {
			return core.TransactionInput{}, "Date must be in YYYY-MM-DD format"
		}
		in.Date = date
	}
	return in, ""
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.logger.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	in, msg := parseTransactionForm(r)
	if msg != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
		return
	}

	if _, err := s.tracker.AddTransaction(r.Context(), in); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error saving transaction</div>`))
		return
	}

	w.Header().Set("HX-Trigger", "transactions:changed")
	s.renderTransactionList(w, r)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
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

	id := sanitizeInput(r.Form.Get("id"))
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Missing transaction id</div>`))
		return
	}

	in, msg := parseTransactionForm(r)
	if msg != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
		return
	}

	if err := s.tracker.EditTransaction(r.Context(), id, in); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`))
		case errors.Is(err, apperrors.ErrNotFound):
			// The record vanished between render and submit; nothing changed.
			w.Header().Set("HX-Trigger", "transactions:changed")
			s.renderTransactionList(w, r)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`<div class="error">Error updating transaction</div>`))
		}
		return
	}

	w.Header().Set("HX-Trigger", "transactions:changed")
	s.renderTransactionList(w, r)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
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

	id := sanitizeInput(r.Form.Get("id"))
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Missing transaction id</div>`))
		return
	}

	if err := s.tracker.DeleteTransaction(r.Context(), id); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`<div class="error">Error deleting transaction</div>`))
			return
		}
		// Deleting a missing record is a no-op; fall through and re-render.
	}

	w.Header().Set("HX-Trigger", "transactions:changed")
	s.renderTransactionList(w, r)
}
