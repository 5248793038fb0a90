package http

import (
	"encoding/json"
	"net/http"
	"sort"

	"expensetracker/internal/core"
)

// summaryData feeds the summary cards partial.
type summaryData struct {
	Total      string
	Count      int
	Average    string
	HasAverage bool
}

// handleSummaryCards renders total, count and average over the filtered set.
func (s *Server) handleSummaryCards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snap := s.tracker.Snapshot()
	data := summaryData{
		Total: formatAmount(snap.Summary.Total),
		Count: snap.Summary.Count,
	}
	if avg, ok := snap.Summary.Average(); ok {
		data.Average = formatAmount(avg)
		data.HasAverage = true
	}

	s.render(w, r, "summary_cards", data)
}

// categoryRow is one bar in the category breakdown.
type categoryRow struct {
	Label   string
	Icon    string
	Color   string
	Amount  string
	Percent int
}

// handleCategoryBreakdown renders per-category totals for the filtered set,
// largest first. Categories with no matching transactions do not appear.
func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snap := s.tracker.Snapshot()

	rows := make([]categoryRow, 0, len(snap.Summary.ByCategory))
	for _, c := range core.Categories() {
		amount, ok := snap.Summary.ByCategory[c]
		if !ok {
			continue
		}
		row := categoryRow{
			Label:  c.Label(),
			Icon:   c.Icon(),
			Color:  c.Color(),
			Amount: formatAmount(amount),
		}
		if snap.Summary.Total.IsPositive() {
			row.Percent = int(amount.Div(snap.Summary.Total).Mul(hundred).Round(0).IntPart())
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return snap.Summary.ByCategory[core.ParseCategory(rows[i].Label)].
			GreaterThan(snap.Summary.ByCategory[core.ParseCategory(rows[j].Label)])
	})

	s.render(w, r, "category_breakdown", rows)
}

// trendPoint is one day of spending in the trend series.
type trendPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// handleTrend returns the per-day spending series for the filtered set as
// JSON, oldest day first, for the dashboard chart.
func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snap := s.tracker.Snapshot()

	points := make([]trendPoint, 0, len(snap.Summary.ByDay))
	for day, amount := range snap.Summary.ByDay {
		points = append(points, trendPoint{
			Date:   day.Format("2006-01-02"),
			Amount: amount.InexactFloat64(),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(points); err != nil {
		s.logger.ErrorContext(r.Context(), "Trend encoding failed", "error", err)
	}
}
