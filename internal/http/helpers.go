package http

import (
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
	"expensetracker/internal/services"
)

var hundred = decimal.NewFromInt(100)

// parseDate parses a date string in YYYY-MM-DD format, local time.
func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, time.Local)
}

// formatAmount formats a decimal amount as a currency string (e.g. "$12.34").
func formatAmount(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatAmount": formatAmount,
	}
}

// txView is the template-friendly shape of a transaction.
type txView struct {
	ID       string
	Title    string
	Amount   string
	Category string
	Icon     string
	Color    string
	Date     string
	DateISO  string
}

func toTxView(t core.Transaction) txView {
	return txView{
		ID:       t.ID,
		Title:    t.Title,
		Amount:   formatAmount(t.Amount),
		Category: t.Category.Label(),
		Icon:     t.Category.Icon(),
		Color:    t.Category.Color(),
		Date:     t.Date.In(time.Local).Format("Jan 2, 2006 15:04"),
		DateISO:  t.Date.In(time.Local).Format("2006-01-02"),
	}
}

// categoryOption feeds the category selects.
type categoryOption struct {
	Label    string
	Selected bool
}

// listData is the payload for the transaction list partial: the rows plus
// the filter state the controls need to render themselves.
type listData struct {
	Transactions []txView
	Count        int
	Search       string
	Categories   []categoryOption
	RangeKind    string
	CustomStart  string
	CustomEnd    string
	FilterActive bool
}

func buildListData(snap services.Snapshot) listData {
	data := listData{
		Count:        len(snap.Results),
		Search:       snap.Filter.Search,
		RangeKind:    rangeKindValue(snap.Filter.Range.Kind),
		FilterActive: snap.Filter.IsActive(),
	}
	for _, t := range snap.Results {
		data.Transactions = append(data.Transactions, toTxView(t))
	}
	for _, c := range core.Categories() {
		data.Categories = append(data.Categories, categoryOption{
			Label:    c.Label(),
			Selected: snap.Filter.Category != nil && *snap.Filter.Category == c,
		})
	}
	if snap.Filter.Range.Kind == core.RangeCustom {
		data.CustomStart = snap.Filter.Range.Start.Format("2006-01-02")
		data.CustomEnd = snap.Filter.Range.End.Format("2006-01-02")
	}
	return data
}

// rangeKindValue maps a range kind to its form value.
func rangeKindValue(k core.RangeKind) string {
	switch k {
	case core.RangeLast7Days:
		return "last7days"
	case core.RangeThisMonth:
		return "thismonth"
	case core.RangeCustom:
		return "custom"
	default:
		return "all"
	}
}

// parseRangeKind is the inverse of rangeKindValue; unknown values mean all-time.
func parseRangeKind(v string) core.RangeKind {
	switch v {
	case "last7days":
		return core.RangeLast7Days
	case "thismonth":
		return core.RangeThisMonth
	case "custom":
		return core.RangeCustom
	default:
		return core.RangeAllTime
	}
}
