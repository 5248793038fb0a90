package http

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
	"expensetracker/internal/services"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("2025-06-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := parseDate("15/06/2025"); err == nil {
		t.Fatal("expected error for wrong format")
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"4.5", "$4.50"},
		{"120", "$120.00"},
		{"0.01", "$0.01"},
	}
	for _, tc := range cases {
		d, _ := decimal.NewFromString(tc.in)
		if got := formatAmount(d); got != tc.want {
			t.Fatalf("%s expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Coffee  ", "Coffee"},
		{"Cof\x00fee", "Coffee"},
		{"line\nbreak", "line\nbreak"},
	}
	for _, tc := range cases {
		if got := sanitizeInput(tc.in); got != tc.want {
			t.Fatalf("%q expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestRangeKindRoundTrip(t *testing.T) {
	kinds := []core.RangeKind{
		core.RangeAllTime,
		core.RangeLast7Days,
		core.RangeThisMonth,
		core.RangeCustom,
	}
	for _, k := range kinds {
		if got := parseRangeKind(rangeKindValue(k)); got != k {
			t.Fatalf("kind %v does not round-trip, got %v", k, got)
		}
	}
	if got := parseRangeKind("garbage"); got != core.RangeAllTime {
		t.Fatalf("unknown value should map to all-time, got %v", got)
	}
}

func TestBuildListData(t *testing.T) {
	food := core.CategoryFood
	snap := services.Snapshot{
		Filter: core.Filter{
			Search:   "cof",
			Category: &food,
			Range:    core.CustomRange(
				time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local),
				time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local),
			),
		},
		Results: []core.Transaction{
			{ID: "1", Title: "Coffee", Amount: decimal.NewFromFloat(4.50), Category: core.CategoryFood,
				Date: time.Date(2025, 6, 14, 9, 0, 0, 0, time.Local)},
		},
	}

	data := buildListData(snap)
	if data.Count != 1 || len(data.Transactions) != 1 {
		t.Fatalf("unexpected counts: %+v", data)
	}
	if data.Transactions[0].Amount != "$4.50" {
		t.Fatalf("amount not formatted: %q", data.Transactions[0].Amount)
	}
	if !data.FilterActive {
		t.Fatal("filter should be reported active")
	}
	if data.RangeKind != "custom" || data.CustomStart != "2025-06-01" || data.CustomEnd != "2025-06-15" {
		t.Fatalf("custom range not surfaced: %+v", data)
	}

	var selected int
	for _, opt := range data.Categories {
		if opt.Selected {
			selected++
			if opt.Label != "Food" {
				t.Fatalf("wrong category selected: %q", opt.Label)
			}
		}
	}
	if selected != 1 {
		t.Fatalf("expected exactly one selected category, got %d", selected)
	}
}
