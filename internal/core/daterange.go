package core

import "time"

// RangeKind discriminates the date-range variants.
type RangeKind int

const (
	RangeAllTime RangeKind = iota
	RangeLast7Days
	RangeThisMonth
	RangeCustom
)

var rangeKindLabels = map[RangeKind]string{
	RangeAllTime:   "All Time",
	RangeLast7Days: "Last 7 Days",
	RangeThisMonth: "This Month",
	RangeCustom:    "Custom Range",
}

// Label returns the display name for the range kind.
func (k RangeKind) Label() string {
	if l, ok := rangeKindLabels[k]; ok {
		return l
	}
	return rangeKindLabels[RangeAllTime]
}

// DateRange is the active time-window filter. Start and End are only
// meaningful for the RangeCustom kind and are both inclusive.
type DateRange struct {
	Kind  RangeKind
	Start time.Time
	End   time.Time
}

// AllTime returns the range that passes every date.
func AllTime() DateRange { return DateRange{Kind: RangeAllTime} }

// Last7Days returns the trailing-seven-days range, resolved against the
// clock at match time.
func Last7Days() DateRange { return DateRange{Kind: RangeLast7Days} }

// ThisMonth returns the current-calendar-month range, resolved against the
// clock at match time.
func ThisMonth() DateRange { return DateRange{Kind: RangeThisMonth} }

// CustomRange returns an explicit range with inclusive bounds.
func CustomRange(start, end time.Time) DateRange {
	return DateRange{Kind: RangeCustom, Start: start, End: end}
}

// Contains reports whether date falls inside the range when resolved at now.
//
// The relative variants have an inclusive lower bound and no upper bound, so
// future-dated records pass. Custom ranges are inclusive on both ends.
func (r DateRange) Contains(date, now time.Time) bool {
	switch r.Kind {
	case RangeLast7Days:
		return !date.Before(now.AddDate(0, 0, -7))
	case RangeThisMonth:
		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return !date.Before(startOfMonth)
	case RangeCustom:
		return !date.Before(r.Start) && !date.After(r.End)
	default:
		return true
	}
}
