package calendar

import (
	"fmt"
	"time"
)

// Range is an inclusive span of calendar dates, both midnight UTC.
type Range struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of dates in the range.
func (r Range) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// Contains reports whether the date of t, read in t's own location, is
// inside the range.
func (r Range) Contains(t time.Time) bool {
	d := Date(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Dates returns every date in the range in order.
func (r Range) Dates() []time.Time {
	n := r.Days()
	dates := make([]time.Time, 0, n)
	for i := range n {
		dates = append(dates, AddDays(r.Start, i))
	}
	return dates
}

func (r Range) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
}

// ComputeRange returns the visible range for anchor in the given mode.
func ComputeRange(anchor time.Time, mode ViewMode) Range {
	a := Date(anchor)
	switch mode {
	case ViewThreeDay:
		return Range{Start: a, End: AddDays(a, 2)}
	case ViewWeek:
		start := StartOfWeek(a)
		return Range{Start: start, End: AddDays(start, 6)}
	case ViewMonth:
		start := time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(a.Year(), a.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		return Range{Start: start, End: end}
	default:
		return Range{Start: a, End: a}
	}
}

// Grid lays out r as Monday-first weeks of seven dates for the month view.
// Leading and trailing cells are filled with dates of the adjacent months.
func Grid(r Range) [][]time.Time {
	start := StartOfWeek(r.Start)
	end := AddDays(StartOfWeek(r.End), 6)

	var weeks [][]time.Time
	for d := start; !d.After(end); d = AddDays(d, 7) {
		week := make([]time.Time, 7)
		for i := range week {
			week[i] = AddDays(d, i)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
