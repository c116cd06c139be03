package calendar

import "fmt"

// ComputeLabel returns the header text for a range shown in mode.
//
//	month              January 2026
//	week, three_day    Jan 5–11, 2026 / Jan 29 – Feb 4, 2026
//	day                Monday, January 5, 2026
func ComputeLabel(r Range, mode ViewMode) string {
	switch mode {
	case ViewMonth:
		return r.Start.Format("January 2006")
	case ViewWeek, ViewThreeDay:
		s, e := r.Start, r.End
		switch {
		case s.Year() != e.Year():
			return fmt.Sprintf("%s – %s", s.Format("Jan 2, 2006"), e.Format("Jan 2, 2006"))
		case s.Month() == e.Month():
			return fmt.Sprintf("%s %d–%d, %d", s.Format("Jan"), s.Day(), e.Day(), e.Year())
		default:
			return fmt.Sprintf("%s %d – %s %d, %d", s.Format("Jan"), s.Day(), e.Format("Jan"), e.Day(), e.Year())
		}
	default:
		return r.Start.Format("Monday, January 2, 2006")
	}
}
