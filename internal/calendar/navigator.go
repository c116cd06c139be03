// Package calendar computes the visible date range and header label of the
// assignment calendar and steps it through day, three-day, week and month
// views.
package calendar

import "time"

// NavState is the calendar's navigation state. Range and Label are derived
// from it on demand and never stored.
type NavState struct {
	Anchor time.Time
	Mode   ViewMode
}

// New returns a navigator anchored on the date of now.
func New(now time.Time, mode ViewMode) NavState {
	return NavState{Anchor: Date(now), Mode: mode}
}

// Range returns the visible date range.
func (s NavState) Range() Range {
	return ComputeRange(s.Anchor, s.Mode)
}

// Label returns the header text of the visible range.
func (s NavState) Label() string {
	return ComputeLabel(s.Range(), s.Mode)
}

// GoNext moves forward by one unit of the current view.
func (s NavState) GoNext() NavState {
	return s.step(1)
}

// GoPrev moves back by one unit of the current view.
func (s NavState) GoPrev() NavState {
	return s.step(-1)
}

func (s NavState) step(dir int) NavState {
	switch s.Mode {
	case ViewMonth:
		s.Anchor = AddMonths(s.Anchor, dir)
	case ViewWeek:
		s.Anchor = AddDays(s.Anchor, 7*dir)
	case ViewThreeDay:
		s.Anchor = AddDays(s.Anchor, 3*dir)
	default:
		s.Anchor = AddDays(s.Anchor, dir)
	}
	return s
}

// GoToday anchors the view on the date of now.
func (s NavState) GoToday(now time.Time) NavState {
	s.Anchor = Date(now)
	return s
}

// GoToDate anchors the view on date, keeping the current mode.
func (s NavState) GoToDate(date time.Time) NavState {
	s.Anchor = Date(date)
	return s
}

// SetViewMode switches the view mode. The anchor is kept as is, so
// switching back restores the previous range.
func (s NavState) SetViewMode(mode ViewMode) NavState {
	s.Mode = mode
	return s
}
