package calendar

import (
	"fmt"
	"strings"
)

// ViewMode is the granularity of the visible calendar range.
type ViewMode int

const (
	ViewDay ViewMode = iota
	ViewThreeDay
	ViewWeek
	ViewMonth
)

// Modes lists the view modes in display order.
var Modes = []ViewMode{ViewDay, ViewThreeDay, ViewWeek, ViewMonth}

func (m ViewMode) String() string {
	switch m {
	case ViewDay:
		return "day"
	case ViewThreeDay:
		return "three_day"
	case ViewWeek:
		return "week"
	case ViewMonth:
		return "month"
	}
	return fmt.Sprintf("ViewMode(%d)", int(m))
}

// Title returns the mode name as shown in the view switcher.
func (m ViewMode) Title() string {
	switch m {
	case ViewDay:
		return "Day"
	case ViewThreeDay:
		return "3 Days"
	case ViewWeek:
		return "Week"
	case ViewMonth:
		return "Month"
	}
	return m.String()
}

// ParseViewMode parses a mode name as accepted on the command line.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "d":
		return ViewDay, nil
	case "three_day", "3day", "3-day", "3":
		return ViewThreeDay, nil
	case "week", "w":
		return ViewWeek, nil
	case "month", "m":
		return ViewMonth, nil
	}
	return 0, fmt.Errorf("unknown view mode %q (want day, three_day, week or month)", s)
}
