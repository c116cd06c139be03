package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/studyhub/studydesk/internal/calendar"
)

// Assignment is a course assignment with a due date.
type Assignment struct {
	ID          string
	Title       string
	Description string
	CourseID    string
	CourseName  string
	Due         time.Time // calendar date, midnight UTC (see calendar.Date)
}

type wireAssignment struct {
	ID          json.RawMessage `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CourseID    json.RawMessage `json:"course_id"`
	CourseName  string          `json:"course_name"`
	DueDate     string          `json:"due_date"`
}

var dueLayouts = []string{time.DateOnly, time.RFC3339Nano, "2006-01-02T15:04:05.999999", time.DateTime}

// parseDue reads a due date as a calendar date. Timestamps are converted
// to local time first so an assignment due "23:59Z" lands on the day the
// student sees it.
func parseDue(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	for _, layout := range dueLayouts[1:] {
		if t, err := time.Parse(layout, s); err == nil {
			return calendar.Date(t.In(time.Local)), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized due date %q", s)
}

func (a *Assignment) UnmarshalJSON(data []byte) error {
	var w wireAssignment
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	out, err := w.assignment()
	if err != nil {
		return err
	}
	*a = out
	return nil
}

func (w wireAssignment) assignment() (Assignment, error) {
	due, err := parseDue(w.DueDate)
	if err != nil {
		return Assignment{}, err
	}
	return Assignment{
		ID:          idString(w.ID),
		Title:       w.Title,
		Description: w.Description,
		CourseID:    idString(w.CourseID),
		CourseName:  w.CourseName,
		Due:         due,
	}, nil
}

// decodeAssignments decodes a list of assignments. Entries without a
// usable due date cannot be placed on the calendar and are skipped.
func decodeAssignments(body []byte) ([]Assignment, error) {
	var wire []wireAssignment
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, err
	}
	out := make([]Assignment, 0, len(wire))
	for _, w := range wire {
		a, err := w.assignment()
		if err != nil {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// idString renders a JSON string or integer ID as a string.
func idString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return string(raw)
}
