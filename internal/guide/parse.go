package guide

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/studyhub/studydesk/internal/study"
)

// wireGuide is the backend JSON shape of a guide.
type wireGuide struct {
	ID        json.RawMessage `json:"id"`
	Title     string          `json:"title"`
	Type      Type            `json:"guide_type"`
	CourseID  json.RawMessage `json:"course_id"`
	CreatedAt string          `json:"created_at"`
	Content   json.RawMessage `json:"content"`
}

type wireQuestion struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
}

type wireCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Parse decodes and validates a guide document. Quiz and flashcard guides
// are only returned when every item is loadable by the study engine.
func Parse(data []byte) (*Guide, error) {
	sch, err := loadSchemas()
	if err != nil {
		return nil, err
	}

	doc, err := decodeValue(data)
	if err != nil {
		return nil, &InvalidGuideError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := sch.envelope.Validate(doc); err != nil {
		return nil, &InvalidGuideError{Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var w wireGuide
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &InvalidGuideError{Err: err}
	}

	g := &Guide{
		ID:       scalarString(w.ID),
		Title:    w.Title,
		Type:     w.Type,
		CourseID: scalarString(w.CourseID),
	}
	g.CreatedAt = parseTime(w.CreatedAt)

	content, err := unwrapContent(w.Content)
	if err != nil {
		return nil, &InvalidGuideError{ID: g.ID, Err: err}
	}

	switch g.Type {
	case TypeStudyGuide:
		g.Body = string(content)
		return g, nil
	case TypeQuiz:
		g.Items, err = parseQuestions(content, sch.quiz.Validate)
	case TypeFlashcards:
		g.Items, err = parseCards(content, sch.flashcards.Validate)
	}
	if err != nil {
		return nil, &InvalidGuideError{ID: g.ID, Err: err}
	}

	if _, err := g.Start(); err != nil {
		return nil, &InvalidGuideError{ID: g.ID, Err: err}
	}
	return g, nil
}

// ParseItems validates a bare item array of the given type, as produced
// by the generation endpoint.
func ParseItems(t Type, data []byte) ([]study.Item, error) {
	sch, err := loadSchemas()
	if err != nil {
		return nil, err
	}
	switch t {
	case TypeQuiz:
		return parseQuestions(data, sch.quiz.Validate)
	case TypeFlashcards:
		return parseCards(data, sch.flashcards.Validate)
	}
	return nil, fmt.Errorf("guide type %q has no items", t)
}

func parseQuestions(data []byte, validate func(any) error) ([]study.Item, error) {
	if err := validateArray(data, validate); err != nil {
		return nil, err
	}
	var qs []wireQuestion
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, err
	}
	items := make([]study.Item, 0, len(qs))
	for _, q := range qs {
		items = append(items, study.QuestionItem(study.Question{
			Prompt:       q.Question,
			Options:      q.Options,
			CorrectLabel: q.CorrectAnswer,
			Explanation:  q.Explanation,
		}))
	}
	return items, nil
}

func parseCards(data []byte, validate func(any) error) ([]study.Item, error) {
	if err := validateArray(data, validate); err != nil {
		return nil, err
	}
	var cs []wireCard
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, err
	}
	items := make([]study.Item, 0, len(cs))
	for _, c := range cs {
		items = append(items, study.CardItem(study.Card{Front: c.Front, Back: c.Back}))
	}
	return items, nil
}

func validateArray(data []byte, validate func(any) error) error {
	v, err := decodeValue(data)
	if err != nil {
		return fmt.Errorf("invalid content JSON: %w", err)
	}
	if err := validate(v); err != nil {
		return fmt.Errorf("content validation failed: %w", err)
	}
	return nil
}

// unwrapContent returns the content bytes, decoding one level of string
// encoding when the backend stored the item array as a JSON string.
func unwrapContent(raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return trimmed, nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return nil, fmt.Errorf("decode content string: %w", err)
	}
	return []byte(s), nil
}

func decodeValue(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// scalarString renders a JSON string or number ID as a string.
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return n.String()
	}
	return string(raw)
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", time.DateTime, time.DateOnly}

// parseTime accepts the timestamp formats the backend has been seen to
// emit. Unparseable values yield the zero time.
func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type wireSummary struct {
	ID        json.RawMessage `json:"id"`
	Title     string          `json:"title"`
	Type      Type            `json:"guide_type"`
	CourseID  json.RawMessage `json:"course_id"`
	CreatedAt string          `json:"created_at"`
}

// ParseSummaries decodes a guide list response. Entries of unknown type
// are dropped.
func ParseSummaries(data []byte) ([]Summary, error) {
	var ws []wireSummary
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("decode guide list: %w", err)
	}
	out := make([]Summary, 0, len(ws))
	for _, w := range ws {
		switch w.Type {
		case TypeQuiz, TypeFlashcards, TypeStudyGuide:
		default:
			continue
		}
		out = append(out, Summary{
			ID:        scalarString(w.ID),
			Title:     w.Title,
			Type:      w.Type,
			CourseID:  scalarString(w.CourseID),
			CreatedAt: parseTime(w.CreatedAt),
		})
	}
	return out, nil
}
