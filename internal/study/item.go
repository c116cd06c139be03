package study

import (
	"fmt"
	"slices"
	"strings"
)

// Question is one multiple-choice quiz question.
type Question struct {
	Prompt       string
	Options      map[string]string // label -> option text
	CorrectLabel string
	Explanation  string
}

// Labels returns the option labels in sorted order.
func (q Question) Labels() []string {
	labels := make([]string, 0, len(q.Options))
	for l := range q.Options {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	return labels
}

// IsCorrect reports whether label is the correct option.
func (q Question) IsCorrect(label string) bool {
	return label == q.CorrectLabel
}

func (q Question) validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidItem)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: need at least 2 options, got %d", ErrInvalidItem, len(q.Options))
	}
	if _, ok := q.Options[q.CorrectLabel]; !ok {
		return fmt.Errorf("%w: %q", ErrCorrectLabelMissing, q.CorrectLabel)
	}
	return nil
}

// Card is one flashcard.
type Card struct {
	Front string
	Back  string
}

func (c Card) validate() error {
	if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
		return fmt.Errorf("%w: flashcard needs both front and back", ErrInvalidItem)
	}
	return nil
}

// Item is a single reviewable unit. Only the field matching the session
// kind is meaningful. ID is the item's position in the loaded guide and
// identifies it across shuffles and derived sessions.
type Item struct {
	ID       int
	Question Question
	Card     Card
}

// QuestionItem wraps a question as an Item.
func QuestionItem(q Question) Item {
	return Item{Question: q}
}

// CardItem wraps a flashcard as an Item.
func CardItem(c Card) Item {
	return Item{Card: c}
}

func (it Item) validate(k Kind) error {
	if k == KindQuiz {
		return it.Question.validate()
	}
	return it.Card.validate()
}
