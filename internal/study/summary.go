package study

import "math"

// Summary holds the end-of-session numbers shown on the summary screen.
type Summary struct {
	Total             int
	CorrectOrMastered int
	PctCorrect        int // rounded to the nearest whole percent
	DifficultCount    int
}

// CanReviewDifficult reports whether a difficult-items session can start.
func (s Summary) CanReviewDifficult() bool {
	return s.DifficultCount > 0
}

// Summarize computes the summary of s. It is only meaningful once s is
// finished, but can be computed at any point for a progress display.
func Summarize(s SessionState) Summary {
	sum := Summary{Total: len(s.Items)}
	for _, it := range s.Items {
		o := s.Outcomes[it.ID]
		if o.Positive() {
			sum.CorrectOrMastered++
		}
		if o.Difficult() {
			sum.DifficultCount++
		}
	}
	if sum.Total > 0 {
		sum.PctCorrect = int(math.Round(100 * float64(sum.CorrectOrMastered) / float64(sum.Total)))
	}
	return sum
}
