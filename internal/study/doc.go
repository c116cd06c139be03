// Package study implements quiz and flashcard review sessions.
//
// A session is a SessionState value driven by pure functions:
//
//	s, err := study.Load(study.KindQuiz, items)
//	s, _ = study.SelectAnswer(s, "B")
//	s, _ = study.SubmitAnswer(s)
//	s, _ = study.Advance(s)
//
// Refused operations return the input state unchanged together with a
// *TransitionError, so a caller can always keep using the returned state.
package study
