package practice

import "github.com/inferahq/infera/internal/question"

// Action is a state transition request. The concrete types below are the
// only transitions the reducer knows; anything else leaves state unchanged.
type Action interface {
	isAction()
}

// SetCurrentQuestion replaces the current question (nil clears it).
// The performance log is untouched.
type SetCurrentQuestion struct {
	Question *question.Question
}

// UpdateFilters merges a partial filter selection into the state. Nil
// slices leave the corresponding dimension unchanged.
type UpdateFilters struct {
	Subjects []string
	Chapters []string
	Topics   []string
}

// AddPerformanceEvent appends one event to the log and recomputes the
// derived counters.
type AddPerformanceEvent struct {
	Event PerformanceEvent
}

// SetLoading toggles the loading flag; orthogonal to all other fields.
type SetLoading struct {
	Loading bool
}

// Reset replaces the state with the initial empty state.
type Reset struct{}

func (SetCurrentQuestion) isAction()  {}
func (UpdateFilters) isAction()       {}
func (AddPerformanceEvent) isAction() {}
func (SetLoading) isAction()          {}
func (Reset) isAction()               {}

// Reduce is the pure transition function. It has no side effects and no
// hidden state: two calls with equal inputs produce equal outputs.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetCurrentQuestion:
		s.CurrentQuestion = a.Question
		return s

	case UpdateFilters:
		if a.Subjects != nil {
			s.Filters.Subjects = cloneStrings(a.Subjects)
		}
		if a.Chapters != nil {
			s.Filters.Chapters = cloneStrings(a.Chapters)
		}
		if a.Topics != nil {
			s.Filters.Topics = cloneStrings(a.Topics)
		}
		return s

	case AddPerformanceEvent:
		log := make([]PerformanceEvent, len(s.Log)+1)
		copy(log, s.Log)
		log[len(s.Log)] = a.Event

		correct := 0
		for _, e := range log {
			if e.Correct {
				correct++
			}
		}

		s.Log = log
		s.TotalAttempted = len(log)
		s.TotalCorrect = correct
		s.OverallAccuracy = 100 * float64(correct) / float64(len(log))
		s.CurrentStreak = a.Event.Streak
		return s

	case SetLoading:
		s.Loading = a.Loading
		return s

	case Reset:
		return Initial()
	}

	return s
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
