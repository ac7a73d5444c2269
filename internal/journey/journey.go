// Package journey derives journey progress from the latest fetched
// question's embedded snapshot. The derivation is pure: transitions are
// detected, never forced, and the package mutates nothing.
package journey

import "github.com/inferahq/infera/internal/question"

// Summary is the derived view over a question's journey snapshot.
type Summary struct {
	// Items is the full ordered journey, nil when the question carries no
	// journey snapshot.
	Items []question.JourneyItem

	// Active is the item referenced by the question's JourneyItemID, nil
	// when there is no journey or no active reference.
	Active *question.JourneyItem

	// ActiveIndex is the position of Active within Items, -1 when absent.
	ActiveIndex int

	// Completed holds the items already flagged complete, in order.
	Completed []question.JourneyItem

	// Finished is true when the journey is nonempty and every item is
	// complete. Finished is terminal for the session: it is a function of
	// the latest snapshot and the service never un-completes items.
	Finished bool
}

// Derive computes the Summary for a question. A nil question or a question
// without a journey snapshot yields an empty, unfinished summary.
func Derive(q *question.Question) Summary {
	s := Summary{ActiveIndex: -1}
	if q == nil || q.Progress == nil || len(q.Progress.JourneyItems) == 0 {
		return s
	}

	s.Items = q.Progress.JourneyItems
	s.Finished = true
	for i := range s.Items {
		item := s.Items[i]
		if item.ID == q.JourneyItemID {
			s.Active = &s.Items[i]
			s.ActiveIndex = i
		}
		if item.Completed {
			s.Completed = append(s.Completed, item)
		} else {
			s.Finished = false
		}
	}

	return s
}
