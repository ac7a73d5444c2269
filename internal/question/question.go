// Package question defines the question model served during a practice
// session and the validation applied when raw service payloads are
// normalized into it. A Question never reaches the rest of the app
// half-validated: Normalize either returns a well-formed value or a
// *MalformedError.
package question

import "fmt"

// Difficulty is the service-assigned difficulty band of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question source tags as sent by the question service.
const (
	SourceQuestionBank = "QBG"
	SourceAI           = "AI"
)

// Option is one answer choice. Exactly one option per question carries
// Correct=true; Normalize enforces this.
type Option struct {
	ID      string
	Text    string
	Correct bool
}

// JourneyItem is a named curriculum unit within the question's journey.
// Completion is monotonic for the lifetime of a session: once the service
// reports an item completed it never reverts.
type JourneyItem struct {
	ID        string
	Title     string
	Note      string
	Completed bool
}

// Progress is the journey snapshot embedded in a question payload.
type Progress struct {
	JourneyItems []JourneyItem
}

// Question is a single validated practice question.
type Question struct {
	ID string

	// Number is the 1-based position of this question within the session.
	Number int

	Text    string
	Options []Option

	// CorrectIndex is the index into Options of the single correct option.
	CorrectIndex int

	SubjectID string
	ChapterID string
	TopicID   string

	Difficulty Difficulty
	Source     string

	// Concept labels the topic this question exercises; AINote carries the
	// service's rationale for recommending it.
	Concept string
	AINote  string

	// Progress is the embedded journey snapshot, nil when the session has
	// no journey attached.
	Progress *Progress

	// JourneyItemID identifies the active journey item within
	// Progress.JourneyItems. Empty when Progress is nil.
	JourneyItemID string

	// CanBeCompleted signals that answering this question may close out
	// the active journey item.
	CanBeCompleted bool
}

// MalformedError reports a question payload that failed boundary
// validation and must not be surfaced to the session.
type MalformedError struct {
	QuestionID string
	Reason     string
}

func (e *MalformedError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("malformed question: %s", e.Reason)
	}
	return fmt.Sprintf("malformed question %s: %s", e.QuestionID, e.Reason)
}

// Validate checks the invariants Normalize establishes. It is exported so
// sources that build Questions directly (the AI generator, test fixtures)
// can run the same checks as the wire path.
func (q *Question) Validate() error {
	if q.Text == "" {
		return &MalformedError{QuestionID: q.ID, Reason: "empty question text"}
	}
	if len(q.Options) < 2 {
		return &MalformedError{QuestionID: q.ID, Reason: fmt.Sprintf("need at least 2 options, got %d", len(q.Options))}
	}

	correct := 0
	for _, o := range q.Options {
		if o.Correct {
			correct++
		}
	}
	if correct != 1 {
		return &MalformedError{QuestionID: q.ID, Reason: fmt.Sprintf("expected exactly 1 correct option, got %d", correct)}
	}

	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) || !q.Options[q.CorrectIndex].Correct {
		return &MalformedError{QuestionID: q.ID, Reason: "correct answer index out of sync with options"}
	}

	// A journey item reference must resolve to an entry in the snapshot.
	if q.JourneyItemID != "" {
		if q.Progress == nil {
			return &MalformedError{QuestionID: q.ID, Reason: "journey item reference without journey snapshot"}
		}
		found := false
		for _, item := range q.Progress.JourneyItems {
			if item.ID == q.JourneyItemID {
				found = true
				break
			}
		}
		if !found {
			return &MalformedError{QuestionID: q.ID, Reason: fmt.Sprintf("journey item %q not in journey snapshot", q.JourneyItemID)}
		}
	}

	return nil
}
