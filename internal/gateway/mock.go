package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/inferahq/infera/internal/question"
)

// MockSource serves a fixed deck of questions in order. It also records
// completion signals, which makes it useful both for offline practice and
// for engine tests.
type MockSource struct {
	mu        sync.Mutex
	deck      []*question.Question
	next      int
	completed []string

	// NextErr, when set, is returned by NextQuestion instead of a question.
	NextErr error
	// CompleteErr, when set, is returned by MarkComplete.
	CompleteErr error
}

// NewMockSource builds a source over the given deck. An empty deck yields
// ErrNoQuestion on the first fetch.
func NewMockSource(deck []*question.Question) *MockSource {
	return &MockSource{deck: deck}
}

func (m *MockSource) NextQuestion(_ context.Context, _ Request) (*question.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.NextErr != nil {
		return nil, m.NextErr
	}
	if m.next >= len(m.deck) {
		return nil, ErrNoQuestion
	}
	q := m.deck[m.next]
	m.next++
	return q, nil
}

func (m *MockSource) MarkComplete(_ context.Context, _ string, journeyItemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CompleteErr != nil {
		return m.CompleteErr
	}
	m.completed = append(m.completed, journeyItemID)
	return nil
}

// Completed returns the journey item IDs marked complete so far.
func (m *MockSource) Completed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.completed))
	copy(out, m.completed)
	return out
}

// DemoDeck builds a small offline deck for practicing without a service.
func DemoDeck() []*question.Question {
	mk := func(n int, text string, opts []question.Option, subject, topic string) *question.Question {
		correct := 0
		for i, o := range opts {
			if o.Correct {
				correct = i
			}
		}
		return &question.Question{
			ID:           fmt.Sprintf("demo-%d", n),
			Number:       n,
			Text:         text,
			Options:      opts,
			CorrectIndex: correct,
			SubjectID:    subject,
			TopicID:      topic,
			Source:       question.SourceQuestionBank,
		}
	}

	return []*question.Question{
		mk(1, "What is 12 x 8?", []question.Option{
			{ID: "a", Text: "86"},
			{ID: "b", Text: "96", Correct: true},
			{ID: "c", Text: "104"},
			{ID: "d", Text: "88"},
		}, "subj-math", "topic-multiplication"),
		mk(2, "Which fraction equals 0.25?", []question.Option{
			{ID: "a", Text: "1/3"},
			{ID: "b", Text: "2/5"},
			{ID: "c", Text: "1/4", Correct: true},
			{ID: "d", Text: "3/8"},
		}, "subj-math", "topic-fractions"),
		mk(3, "What is the square root of 144?", []question.Option{
			{ID: "a", Text: "14"},
			{ID: "b", Text: "11"},
			{ID: "c", Text: "12", Correct: true},
			{ID: "d", Text: "16"},
		}, "subj-math", "topic-roots"),
		mk(4, "Solve: 3x + 5 = 20", []question.Option{
			{ID: "a", Text: "x = 5", Correct: true},
			{ID: "b", Text: "x = 4"},
			{ID: "c", Text: "x = 6"},
			{ID: "d", Text: "x = 15"},
		}, "subj-math", "topic-algebra"),
		mk(5, "What is 15% of 200?", []question.Option{
			{ID: "a", Text: "25"},
			{ID: "b", Text: "30", Correct: true},
			{ID: "c", Text: "35"},
			{ID: "d", Text: "20"},
		}, "subj-math", "topic-percentages"),
	}
}
