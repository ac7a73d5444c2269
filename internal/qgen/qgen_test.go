package qgen

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/inferahq/infera/internal/gateway"
	"github.com/inferahq/infera/internal/llm"
	"github.com/inferahq/infera/internal/question"
)

const goodOutput = `{
	"question_text": "What is 3/4 + 1/8?",
	"options": ["7/8", "4/12", "1/2", "5/8"],
	"correct_index": 0,
	"difficulty": "medium",
	"concept": "fraction addition",
	"note": "You missed two fraction questions recently."
}`

func TestGenerator_NextQuestion(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(goodOutput)},
	)
	g := New(mock, DefaultConfig())

	q, err := g.NextQuestion(context.Background(), gateway.Request{
		Subjects:       []string{"subj-math"},
		RecentAccuracy: 60,
		Streak:         0,
		Hint:           "more fractions please",
	})
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}

	if q.Source != question.SourceAI {
		t.Fatalf("source = %q, want AI", q.Source)
	}
	if q.CorrectIndex != 0 || !q.Options[0].Correct {
		t.Fatalf("correct option mismatch: %+v", q)
	}
	if q.Difficulty != question.DifficultyMedium {
		t.Fatalf("difficulty = %q, want medium", q.Difficulty)
	}
	if q.SubjectID != "subj-math" {
		t.Fatalf("subject = %q", q.SubjectID)
	}
	if q.Concept == "" || q.AINote == "" {
		t.Fatalf("concept/note missing: %+v", q)
	}
	if err := q.Validate(); err != nil {
		t.Fatalf("generated question invalid: %v", err)
	}

	prompt := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"more fractions please", "Recent accuracy: 60%", "Current streak: 0"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestGenerator_DedupCarriesPriorQuestions(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(goodOutput)},
		llm.MockResponse{Content: json.RawMessage(`{
			"question_text": "What is 1/2 + 1/4?",
			"options": ["3/4", "2/6", "1/8", "1"],
			"correct_index": 0,
			"difficulty": "easy",
			"concept": "fraction addition",
			"note": "Reinforcing the same concept."
		}`)},
	)
	g := New(mock, DefaultConfig())

	if _, err := g.NextQuestion(context.Background(), gateway.Request{}); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := g.NextQuestion(context.Background(), gateway.Request{}); err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	second := mock.Calls[1].Messages[0].Content
	if !strings.Contains(second, "What is 3/4 + 1/8?") {
		t.Fatalf("second prompt missing first question in dedup list:\n%s", second)
	}
}

func TestGenerator_RejectsBadOutput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", `nope`},
		{"correct index out of range", `{
			"question_text": "q?", "options": ["a","b","c","d"],
			"correct_index": 9, "difficulty": "easy", "concept": "c", "note": "n"
		}`},
		{"empty text", `{
			"question_text": "", "options": ["a","b","c","d"],
			"correct_index": 0, "difficulty": "easy", "concept": "c", "note": "n"
		}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tc.body)})
			g := New(mock, DefaultConfig())
			if _, err := g.NextQuestion(context.Background(), gateway.Request{}); err == nil {
				t.Fatal("expected rejection")
			}
		})
	}
}

func TestGenerator_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue returns provider unavailable
	g := New(mock, DefaultConfig())
	if _, err := g.NextQuestion(context.Background(), gateway.Request{}); err == nil {
		t.Fatal("expected error from failing provider")
	}
}
