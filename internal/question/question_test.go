package question

import (
	"encoding/json"
	"errors"
	"testing"
)

func wirePayload() *WireQuestion {
	return &WireQuestion{
		ID:             "q-1",
		QuestionNumber: 3,
		Text:           "What is the SI unit of force?",
		Options: []WireOption{
			{ID: "o-1", Text: json.RawMessage(`"Joule"`), IsCorrect: false},
			{ID: "o-2", Text: json.RawMessage(`"Newton"`), IsCorrect: true},
			{ID: "o-3", Text: json.RawMessage(`"Watt"`), IsCorrect: false},
			{ID: "o-4", Text: json.RawMessage(`"Pascal"`), IsCorrect: false},
		},
		SubjectID:  "physics",
		ChapterID:  "mechanics",
		TopicID:    "forces",
		Difficulty: "easy",
		Source:     SourceQuestionBank,
		Concept:    "Units of measurement",
	}
}

func TestNormalize(t *testing.T) {
	q, err := Normalize(wirePayload())
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	if q.CorrectIndex != 1 {
		t.Errorf("CorrectIndex = %d, want 1", q.CorrectIndex)
	}
	if q.Options[1].Text != "Newton" {
		t.Errorf("Options[1].Text = %q, want Newton", q.Options[1].Text)
	}
	if q.Number != 3 {
		t.Errorf("Number = %d, want 3", q.Number)
	}
	if q.Difficulty != DifficultyEasy {
		t.Errorf("Difficulty = %q, want easy", q.Difficulty)
	}
}

func TestNormalize_NumericOptionText(t *testing.T) {
	w := wirePayload()
	w.Options[1].Text = json.RawMessage(`42`)

	q, err := Normalize(w)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if q.Options[1].Text != "42" {
		t.Errorf("Options[1].Text = %q, want 42", q.Options[1].Text)
	}
}

func TestNormalize_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WireQuestion)
	}{
		{"no correct option", func(w *WireQuestion) {
			w.Options[1].IsCorrect = false
		}},
		{"two correct options", func(w *WireQuestion) {
			w.Options[0].IsCorrect = true
		}},
		{"empty text", func(w *WireQuestion) {
			w.Text = ""
		}},
		{"single option", func(w *WireQuestion) {
			w.Options = w.Options[1:2]
		}},
		{"dangling journey reference", func(w *WireQuestion) {
			w.JourneyItemID = "ji-404"
			w.Progress = &WireProgress{JourneyItems: []WireJourneyItem{
				{ID: "ji-1", Title: "Kinematics", IsCompleted: true},
			}}
		}},
		{"journey reference without snapshot", func(w *WireQuestion) {
			w.JourneyItemID = "ji-1"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := wirePayload()
			tt.mutate(w)

			_, err := Normalize(w)
			var merr *MalformedError
			if !errors.As(err, &merr) {
				t.Fatalf("Normalize() error = %v, want *MalformedError", err)
			}
		})
	}
}

func TestNormalize_JourneySnapshot(t *testing.T) {
	w := wirePayload()
	w.JourneyItemID = "ji-2"
	w.Progress = &WireProgress{JourneyItems: []WireJourneyItem{
		{ID: "ji-1", Title: "Kinematics", Note: "Motion basics", IsCompleted: true},
		{ID: "ji-2", Title: "Forces", Note: "Newton's laws", IsCompleted: false},
	}}

	q, err := Normalize(w)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(q.Progress.JourneyItems) != 2 {
		t.Fatalf("JourneyItems = %d, want 2", len(q.Progress.JourneyItems))
	}
	if !q.Progress.JourneyItems[0].Completed {
		t.Error("JourneyItems[0].Completed = false, want true")
	}
	if q.JourneyItemID != "ji-2" {
		t.Errorf("JourneyItemID = %q, want ji-2", q.JourneyItemID)
	}
}

func TestNormalize_NilPayload(t *testing.T) {
	if _, err := Normalize(nil); err == nil {
		t.Fatal("Normalize(nil) = nil error, want *MalformedError")
	}
}
